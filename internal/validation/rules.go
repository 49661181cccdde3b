// Package validation checks form fields against declarative rule sets and reports one
// message per failing field.
package validation

import (
	"net/mail"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Rule checks one value and returns a message when it fails.
type Rule interface {
	Check(value string) (string, bool)
}

type ruleFunc func(value string) (string, bool)

func (f ruleFunc) Check(value string) (string, bool) { return f(value) }

// Required fails on empty or whitespace-only values.
func Required(msg string) Rule {
	return ruleFunc(func(v string) (string, bool) {
		return msg, strings.TrimSpace(v) != ""
	})
}

// MinLen fails when the value has fewer than n characters.
func MinLen(n int, msg string) Rule {
	return ruleFunc(func(v string) (string, bool) {
		return msg, utf8.RuneCountInString(v) >= n
	})
}

// MaxLen fails when the value has more than n characters.
func MaxLen(n int, msg string) Rule {
	return ruleFunc(func(v string) (string, bool) {
		return msg, utf8.RuneCountInString(v) <= n
	})
}

// Matches fails when the value does not match re.
func Matches(re *regexp.Regexp, msg string) Rule {
	return ruleFunc(func(v string) (string, bool) {
		return msg, re.MatchString(v)
	})
}

// Email fails when the value is not a bare address.
func Email(msg string) Rule {
	return ruleFunc(func(v string) (string, bool) {
		addr, err := mail.ParseAddress(v)
		return msg, err == nil && addr.Address == v
	})
}

// Field binds rules to a form field. Rules run in order and stop at the first failure.
type Field struct {
	Name  string
	Rules []Rule
}

// Schema is an ordered set of field rules.
type Schema []Field

// Errors maps field names to their first failing message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validate checks values against the schema. It returns nil when every field passes.
func (s Schema) Validate(values map[string]string) Errors {
	errs := Errors{}
	for _, field := range s {
		value := values[field.Name]
		for _, rule := range field.Rules {
			if msg, ok := rule.Check(value); !ok {
				errs[field.Name] = msg
				break
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
