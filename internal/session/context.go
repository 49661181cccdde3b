package session

import "context"

type subjectKey struct{ role Role }

// WithSubject stores the authenticated subject for role on ctx.
func WithSubject(ctx context.Context, role Role, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{role: role}, subject)
}

// SubjectFromContext returns the subject stored by WithSubject.
func SubjectFromContext(ctx context.Context, role Role) (string, bool) {
	subject, ok := ctx.Value(subjectKey{role: role}).(string)
	return subject, ok && subject != ""
}
