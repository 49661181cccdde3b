package pagination

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrInvalidPage reports a page query value that is not a positive integer.
var ErrInvalidPage = errors.New("pagination: invalid page")

// FromRequest parses the page query parameter of r.
func FromRequest(r *http.Request) (int, error) {
	if r == nil {
		return 0, errors.New("pagination: nil request")
	}
	return ParsePage(r.URL.Query())
}

// ParsePage reads "page" from values, defaulting to 1 when absent.
func ParsePage(values url.Values) (int, error) {
	raw := strings.TrimSpace(values.Get("page"))
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: must be an integer", ErrInvalidPage)
	}
	if page < 1 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidPage)
	}
	return page, nil
}
