package catalog

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/coolfootwear/storefront/internal/entity"
)

// ErrFieldsRequired is returned when an admin submits a product with a blank field.
var ErrFieldsRequired = errors.New("all fields are required")

// ErrReadOnly is returned for admin writes while products are served by a remote API.
var ErrReadOnly = errors.New("catalog is read-only: products come from the remote catalog API")

// Categories offered by the admin product form.
var Categories = []string{"Male", "Female", "Kids"}

// PrepareProduct trims an admin submission, rejects blank fields and
// normalizes the brand to "Capitalized" form so brand filters stay consistent.
func PrepareProduct(p entity.Product) (entity.Product, error) {
	for _, field := range []*string{&p.Title, &p.Description, &p.ImageURL, &p.Category, &p.Brand, &p.Color, &p.Size} {
		*field = strings.TrimSpace(*field)
		if *field == "" {
			return entity.Product{}, ErrFieldsRequired
		}
	}
	if !p.Price.IsPositive() || !p.MRP.IsPositive() {
		return entity.Product{}, ErrFieldsRequired
	}

	p.Brand = capitalize(p.Brand)
	return p, nil
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
