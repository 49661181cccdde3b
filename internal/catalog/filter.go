package catalog

import (
	"net/url"
	"slices"
	"strings"

	"github.com/coolfootwear/storefront/internal/entity"
)

const (
	SortLowToHigh = "lowToHigh"
	SortHighToLow = "highToLow"
)

// Filters narrow a listing by exact category, brand and size. Empty fields match everything.
type Filters struct {
	Category string `json:"category"`
	Brand    string `json:"brand"`
	Size     string `json:"size"`
	Sort     string `json:"sort"`
}

// FiltersFromQuery reads category, brand, size and sort from query values.
func FiltersFromQuery(values url.Values) Filters {
	return Filters{
		Category: strings.TrimSpace(values.Get("category")),
		Brand:    strings.TrimSpace(values.Get("brand")),
		Size:     strings.TrimSpace(values.Get("size")),
		Sort:     strings.TrimSpace(values.Get("sort")),
	}
}

func (f Filters) match(p entity.Product) bool {
	return (f.Category == "" || p.Category == f.Category) &&
		(f.Brand == "" || p.Brand == f.Brand) &&
		(f.Size == "" || p.Size == f.Size)
}

// Apply filters products and orders them by price when a sort is requested.
// Unknown sort values keep the source order. The input slice is not modified.
func (f Filters) Apply(products []entity.Product) []entity.Product {
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if f.match(p) {
			out = append(out, p)
		}
	}

	switch f.Sort {
	case SortLowToHigh:
		slices.SortStableFunc(out, func(a, b entity.Product) int { return a.Price.Cmp(b.Price) })
	case SortHighToLow:
		slices.SortStableFunc(out, func(a, b entity.Product) int { return b.Price.Cmp(a.Price) })
	}
	return out
}

// Search returns the products whose id, title, brand, category or price contains term.
// Text fields match case-insensitively; an empty term returns every product.
func Search(products []entity.Product, term string) []entity.Product {
	if term == "" {
		return slices.Clone(products)
	}
	lower := strings.ToLower(term)

	var out []entity.Product
	for _, p := range products {
		if strings.Contains(p.ID, term) ||
			strings.Contains(strings.ToLower(p.Title), lower) ||
			strings.Contains(strings.ToLower(p.Brand), lower) ||
			strings.Contains(strings.ToLower(p.Category), lower) ||
			strings.Contains(p.Price.String(), lower) {
			out = append(out, p)
		}
	}
	return out
}
