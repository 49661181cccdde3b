// Package pagination slices listings into fixed-size pages and tracks the block of
// page-number controls shown around the current page.
package pagination

const (
	// PageSize is the number of items on one page.
	PageSize = 12
	// BlockSize is the number of page-number controls shown at once.
	BlockSize = 10
)

// TotalPages returns ceil(itemCount / PageSize).
func TotalPages(itemCount int) int {
	if itemCount <= 0 {
		return 0
	}
	return (itemCount + PageSize - 1) / PageSize
}

// Slice returns the items displayed on the 1-based page.
func Slice[T any](items []T, page int) []T {
	if page < 1 {
		return []T{}
	}
	start := (page - 1) * PageSize
	if start >= len(items) {
		return []T{}
	}
	end := min(page*PageSize, len(items))
	return items[start:end]
}

// Range returns the [start, end] block of page numbers containing page.
// When totalPages is 0 the block is empty ([1, 0]).
func Range(page, totalPages int) [2]int {
	if page < 1 {
		page = 1
	}
	start := (page-1)/BlockSize*BlockSize + 1
	end := min(start+BlockSize-1, totalPages)
	return [2]int{start, end}
}

// Window is the navigation state of a paginated listing.
type Window struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"totalPages"`
	PageRange  [2]int `json:"pageRange"`
}

// NewWindow starts on page 1 of a listing with itemCount items.
func NewWindow(itemCount int) Window {
	total := TotalPages(itemCount)
	return Window{Page: 1, TotalPages: total, PageRange: Range(1, total)}
}

// SelectPage moves to page n when 1 <= n <= TotalPages and n is not the current page.
func (w *Window) SelectPage(n int) bool {
	if n < 1 || n > w.TotalPages || n == w.Page {
		return false
	}
	w.setPage(n)
	return true
}

// NextBlock jumps to the first page after the visible block, if there is one.
func (w *Window) NextBlock() bool {
	next := w.PageRange[1] + 1
	if next > w.TotalPages {
		return false
	}
	w.setPage(next)
	return true
}

// PreviousBlock jumps back one block width from the start of the visible block,
// landing on the first page of the previous block.
func (w *Window) PreviousBlock() bool {
	prev := w.PageRange[0] - BlockSize
	if prev <= 0 {
		return false
	}
	w.setPage(prev)
	return true
}

// Resize recomputes the page count for a new item count and clamps the current page.
func (w *Window) Resize(itemCount int) {
	w.TotalPages = TotalPages(itemCount)
	page := w.Page
	if page > w.TotalPages {
		page = w.TotalPages
	}
	if page < 1 {
		page = 1
	}
	w.setPage(page)
}

func (w *Window) setPage(n int) {
	w.Page = n
	w.PageRange = Range(n, w.TotalPages)
}
