package http

import (
	"net/http"

	"github.com/coolfootwear/storefront/internal/catalog"
	"github.com/coolfootwear/storefront/internal/pagination"
)

func (h *Handler) handleBrowse(w http.ResponseWriter, r *http.Request) {
	page, err := pagination.FromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	result, err := h.Catalog.Browse(r.Context(), catalog.FiltersFromQuery(r.URL.Query()), page)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Catalog.Product(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}
