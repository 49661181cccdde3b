package http

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/coolfootwear/storefront/internal/catalog"
	"github.com/coolfootwear/storefront/internal/entity"
)

func (h *Handler) handleAdminProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.Products(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Search(products, r.URL.Query().Get("q")))
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.catalogWritable(w, r) {
		return
	}
	var input entity.Product
	if !decodeJSON(w, r, &input) {
		return
	}
	product, err := catalog.PrepareProduct(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	product.ID = uuid.NewString()

	if err := h.Products.Create(r.Context(), &product); err != nil {
		writeError(w, r, err)
		return
	}
	h.Catalog.Invalidate()
	writeJSON(w, http.StatusCreated, product)
}

func (h *Handler) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !h.catalogWritable(w, r) {
		return
	}
	var input entity.Product
	if !decodeJSON(w, r, &input) {
		return
	}
	product, err := catalog.PrepareProduct(input)
	if err != nil {
		writeError(w, r, err)
		return
	}
	product.ID = r.PathValue("id")

	if err := h.Products.Update(r.Context(), &product); err != nil {
		writeError(w, r, err)
		return
	}
	h.Catalog.Invalidate()
	writeJSON(w, http.StatusOK, product)
}

func (h *Handler) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !h.catalogWritable(w, r) {
		return
	}
	h.deleted(w, r, h.Products.Delete(r.Context(), r.PathValue("id")))
	h.Catalog.Invalidate()
}

func (h *Handler) catalogWritable(w http.ResponseWriter, r *http.Request) bool {
	if h.RemoteCatalog {
		writeError(w, r, catalog.ErrReadOnly)
		return false
	}
	return true
}

func (h *Handler) handleAdminOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.Orders(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, r, h.Orders.DeleteOrder(r.Context(), r.PathValue("id")))
}

func (h *Handler) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Accounts.Users(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	h.deleted(w, r, h.Accounts.DeleteUser(r.Context(), r.PathValue("id")))
}

func (h *Handler) deleted(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
