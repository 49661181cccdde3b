package http

import "net/http"

func (h *Handler) handleWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Wishlists.Items(r.Context(), h.owner(w, r))
	writeWishlist(w, r, items, err)
}

func (h *Handler) handleAddToWishlist(w http.ResponseWriter, r *http.Request) {
	var req productRef
	if !decodeJSON(w, r, &req) {
		return
	}
	id := string(req.ID)
	if _, err := h.Catalog.Product(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	items, err := h.Wishlists.Add(r.Context(), h.owner(w, r), id)
	writeWishlist(w, r, items, err)
}

func (h *Handler) handleToggleWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Wishlists.Toggle(r.Context(), h.owner(w, r), r.PathValue("id"))
	writeWishlist(w, r, items, err)
}

func (h *Handler) handleRemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	items, err := h.Wishlists.Remove(r.Context(), h.owner(w, r), r.PathValue("id"))
	writeWishlist(w, r, items, err)
}

func (h *Handler) handleClearWishlist(w http.ResponseWriter, r *http.Request) {
	if err := h.Wishlists.Clear(r.Context(), h.owner(w, r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeWishlist(w http.ResponseWriter, r *http.Request, items []string, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"wishlist": items})
}
