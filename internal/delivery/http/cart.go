package http

import (
	"net/http"

	"github.com/coolfootwear/storefront/internal/entity"
	"github.com/coolfootwear/storefront/internal/service"
)

type productRef struct {
	ID entity.ID `json:"id"`
}

type couponRequest struct {
	Coupon string `json:"coupon"`
}

func (h *Handler) handleCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.View(r.Context(), h.owner(w, r))
	h.writeCart(w, r, view, err)
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	var req productRef
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.Carts.AddProduct(r.Context(), h.owner(w, r), string(req.ID))
	h.writeCart(w, r, view, err)
}

func (h *Handler) handleIncrement(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.Increment(r.Context(), h.owner(w, r), r.PathValue("id"))
	h.writeCart(w, r, view, err)
}

func (h *Handler) handleDecrement(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.Decrement(r.Context(), h.owner(w, r), r.PathValue("id"))
	h.writeCart(w, r, view, err)
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.Carts.Remove(r.Context(), h.owner(w, r), r.PathValue("id"))
	h.writeCart(w, r, view, err)
}

func (h *Handler) handleClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.Carts.Clear(r.Context(), h.owner(w, r)); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleEditCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.Carts.EditCoupon(r.Context(), h.owner(w, r), req.Coupon)
	h.writeCart(w, r, view, err)
}

// handleApplyCoupon answers a rejected coupon with 422 and the cart, whose
// coupon entry carries the message.
func (h *Handler) handleApplyCoupon(w http.ResponseWriter, r *http.Request) {
	var req couponRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	view, err := h.Carts.ApplyCoupon(r.Context(), h.owner(w, r), req.Coupon)
	if err != nil && view != nil {
		writeJSON(w, http.StatusUnprocessableEntity, view)
		return
	}
	h.writeCart(w, r, view, err)
}

func (h *Handler) writeCart(w http.ResponseWriter, r *http.Request, view *service.CartView, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
