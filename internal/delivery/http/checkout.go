package http

import (
	"net/http"

	"github.com/coolfootwear/storefront/internal/payment"
	"github.com/coolfootwear/storefront/internal/service"
	"github.com/coolfootwear/storefront/internal/session"
)

func (h *Handler) handleBeginCheckout(w http.ResponseWriter, r *http.Request) {
	var form service.CheckoutForm
	if !decodeJSON(w, r, &form) {
		return
	}
	pending, err := h.Checkout.Begin(r.Context(), h.owner(w, r), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// handleConfirmCheckout receives the payment reference once the widget reports success.
func (h *Handler) handleConfirmCheckout(w http.ResponseWriter, r *http.Request) {
	var confirmation payment.Confirmation
	if !decodeJSON(w, r, &confirmation) {
		return
	}
	userID, _ := session.SubjectFromContext(r.Context(), session.RoleUser)

	order, err := h.Checkout.Confirm(r.Context(), h.owner(w, r), userID, confirmation)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.SubjectFromContext(r.Context(), session.RoleUser)
	orders, err := h.Orders.UserOrders(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}
