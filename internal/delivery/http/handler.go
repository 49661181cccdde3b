package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/coolfootwear/storefront/internal/catalog"
	"github.com/coolfootwear/storefront/internal/pagination"
	"github.com/coolfootwear/storefront/internal/payment"
	"github.com/coolfootwear/storefront/internal/pricing"
	"github.com/coolfootwear/storefront/internal/repository"
	"github.com/coolfootwear/storefront/internal/service"
	"github.com/coolfootwear/storefront/internal/session"
	"github.com/coolfootwear/storefront/internal/validation"
)

// Deps are the collaborators the HTTP layer serves.
type Deps struct {
	Catalog   *catalog.Cache
	Products  repository.ProductRepository
	Carts     *service.CartService
	Wishlists *service.WishlistService
	Accounts  *service.AccountService
	Orders    *service.OrderService
	Checkout  *service.CheckoutService
	Sessions  *session.Manager
	// RemoteCatalog is set when products are read from the catalog API; admin
	// product writes are then refused.
	RemoteCatalog bool
	// SecureCookies marks the browser cookie Secure.
	SecureCookies bool
}

// Handler handles HTTP requests for the application.
type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	user := func(fn http.HandlerFunc) http.Handler { return h.Sessions.Require(session.RoleUser, fn) }
	admin := func(fn http.HandlerFunc) http.Handler { return h.Sessions.Require(session.RoleAdmin, fn) }

	mux.HandleFunc("GET /api/products", h.handleBrowse)
	mux.HandleFunc("GET /api/products/{id}", h.handleProduct)

	mux.HandleFunc("GET /api/cart", h.handleCart)
	mux.HandleFunc("DELETE /api/cart", h.handleClearCart)
	mux.HandleFunc("POST /api/cart/items", h.handleAddToCart)
	mux.HandleFunc("POST /api/cart/items/{id}/increment", h.handleIncrement)
	mux.HandleFunc("POST /api/cart/items/{id}/decrement", h.handleDecrement)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.handleRemoveFromCart)
	mux.HandleFunc("PUT /api/cart/coupon", h.handleEditCoupon)
	mux.HandleFunc("POST /api/cart/coupon", h.handleApplyCoupon)

	mux.HandleFunc("GET /api/wishlist", h.handleWishlist)
	mux.HandleFunc("DELETE /api/wishlist", h.handleClearWishlist)
	mux.HandleFunc("POST /api/wishlist/items", h.handleAddToWishlist)
	mux.HandleFunc("POST /api/wishlist/items/{id}/toggle", h.handleToggleWishlist)
	mux.HandleFunc("DELETE /api/wishlist/items/{id}", h.handleRemoveFromWishlist)

	mux.HandleFunc("GET /api/session", h.handleSession)
	mux.HandleFunc("POST /api/signup", h.handleSignUp)
	mux.HandleFunc("POST /api/login", h.handleLogin)
	mux.HandleFunc("POST /api/logout", h.handleLogout)
	mux.Handle("GET /api/me", user(h.handleProfile))
	mux.Handle("GET /api/orders", user(h.handleMyOrders))
	mux.Handle("POST /api/checkout", user(h.handleBeginCheckout))
	mux.Handle("POST /api/checkout/confirm", user(h.handleConfirmCheckout))

	mux.HandleFunc("POST /api/admin/login", h.handleAdminLogin)
	mux.HandleFunc("POST /api/admin/logout", h.handleAdminLogout)
	mux.Handle("GET /api/admin/products", admin(h.handleAdminProducts))
	mux.Handle("POST /api/admin/products", admin(h.handleCreateProduct))
	mux.Handle("PUT /api/admin/products/{id}", admin(h.handleUpdateProduct))
	mux.Handle("DELETE /api/admin/products/{id}", admin(h.handleDeleteProduct))
	mux.Handle("GET /api/admin/orders", admin(h.handleAdminOrders))
	mux.Handle("DELETE /api/admin/orders/{id}", admin(h.handleDeleteOrder))
	mux.Handle("GET /api/admin/users", admin(h.handleAdminUsers))
	mux.Handle("DELETE /api/admin/users/{id}", admin(h.handleDeleteUser))
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// writeError maps service errors onto statuses and the messages the storefront shows.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErrs validation.Errors
	switch {
	case errors.As(err, &fieldErrs):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fieldErrs})
	case errors.Is(err, repository.ErrEmailExists):
		writeMessage(w, http.StatusConflict, "Email already exists.")
	case errors.Is(err, service.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, catalog.ErrFieldsRequired):
		writeMessage(w, http.StatusUnprocessableEntity, "All fields are required!")
	case errors.Is(err, catalog.ErrProductNotFound), errors.Is(err, repository.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "not found")
	case errors.Is(err, pricing.ErrInvalidCoupon), errors.Is(err, pricing.ErrCouponExceedsTotal):
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrEmptyCart),
		errors.Is(err, service.ErrNoPendingPayment),
		errors.Is(err, service.ErrCartChanged),
		errors.Is(err, catalog.ErrReadOnly):
		writeMessage(w, http.StatusConflict, err.Error())
	case errors.Is(err, payment.ErrMissingPaymentID),
		errors.Is(err, payment.ErrInvalidAmount),
		errors.Is(err, pagination.ErrInvalidPage):
		writeMessage(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("Request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

// EnableCORS is a middleware to allow the storefront frontend to connect.
func EnableCORS(origin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if origin != "*" {
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
