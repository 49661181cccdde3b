package http

import (
	"net/http"

	"github.com/coolfootwear/storefront/internal/service"
	"github.com/coolfootwear/storefront/internal/session"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleSession reports which roles the request is logged in as.
func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"user":  h.Sessions.IsLoggedIn(r, session.RoleUser),
		"admin": h.Sessions.IsLoggedIn(r, session.RoleAdmin),
	})
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	var form service.SignUpForm
	if !decodeJSON(w, r, &form) {
		return
	}
	user, err := h.Accounts.SignUp(r.Context(), form)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := h.Accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Sessions.Login(w, session.RoleUser, user.ID); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// handleLogout ends the user session and forgets the browser's cart and wishlist.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.Logout(r.Context(), h.owner(w, r)); err != nil {
		writeError(w, r, err)
		return
	}
	h.Sessions.Logout(w, session.RoleUser)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := session.SubjectFromContext(r.Context(), session.RoleUser)
	user, err := h.Accounts.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.Accounts.AdminLogin(req.Username, req.Password); err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Sessions.Login(w, session.RoleAdmin, req.Username); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleAdminLogout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w, session.RoleAdmin)
	w.WriteHeader(http.StatusNoContent)
}
