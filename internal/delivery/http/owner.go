package http

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// ownerCookie identifies the browser whose cart and wishlist a request works on.
const ownerCookie = "cart_owner"

const ownerCookieLifetime = 365 * 24 * time.Hour

// owner returns the browser's owner id, issuing a new one on first contact.
func (h *Handler) owner(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(ownerCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(ownerCookieLifetime.Seconds()),
		Secure:   h.SecureCookies,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}
