// Package session issues and verifies the role-scoped login markers carried in cookies.
// A marker is a signed token naming the subject and role; it expires seven days after login.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role scopes a session marker.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultLifetime is the forward expiry set on login.
const DefaultLifetime = 7 * 24 * time.Hour

var (
	// ErrNoSession indicates the role's marker is absent or empty.
	ErrNoSession = errors.New("session: not logged in")
	// ErrInvalidToken indicates the marker failed verification or has expired.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrInvalidConfig indicates the manager was created without a signing key.
	ErrInvalidConfig = errors.New("session: invalid config")
)

// CookieName returns the cookie carrying the role's marker.
func (r Role) CookieName() string {
	return string(r) + "_session"
}

// LoginPath is where a client without a valid marker for the role is sent.
func (r Role) LoginPath() string {
	if r == RoleAdmin {
		return "/adminlogin"
	}
	return "/userlogin"
}

// Claims are the signed contents of a marker.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// Config controls token signing and cookie attributes.
type Config struct {
	Key      []byte
	Lifetime time.Duration
	Secure   bool
	Now      func() time.Time
}

// Manager signs markers on login and verifies them on every gated request.
type Manager struct {
	key      []byte
	lifetime time.Duration
	secure   bool
	now      func() time.Time
}

func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Key) == 0 {
		return nil, fmt.Errorf("%w: signing key is required", ErrInvalidConfig)
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = DefaultLifetime
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Manager{key: cfg.Key, lifetime: cfg.Lifetime, secure: cfg.Secure, now: cfg.Now}, nil
}

// Issue signs a marker for subject in role and returns it with its expiry.
func (m *Manager) Issue(role Role, subject string) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.lifetime)
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, expires, nil
}

// Verify checks the signature, expiry and role of a marker.
func (m *Manager) Verify(role Role, token string) (*Claims, error) {
	if token == "" {
		return nil, ErrNoSession
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Role != role {
		return nil, fmt.Errorf("%w: role %q does not match %q", ErrInvalidToken, claims.Role, role)
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(m.now()) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidToken)
	}
	return claims, nil
}

// Login sets the role's marker cookie for subject.
func (m *Manager) Login(w http.ResponseWriter, role Role, subject string) error {
	token, expires, err := m.Issue(role, subject)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     role.CookieName(),
		Value:    token,
		Path:     "/",
		Expires:  expires.UTC(),
		MaxAge:   int(m.lifetime.Seconds()),
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// Logout deletes the role's marker cookie.
func (m *Manager) Logout(w http.ResponseWriter, role Role) {
	http.SetCookie(w, &http.Cookie{
		Name:     role.CookieName(),
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Subject returns the subject of the request's valid marker for role.
func (m *Manager) Subject(r *http.Request, role Role) (string, error) {
	cookie, err := r.Cookie(role.CookieName())
	if err != nil {
		return "", ErrNoSession
	}
	claims, err := m.Verify(role, cookie.Value)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// IsLoggedIn reports whether r carries a valid marker for role.
func (m *Manager) IsLoggedIn(r *http.Request, role Role) bool {
	_, err := m.Subject(r, role)
	return err == nil
}
