package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, now func() time.Time) *Manager {
	t.Helper()
	m, err := NewManager(Config{Key: []byte("test-signing-key"), Now: now})
	require.NoError(t, err)
	return m
}

func requestWithCookies(cookies []*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestNewManager_RequiresKey(t *testing.T) {
	_, err := NewManager(Config{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLogin_SetsSevenDayMarker(t *testing.T) {
	now := time.Now()
	m := newManager(t, func() time.Time { return now })
	rec := httptest.NewRecorder()

	require.NoError(t, m.Login(rec, RoleUser, "user-1"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "user_session", cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
	assert.WithinDuration(t, now.Add(7*24*time.Hour), cookies[0].Expires, time.Second)

	r := requestWithCookies(cookies)
	assert.True(t, m.IsLoggedIn(r, RoleUser))
	assert.False(t, m.IsLoggedIn(r, RoleAdmin))

	subject, err := m.Subject(r, RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)
}

func TestIsLoggedIn_MissingOrEmptyMarker(t *testing.T) {
	m := newManager(t, nil)

	assert.False(t, m.IsLoggedIn(requestWithCookies(nil), RoleUser))
	assert.False(t, m.IsLoggedIn(requestWithCookies([]*http.Cookie{{Name: "user_session", Value: ""}}), RoleUser))
}

func TestIsLoggedIn_RejectsPlaceholderValue(t *testing.T) {
	m := newManager(t, nil)
	r := requestWithCookies([]*http.Cookie{{Name: "admin_session", Value: "secureSessionToken"}})

	assert.False(t, m.IsLoggedIn(r, RoleAdmin))
}

func TestVerify_RejectsForeignKeyAndRoleSwap(t *testing.T) {
	m := newManager(t, nil)
	other, err := NewManager(Config{Key: []byte("another-key")})
	require.NoError(t, err)

	token, _, err := other.Issue(RoleUser, "u")
	require.NoError(t, err)
	_, err = m.Verify(RoleUser, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, _, err = m.Issue(RoleUser, "u")
	require.NoError(t, err)
	_, err = m.Verify(RoleAdmin, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsExpired(t *testing.T) {
	issuedAt := time.Now().Add(-8 * 24 * time.Hour)
	m := newManager(t, func() time.Time { return issuedAt })

	token, _, err := m.Issue(RoleUser, "u")
	require.NoError(t, err)

	fresh := newManager(t, nil)
	_, err = fresh.Verify(RoleUser, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_ExpiresCookie(t *testing.T) {
	m := newManager(t, nil)
	rec := httptest.NewRecorder()

	m.Logout(rec, RoleAdmin)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestRole_Paths(t *testing.T) {
	assert.Equal(t, "/userlogin", RoleUser.LoginPath())
	assert.Equal(t, "/adminlogin", RoleAdmin.LoginPath())
}

func TestRequire(t *testing.T) {
	m := newManager(t, time.Now)
	var seen string
	protected := m.Require(RoleAdmin, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = SubjectFromContext(r.Context(), RoleAdmin)
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/admin/orders", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/adminlogin"`)

	login := httptest.NewRecorder()
	require.NoError(t, m.Login(login, RoleAdmin, "admin"))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, requestWithCookies(login.Result().Cookies()))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "admin", seen)
}
