package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kliang/packmate/backend/internal/auth"
	"github.com/kliang/packmate/backend/internal/middleware"
)

const testSecret = "test-secret"

// uidEchoHandler writes the authenticated user id so tests can verify the
// context plumbing end to end.
var uidEchoHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.UserID(r.Context())
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if uid == 42 {
		w.WriteHeader(http.StatusOK)
		return
	}
	w.WriteHeader(http.StatusTeapot)
})

func TestAuthenticator_ValidToken_SetsUserID(t *testing.T) {
	token, err := auth.NewIssuer(testSecret).Issue(42, "traveler")
	require.NoError(t, err)

	h := middleware.NewAuthenticator(testSecret)(uidEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticator_MissingHeader_Returns401(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(uidEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_MalformedHeader_Returns401(t *testing.T) {
	h := middleware.NewAuthenticator(testSecret)(uidEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_WrongSecret_Returns401(t *testing.T) {
	token, err := auth.NewIssuer("other-secret").Issue(42, "traveler")
	require.NoError(t, err)

	h := middleware.NewAuthenticator(testSecret)(uidEchoHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserID_NoValue(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := middleware.UserID(req.Context())
	assert.False(t, ok)
}
