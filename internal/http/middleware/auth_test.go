package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func protectedHandler() http.Handler {
	return Authenticate(testSecret)(http.HandlerFunc(RequireManager(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
}

func TestRequireManagerWithoutToken(t *testing.T) {
	rec := httptest.NewRecorder()
	protectedHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/monitor-indices", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireManagerWithInsufficientRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/monitor-indices", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": float64(3), "role": "visitor"}))

	rec := httptest.NewRecorder()
	protectedHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireManagerWithManagerRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/monitor-indices", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.MapClaims{"user_id": float64(3), "role": "park_manager"}))

	rec := httptest.NewRecorder()
	protectedHandler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	var reached bool
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/monitor-indices", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, reached)
}

func TestAuthenticateAllowsAnonymousPassThrough(t *testing.T) {
	handler := Authenticate(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := PrincipalFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/environment-data", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
