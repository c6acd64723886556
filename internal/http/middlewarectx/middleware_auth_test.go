package middlewarectx

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/commerce-backend/internal/http/response"
	"github.com/magabrotheeeer/commerce-backend/internal/lib/jwt"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// identityEcho — конечный обработчик, фиксирующий идентичность из контекста.
type identityEcho struct {
	called   bool
	username string
	role     string
}

func (h *identityEcho) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.username, _ = r.Context().Value(User).(string)
	h.role, _ = r.Context().Value(Role).(string)
	w.WriteHeader(http.StatusOK)
}

func TestJWTMiddlewareValidToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	token, err := maker.GenerateToken("alice", "customer")
	require.NoError(t, err)

	echo := &identityEcho{}
	handler := JWTMiddleware(maker, testLogger())(echo)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, echo.called)
	assert.Equal(t, "alice", echo.username)
	assert.Equal(t, "customer", echo.role)
}

func TestJWTMiddlewareMissingToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	echo := &identityEcho{}
	handler := JWTMiddleware(maker, testLogger())(echo)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "wrong scheme", header: "Basic abc123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, echo.called)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, response.StatusError, resp.Status)
			assert.Equal(t, "access token required", resp.Error)
		})
	}
}

func TestJWTMiddlewareInvalidToken(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret-key", time.Hour)
	otherMaker := jwt.NewJWTMaker("other-secret", time.Hour)
	foreign, err := otherMaker.GenerateToken("alice", "customer")
	require.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("test-secret-key", -time.Minute)
	expired, err := expiredMaker.GenerateToken("alice", "customer")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage token", token: "not-a-jwt"},
		{name: "wrong signing key", token: foreign},
		{name: "expired token", token: expired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo := &identityEcho{}
			handler := JWTMiddleware(maker, testLogger())(echo)

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.False(t, echo.called)

			var resp response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "invalid or expired token", resp.Error)
		})
	}
}
