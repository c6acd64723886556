package middlewarectx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/commerce-backend/internal/models"
)

func requestWithIdentity(target, username, role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(req.Context(), User, username)
	ctx = context.WithValue(ctx, Role, role)
	return req.WithContext(ctx)
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantCode int
	}{
		{name: "admin allowed", role: models.RoleAdmin, wantCode: http.StatusOK},
		{name: "customer denied", role: models.RoleCustomer, wantCode: http.StatusForbidden},
		{name: "no role denied", role: "", wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo := &identityEcho{}
			handler := RequireAdmin(testLogger())(echo)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, requestWithIdentity("/users", "alice", tt.role))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, echo.called)
		})
	}
}

func TestRequireSelfOrAdmin(t *testing.T) {
	tests := []struct {
		name     string
		username string
		role     string
		target   string
		wantCode int
	}{
		{name: "owner allowed", username: "alice", role: models.RoleCustomer, target: "alice", wantCode: http.StatusOK},
		{name: "admin allowed for anyone", username: "root", role: models.RoleAdmin, target: "alice", wantCode: http.StatusOK},
		{name: "foreign profile denied", username: "bob", role: models.RoleCustomer, target: "alice", wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			echo := &identityEcho{}
			handler := RequireSelfOrAdmin(testLogger())(echo)

			req := requestWithIdentity("/users/"+tt.target, tt.username, tt.role)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("username", tt.target)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantCode == http.StatusOK, echo.called)
		})
	}
}
