package middlewarectx_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/dsar-portal/internal/http/middlewarectx"
	"github.com/magabrotheeeer/dsar-portal/internal/lib/jwt"
	"github.com/magabrotheeeer/dsar-portal/internal/models"
)

type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

func makeLogger() *slog.Logger {
	return slog.New(discardHandler{})
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test_secret", 24*time.Hour)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uid, role, ok := middlewarectx.ActorFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, "uid-1", uid)
		assert.Equal(t, models.RoleOwner, role)
		w.WriteHeader(http.StatusOK)
	})
	handler := middlewarectx.JWTMiddleware(maker, makeLogger())(next)

	t.Run("valid token", func(t *testing.T) {
		token, err := maker.GenerateToken("uid-1", "owner@acme.example", "owner")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/companies/my", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/my", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token treated as absent", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/companies/my", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middlewarectx.RequireRole(models.RoleAdmin, makeLogger())(next)

	t.Run("matching role", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middlewarectx.Role, "admin")
		req := httptest.NewRequest(http.MethodGet, "/admin/companies/pending", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("wrong role gets 403 not 401", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), middlewarectx.Role, "owner")
		req := httptest.NewRequest(http.MethodGet, "/admin/companies/pending", nil).WithContext(ctx)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no role in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/companies/pending", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
