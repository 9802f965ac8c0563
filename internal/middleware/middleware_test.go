package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"GearGodAPI/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func run(t *testing.T, req *http.Request, h echo.HandlerFunc, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	require.NoError(t, h(c))
	return rec
}

func ok(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestJWTMiddleware(t *testing.T) {
	SetSecret("test-secret")
	token, err := GenerateToken(7, "ada@example.com", model.RoleCustomer, 1)
	require.NoError(t, err)

	t.Run("missing header", func(t *testing.T) {
		rec := run(t, httptest.NewRequest(http.MethodGet, "/", nil), ok, JWTMiddleware())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		var got *Claims
		rec := run(t, req, func(c echo.Context) error {
			got = GetClaims(c)
			return ok(c)
		}, JWTMiddleware())
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), got.UserID)
	})

	t.Run("query token rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
		rec := run(t, req, ok, JWTMiddleware())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("query token on websocket route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token="+token, nil)
		var got *Claims
		rec := run(t, req, func(c echo.Context) error {
			got = GetClaims(c)
			return ok(c)
		}, WSAuth())
		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, got)
		assert.Equal(t, int64(7), got.UserID)
	})

	t.Run("tampered token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token+"x")
		rec := run(t, req, ok, JWTMiddleware())
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAdminOnly(t *testing.T) {
	SetSecret("test-secret")
	customer, _ := GenerateToken(1, "c@example.com", model.RoleCustomer, 1)
	admin, _ := GenerateToken(2, "a@example.com", model.RoleAdmin, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	assert.Equal(t, http.StatusForbidden, run(t, req, ok, JWTMiddleware(), AdminOnly).Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	assert.Equal(t, http.StatusOK, run(t, req, ok, JWTMiddleware(), AdminOnly).Code)
}

func TestCartIdentity(t *testing.T) {
	SetSecret("test-secret")

	t.Run("issues guest cookie", func(t *testing.T) {
		var key string
		rec := run(t, httptest.NewRequest(http.MethodGet, "/", nil), func(c echo.Context) error {
			key = CartKey(c)
			return ok(c)
		}, CartIdentity())
		assert.True(t, strings.HasPrefix(key, "guest:"))
		assert.Contains(t, rec.Header().Get("Set-Cookie"), GuestCookie+"=")
	})

	t.Run("reuses guest cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: GuestCookie, Value: "3f1c6a3e-8f0a-4d55-9c59-1a8f0f3a7c11"})
		var key string
		rec := run(t, req, func(c echo.Context) error {
			key = CartKey(c)
			return ok(c)
		}, CartIdentity())
		assert.Equal(t, "guest:3f1c6a3e-8f0a-4d55-9c59-1a8f0f3a7c11", key)
		assert.Empty(t, rec.Header().Get("Set-Cookie"))
	})

	t.Run("authenticated user", func(t *testing.T) {
		token, _ := GenerateToken(42, "u@example.com", model.RoleCustomer, 1)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		var key string
		run(t, req, func(c echo.Context) error {
			key = CartKey(c)
			return ok(c)
		}, CartIdentity())
		assert.Equal(t, "user:42", key)
	})
}

func TestRequestLoggerRedactsToken(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	req := httptest.NewRequest(http.MethodGet, "/api/admin/orders/live?token=secret-jwt&x=1", nil)
	run(t, req, ok, RequestLogger(zap.New(core)))

	require.Equal(t, 1, logs.Len())
	uri := logs.All()[0].ContextMap()["uri"]
	assert.NotContains(t, uri, "secret-jwt")
	assert.Contains(t, uri, "token=REDACTED")
	assert.Contains(t, uri, "x=1")
}

func TestRedactURILeavesOtherQueriesAlone(t *testing.T) {
	assert.Equal(t, "/api/products?limit=5", redactURI("/api/products?limit=5"))
}
