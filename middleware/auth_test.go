package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profast/models/user"
	"profast/repository"
)

type stubRoleLookup struct {
	roles map[string]user.Role
}

func (s stubRoleLookup) ByEmail(_ context.Context, email string) (*user.User, error) {
	role, ok := s.roles[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user.User{Email: email, Role: role}, nil
}

func signToken(t *testing.T, email string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": email})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/guarded", handler, func(c *fiber.Ctx) error {
		caller, _ := CallerFromCtx(c)
		return c.JSON(fiber.Map{"email": caller.Email, "role": caller.Role})
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth := NewAuth(stubRoleLookup{roles: map[string]user.Role{
		"admin@profast.io": user.RoleAdmin,
	}})
	app := newTestApp(auth.RequireAuth())

	t.Run("missing credential is unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header is unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("bad signature is forbidden", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"email": "x@y.z"})
		signed, _ := token.SignedString([]byte("wrong-secret"))
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("unknown identity defaults to user role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "newcomer@example.com"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	auth := NewAuth(stubRoleLookup{roles: map[string]user.Role{
		"admin@profast.io":  user.RoleAdmin,
		"rashed@profast.io": user.RoleRider,
	}})
	app := newTestApp(auth.RequireRole(user.RoleAdmin))

	t.Run("matching role passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, "admin@profast.io"))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("lesser role is forbidden", func(t *testing.T) {
		for _, email := range []string{"rashed@profast.io", "someone@example.com"} {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			req.Header.Set("Authorization", "Bearer "+signToken(t, email))
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, http.StatusForbidden, resp.StatusCode, "email %s", email)
		}
	})
}
