package middleware

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"profast/logger"
	"profast/models/user"
	"profast/repository"
	"profast/types"
)

// Caller is the verified identity attached to the request context.
type Caller struct {
	Email string
	Role  user.Role
}

// RoleLookup resolves a verified email to its stored identity. Identities
// without a row default to the user role.
type RoleLookup interface {
	ByEmail(ctx context.Context, email string) (*user.User, error)
}

// Auth authenticates bearer credentials and gates routes by role. It is
// read-only; no handler it wraps sees an unverified caller.
type Auth struct {
	roles RoleLookup
}

func NewAuth(roles RoleLookup) *Auth {
	return &Auth{roles: roles}
}

// VerifyJWT verifies a bearer token and returns its claims.
func VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid JWT token")
	}
	return claims, nil
}

// RequireAuth admits any authenticated caller.
func (a *Auth) RequireAuth() fiber.Handler {
	return a.requireRole("")
}

// RequireRole admits only authenticated callers whose stored role matches.
func (a *Auth) RequireRole(role user.Role) fiber.Handler {
	return a.requireRole(role)
}

func (a *Auth) requireRole(required user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		var token string

		if authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Invalid authorization header format",
				})
			}
			token = tokenParts[1]
		} else {
			// Cookie fallback for browser clients.
			token = c.Cookies("access")
			if token == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
					Status:  fiber.StatusUnauthorized,
					Message: "Authorization token missing",
				})
			}
		}

		claims, err := VerifyJWT(token)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Invalid or expired token",
			})
		}

		email, _ := claims["email"].(string)
		if email == "" {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Token carries no verified email",
			})
		}

		role := user.RoleUser
		if u, err := a.roles.ByEmail(c.Context(), email); err == nil {
			role = u.Role
		} else if !errors.Is(err, repository.ErrNotFound) {
			logger.Error("Role lookup failed for "+email, err)
			return c.Status(fiber.StatusInternalServerError).JSON(types.ApiResponse{
				Status:  fiber.StatusInternalServerError,
				Message: "Internal server error",
			})
		}

		if required != "" && role != required {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Insufficient permissions",
			})
		}

		c.Locals("caller", Caller{Email: email, Role: role})
		return c.Next()
	}
}

// CallerFromCtx returns the verified caller set by the auth middleware.
func CallerFromCtx(c *fiber.Ctx) (Caller, bool) {
	caller, ok := c.Locals("caller").(Caller)
	return caller, ok
}
