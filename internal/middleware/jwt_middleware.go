package middleware

import (
	"net/http"
	"strings"

	"LessonHubAPI/internal/model"
	"LessonHubAPI/internal/token"

	"github.com/labstack/echo/v4"
)

const claimsKey = "auth_claims"

// JWTMiddleware returns an Echo middleware that extracts the bearer token,
// verifies it against the access secret and attaches the decoded claims to
// the request context. Expired and malformed tokens are both answered with
// the same 401; clients learn nothing beyond "not accepted".
func JWTMiddleware(ts *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "no token provided"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid authorization header"})
			}
			claims, err := ts.ParseAccessToken(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "invalid or expired token"})
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// GetClaims returns the claims attached by JWTMiddleware, or nil.
func GetClaims(c echo.Context) *token.Claims {
	v := c.Get(claimsKey)
	if v == nil {
		return nil
	}
	if cl, ok := v.(*token.Claims); ok {
		return cl
	}
	return nil
}

// RequireRoles allows the request through only when the authenticated role
// is in the given set. Missing claims means the auth middleware did not run
// or failed; that is a 401, not a 403.
func RequireRoles(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := GetClaims(c)
			if claims == nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			for _, r := range roles {
				if claims.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, echo.Map{"message": "insufficient permissions"})
		}
	}
}

// AdminOnly is RequireRoles(admin) kept as a named middleware for the admin
// route groups.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return RequireRoles(model.RoleAdmin)(next)
}
