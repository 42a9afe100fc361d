// Package middleware holds the request-level plumbing: the auth gate that
// turns a bearer token into a request-scoped principal, the role checks used
// by protected route groups, and the request logger.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/campushub/asset-manager/internal/models"
	"github.com/campushub/asset-manager/internal/token"
)

// Principal is the identity established for the current request after token
// verification. It lives in the request context and nowhere else.
type Principal struct {
	Username string
	Roles    []models.Role
}

func (p *Principal) HasRole(role models.Role) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type principalKey struct{}

func IntoContext(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok
}

// Authenticate is the auth gate. It runs on every request, extracts a bearer
// token from the Authorization header and, when the token verifies, attaches
// a principal to the request context. It never rejects: a missing or invalid
// token just means no identity is established, and RequireAuth/RequireRole
// decide downstream what that costs the caller.
func Authenticate(tokens *token.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := resolveToken(c.Request())
			if raw == "" {
				return next(c)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return next(c)
			}

			p := &Principal{
				Username: claims.Subject,
				Roles:    parseRoles(claims.Role),
			}

			req := c.Request().WithContext(IntoContext(c.Request().Context(), p))
			c.SetRequest(req)
			return next(c)
		}
	}
}

func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := PrincipalFromContext(c.Request().Context()); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
		return next(c)
	}
}

func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !p.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "not enough rights")
			}
			return next(c)
		}
	}
}

func resolveToken(r *http.Request) string {
	bearer := r.Header.Get("Authorization")
	if strings.HasPrefix(bearer, "Bearer ") {
		return strings.TrimSpace(bearer[len("Bearer "):])
	}
	return ""
}

// parseRoles splits a comma separated role claim and keeps only elements that
// parse against the closed role set. Unknown strings are dropped rather than
// passed through as ad-hoc authorities.
func parseRoles(claim string) []models.Role {
	parts := strings.Split(claim, ",")
	roles := make([]models.Role, 0, len(parts))
	for _, part := range parts {
		role, err := models.ParseRole(part)
		if err != nil {
			continue
		}
		roles = append(roles, role)
	}
	return roles
}
