package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// RequireAuthenticated rejects requests that carry no valid principal.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromContext(c); !ok {
			return rejectUnauthenticated(c)
		}
		return c.Next()
	}
}

// RequireRole ensures the principal holds one of the allowed roles.
// Unauthenticated callers get 401, authenticated callers outside the
// set get 403.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return rejectUnauthenticated(c)
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// rejectUnauthenticated fails JSON API routes with 401 and sends
// browser-facing routes to the login page.
func rejectUnauthenticated(c *fiber.Ctx) error {
	path := c.Path()
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/auth/") {
		return apperrors.NewUnauthorized("authentication required")
	}
	return c.Redirect("/login", fiber.StatusFound)
}
