package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the duration of a
// single request. It is never persisted.
type Principal struct {
	UserID   string
	Username string
	Role     domain.Role
}

// Authenticator validates bearer tokens on every request. It is
// optimistic: a missing or invalid token leaves the request
// unauthenticated and the route guards make the final call, so one
// middleware serves both public and protected endpoints.
type Authenticator struct {
	tokens *TokenManager
}

// NewAuthenticator constructs the middleware.
func NewAuthenticator(tokens *TokenManager) *Authenticator {
	return &Authenticator{tokens: tokens}
}

// Handle extracts and validates the bearer token, attaching the caller
// identity when it checks out.
func (a *Authenticator) Handle(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return c.Next()
	}

	claims, err := a.tokens.ParseKind(token, TokenKindAccess)
	if err != nil {
		// Expired or forged tokens do not abort the request here;
		// protected routes reject it at the guard.
		return c.Next()
	}

	c.Locals(principalKey, &Principal{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
	})
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// PrincipalFromContext retrieves the authenticated caller, if any.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
