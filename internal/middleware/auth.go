package middleware

import (
	"strings"

	"agricycle-backend/internal/application/auth"
	"agricycle-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const claimsLocal = "user"

// RequireAuth rejects requests without a valid bearer token (401) before any
// business logic runs. Verified claims land in Locals for handlers.
func RequireAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := bearerClaims(c, tokens)
		if err != nil {
			return response.Unauthorized(c, "Not authorized, token failed")
		}
		c.Locals(claimsLocal, claims)
		return c.Next()
	}
}

// OptionalAuth parses the bearer token when one is present but never rejects;
// an invalid token simply leaves the request anonymous.
func OptionalAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if claims, err := bearerClaims(c, tokens); err == nil {
			c.Locals(claimsLocal, claims)
		}
		return c.Next()
	}
}

// RequireRole rejects authenticated callers whose role is not in the
// endpoint's allow-set (403). Must run after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return response.Unauthorized(c, "Not authorized, token failed")
		}
		for _, r := range roles {
			if claims.Role == r {
				return c.Next()
			}
		}
		return response.Error(c, "Forbidden: insufficient role", fiber.StatusForbidden)
	}
}

// GetClaims returns the verified token claims from Locals (nil if anonymous).
func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocal).(*auth.Claims)
	return claims
}

func bearerClaims(c *fiber.Ctx, tokens *auth.TokenService) (*auth.Claims, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, "Bearer ") {
		return nil, auth.ErrInvalidToken
	}
	return tokens.Verify(c.Context(), strings.TrimPrefix(header, "Bearer "))
}
