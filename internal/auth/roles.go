package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-console/internal/domain"
	apperrors "github.com/spec-kit/ticket-console/pkg/util"
)

// RequireRole ensures the principal holds one of the allowed roles. With no
// roles given any authenticated caller passes.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Not authenticated")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.User.Role]; !exists {
			return apperrors.NewForbidden("Access denied: insufficient role")
		}
		return c.Next()
	}
}
