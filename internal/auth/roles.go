package auth

import (
	"github.com/gofiber/fiber/v2"

	apperrors "github.com/campuscare/complaint-service/pkg/util"
)

// RequireAdmin ensures the authenticated principal carries the admin role.
// The role is an explicit field set at account creation, never inferred from
// the email address.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok || principal.User == nil {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.User.IsAdmin() {
			return apperrors.NewForbidden("admin only")
		}
		return c.Next()
	}
}
