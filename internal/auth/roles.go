package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/support-agent/internal/domain"
	"github.com/spec-kit/support-agent/pkg/errorutil"
)

// RequireSubject ensures the principal is one of the allowed subject types.
func RequireSubject(allowed ...domain.SubjectType) fiber.Handler {
	allowedSet := make(map[domain.SubjectType]struct{}, len(allowed))
	for _, s := range allowed {
		allowedSet[s] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return errorutil.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[principal.SubjectType]; !exists {
			return errorutil.NewForbidden("subject not allowed")
		}
		return c.Next()
	}
}
