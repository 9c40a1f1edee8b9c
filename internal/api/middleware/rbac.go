package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/core/domain"
)

// RequireRole lets a request through when its principal holds any of the
// allowed roles. Anything else ends in domain.ErrForbidden.
func RequireRole(allowedRoles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, r := range RolesFrom(c) {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}
