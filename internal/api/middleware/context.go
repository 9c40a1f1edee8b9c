package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/core/domain"
)

const (
	principalKey = "principal"
	rolesKey     = "roles"
)

// PrincipalFrom returns the principal attached by BasicAuth or Bearer.
func PrincipalFrom(c echo.Context) (domain.Principal, bool) {
	p, ok := c.Get(principalKey).(domain.Principal)
	return p, ok
}

// RolesFrom returns the roles attached together with the principal.
func RolesFrom(c echo.Context) []domain.Role {
	roles, _ := c.Get(rolesKey).([]domain.Role)
	return roles
}

// attach stores the authenticated principal on the echo context and on the
// request's context.Context. The secret hash never leaves the gate.
func attach(c echo.Context, p domain.Principal, roles []domain.Role) {
	p.SecretHash = ""
	c.Set(principalKey, p)
	c.Set(rolesKey, roles)
	req := c.Request()
	c.SetRequest(req.WithContext(domain.ContextWithPrincipal(req.Context(), p)))
}
