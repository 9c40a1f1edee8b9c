package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/api/middleware"
	"github.com/krm/catalog-api/internal/core/domain"
)

// ctxPrincipal returns the principal attached by the gate. Its absence means
// the route was mounted without a gate, which is rejected rather than served.
func ctxPrincipal(c echo.Context) (domain.Principal, []domain.Role, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok || p.Username == "" {
		return domain.Principal{}, nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return p, middleware.RolesFrom(c), nil
}

// bindAndValidate decodes the body into dst and runs the struct validator.
func bindAndValidate(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(dst)
}
