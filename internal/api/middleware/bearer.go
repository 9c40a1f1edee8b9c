package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/api/metrics"
	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

const policyBearer = "bearer"

// Bearer validates the JWT issued by POST /auth/token and attaches its
// principal.
func Bearer(tokens ports.TokenService, realm string) echo.MiddlewareFunc {
	if realm == "" {
		realm = "Restricted"
	}
	challenge := `Bearer realm="` + strings.ReplaceAll(realm, `"`, `'`) + `"`

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.AuthAttemptsTotal.WithLabelValues(policyBearer, metrics.AuthChallenged).Inc()
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			p, err := tokens.Parse(parts[1])
			if err != nil {
				metrics.AuthAttemptsTotal.WithLabelValues(policyBearer, metrics.AuthRejected).Inc()
				c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge+`, error="invalid_token"`)
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			metrics.AuthAttemptsTotal.WithLabelValues(policyBearer, metrics.AuthAuthenticated).Inc()
			attach(c, p, domain.RolesOf(p))
			return next(c)
		}
	}
}
