package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/api/metrics"
	"github.com/krm/catalog-api/internal/core/ports"
)

const policyBasic = "basic"

// BasicConfig configures the Basic authentication gate.
type BasicConfig struct {
	// Realm is sent in the WWW-Authenticate challenge.
	Realm string
	// Throttle is optional.
	Throttle ports.AttemptThrottle
	Logger   zerolog.Logger
}

// BasicAuth re-authenticates every request from its Authorization header. No
// session state is created or read. Unknown users and wrong secrets produce
// the same 401 response.
func BasicAuth(auth ports.Authenticator, cfg BasicConfig) echo.MiddlewareFunc {
	if cfg.Realm == "" {
		cfg.Realm = "Restricted"
	}
	challenge := `Basic realm="` + strings.ReplaceAll(cfg.Realm, `"`, `'`) + `"`
	log := cfg.Logger

	reject := func(c echo.Context) error {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, challenge)
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			username, secret, ok := c.Request().BasicAuth()
			if !ok {
				metrics.AuthAttemptsTotal.WithLabelValues(policyBasic, metrics.AuthChallenged).Inc()
				return reject(c)
			}

			ctx := c.Request().Context()
			if cfg.Throttle != nil {
				blocked, retryAfter, err := cfg.Throttle.Blocked(ctx, username)
				if err != nil {
					log.Warn().Err(err).Msg("throttle check failed, continuing")
				} else if blocked {
					metrics.AuthAttemptsTotal.WithLabelValues(policyBasic, metrics.AuthThrottled).Inc()
					secs := int(math.Ceil(retryAfter.Seconds()))
					c.Response().Header().Set(echo.HeaderRetryAfter, strconv.Itoa(secs))
					return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed attempts")
				}
			}

			result, err := auth.Authenticate(ctx, username, secret)
			if err != nil {
				metrics.AuthAttemptsTotal.WithLabelValues(policyBasic, metrics.AuthError).Inc()
				return err
			}
			if !result.Authenticated() {
				metrics.AuthAttemptsTotal.WithLabelValues(policyBasic, metrics.AuthRejected).Inc()
				log.Info().
					Str("path", c.Request().URL.Path).
					Str("remote_ip", c.RealIP()).
					Msg("authentication failed")
				if cfg.Throttle != nil {
					if err := cfg.Throttle.RecordFailure(ctx, username); err != nil {
						log.Warn().Err(err).Msg("throttle record failed")
					}
				}
				return reject(c)
			}

			if cfg.Throttle != nil {
				if err := cfg.Throttle.Reset(ctx, username); err != nil {
					log.Warn().Err(err).Msg("throttle reset failed")
				}
			}
			metrics.AuthAttemptsTotal.WithLabelValues(policyBasic, metrics.AuthAuthenticated).Inc()
			attach(c, result.Principal, result.Roles)
			return next(c)
		}
	}
}
