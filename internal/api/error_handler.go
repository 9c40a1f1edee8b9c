package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/krm/catalog-api/internal/core/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

// domainStatus maps sentinel errors to a status and a fixed client message.
// An empty message means the error text itself is safe to show.
var domainStatus = []struct {
	target error
	code   int
	msg    string
}{
	{domain.ErrProductNotFound, http.StatusNotFound, "product not found"},
	{domain.ErrUserNotFound, http.StatusNotFound, "user not found"},
	{domain.ErrHomeNotFound, http.StatusNotFound, "home not found"},
	{domain.ErrProductConflict, http.StatusConflict, "product id already exists"},
	{domain.ErrUserExists, http.StatusConflict, "user already exists"},
	{domain.ErrValidation, http.StatusBadRequest, ""},
	{domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
	{domain.ErrBadCredentials, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
}

// NewHTTPErrorHandler is the single place errors become responses. Every body
// is {"error": "<message>"}; causes of 500s are logged, never rendered.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code, msg := statusOf(err)
		if code == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Msg("unhandled error")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorBody{Error: msg})
	}
}

func statusOf(err error) (int, string) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message)
	}
	for _, m := range domainStatus {
		if errors.Is(err, m.target) {
			if m.msg == "" {
				return m.code, err.Error()
			}
			return m.code, m.msg
		}
	}
	return http.StatusInternalServerError, "internal server error"
}
