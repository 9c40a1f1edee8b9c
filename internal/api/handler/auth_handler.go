package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

type AuthHandler struct {
	tokens ports.TokenService
}

// NewAuthHandler accepts a nil token service when the bearer policy is off;
// only Me is routed in that case.
func NewAuthHandler(tokens ports.TokenService) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

type tokenResponse struct {
	Token     string    `json:"token"`
	TokenType string    `json:"token_type"`
	ExpiresAt time.Time `json:"expires_at"`
}

type meResponse struct {
	Username string        `json:"username"`
	Roles    []domain.Role `json:"roles"`
}

// Token exchanges the Basic credentials checked by the gate for a JWT.
//
// @Summary  Issue a bearer token
// @Tags     auth
// @Produce  json
// @Success  200  {object}  tokenResponse
// @Failure  401  {object}  map[string]string
// @Security BasicAuth
// @Router   /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	p, _, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	token, exp, err := h.tokens.Issue(p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokenResponse{Token: token, TokenType: "Bearer", ExpiresAt: exp})
}

// Me reports who the request authenticated as.
//
// @Summary  Current principal
// @Tags     auth
// @Produce  json
// @Success  200  {object}  meResponse
// @Failure  401  {object}  map[string]string
// @Security BasicAuth
// @Router   /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, roles, err := ctxPrincipal(c)
	if err != nil {
		return err
	}
	if roles == nil {
		roles = []domain.Role{}
	}
	return c.JSON(http.StatusOK, meResponse{Username: p.Username, Roles: roles})
}
