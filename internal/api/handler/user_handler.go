package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/api/metrics"
	"github.com/krm/catalog-api/internal/core/ports"
)

type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List
//
// @Summary  List user records
// @Tags     users
// @Produce  json
// @Success  200  {array}   userResponse
// @Security BasicAuth
// @Router   /user/ [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Get
//
// @Summary  Get a user record
// @Tags     users
// @Produce  json
// @Param    id   path      int  true  "User id"
// @Success  200  {object}  userResponse
// @Failure  404  {object}  map[string]string
// @Security BasicAuth
// @Router   /user/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	u, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Register creates a user record with a bcrypt-hashed password.
//
// @Summary  Register a user
// @Tags     users
// @Accept   json
// @Produce  json
// @Param    body  body      registerUserRequest  true  "User"
// @Success  201   {object}  userResponse
// @Failure  400   {object}  map[string]string
// @Failure  409   {object}  map[string]string
// @Security BasicAuth
// @Router   /user/ [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	u, err := h.users.Register(c.Request().Context(), req.UserID, req.UserName, req.UserPassword)
	if err != nil {
		return err
	}
	metrics.UsersRegisteredTotal.Inc()
	return c.JSON(http.StatusCreated, toUserResponse(u))
}
