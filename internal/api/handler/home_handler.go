package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

type HomeHandler struct {
	homes ports.HomeService
}

func NewHomeHandler(homes ports.HomeService) *HomeHandler {
	return &HomeHandler{homes: homes}
}

type homeRequest struct {
	ID    string `json:"id"    validate:"required,max=64"`
	Place string `json:"place" validate:"max=200"`
	Name  string `json:"name"  validate:"max=200"`
}

// List
//
// @Summary  List homes
// @Tags     homes
// @Produce  json
// @Success  200  {array}  domain.Home
// @Security BasicAuth
// @Router   /homes [get]
func (h *HomeHandler) List(c echo.Context) error {
	homes, err := h.homes.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, homes)
}

// Get
//
// @Summary  Get a home
// @Tags     homes
// @Produce  json
// @Param    id   path      string  true  "Home id"
// @Success  200  {object}  domain.Home
// @Failure  404  {object}  map[string]string
// @Security BasicAuth
// @Router   /homes/{id} [get]
func (h *HomeHandler) Get(c echo.Context) error {
	home, err := h.homes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, home)
}

// Save upserts a home by id.
//
// @Summary  Upsert a home
// @Tags     homes
// @Accept   json
// @Produce  json
// @Param    body  body      homeRequest  true  "Home"
// @Success  200   {object}  domain.Home
// @Failure  400   {object}  map[string]string
// @Security BasicAuth
// @Router   /homes [post]
func (h *HomeHandler) Save(c echo.Context) error {
	var req homeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	saved, err := h.homes.Save(c.Request().Context(), domain.Home{ID: req.ID, Place: req.Place, Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, saved)
}
