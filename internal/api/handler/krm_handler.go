package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// KRMHandler serves the greeting routes under /krm.
type KRMHandler struct{}

func NewKRMHandler() *KRMHandler {
	return &KRMHandler{}
}

// Greet
//
// @Summary  Greeting
// @Tags     krm
// @Produce  plain
// @Success  200  {string}  string  "WELCOME TO KRM"
// @Failure  401  {object}  map[string]string
// @Security BasicAuth
// @Router   /krm/greet [get]
func (h *KRMHandler) Greet(c echo.Context) error {
	return c.String(http.StatusOK, "WELCOME TO KRM")
}

// EchoID returns the path integer unchanged.
//
// @Summary  Echo an integer
// @Tags     krm
// @Produce  plain
// @Param    id   path      int  true  "Any integer"
// @Success  200  {string}  string
// @Failure  400  {object}  map[string]string
// @Security BasicAuth
// @Router   /krm/{id} [get]
func (h *KRMHandler) EchoID(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return c.String(http.StatusOK, strconv.Itoa(id))
}

// King
//
// @Summary  Query greeting
// @Tags     krm
// @Produce  plain
// @Param    k    query     string  true  "Value to echo"
// @Success  200  {string}  string
// @Failure  400  {object}  map[string]string
// @Security BasicAuth
// @Router   /krm/r [get]
func (h *KRMHandler) King(c echo.Context) error {
	if !c.QueryParams().Has("k") {
		return echo.NewHTTPError(http.StatusBadRequest, "query parameter k is required")
	}
	return c.String(http.StatusOK, " KING KISHORE :"+c.QueryParam("k"))
}

// Post
//
// @Summary  Post greeting
// @Tags     krm
// @Produce  plain
// @Success  200  {string}  string  "KRM IS BACK "
// @Security BasicAuth
// @Router   /krm/post [post]
func (h *KRMHandler) Post(c echo.Context) error {
	return c.String(http.StatusOK, "KRM IS BACK ")
}
