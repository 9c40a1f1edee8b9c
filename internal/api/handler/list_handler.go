package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/core/ports"
)

const maxElementBytes = 4 << 10

// ListHandler serves /list, a shared scratch list of raw strings.
type ListHandler struct {
	elements ports.ElementStore
}

func NewListHandler(elements ports.ElementStore) *ListHandler {
	return &ListHandler{elements: elements}
}

// List
//
// @Summary  List stored elements
// @Tags     list
// @Produce  json
// @Success  200  {array}  string
// @Security BasicAuth
// @Router   /list [get]
func (h *ListHandler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.elements.All())
}

// Add stores the raw request body as one element.
//
// @Summary  Append an element
// @Tags     list
// @Accept   plain
// @Produce  plain
// @Param    element  body      string  true  "Raw element text"
// @Success  200      {string}  string
// @Failure  400      {object}  map[string]string
// @Security BasicAuth
// @Router   /list [post]
func (h *ListHandler) Add(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxElementBytes+1))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable body")
	}
	switch {
	case len(body) == 0:
		return echo.NewHTTPError(http.StatusBadRequest, "element is required")
	case len(body) > maxElementBytes:
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "element too large")
	}
	element := string(body)
	h.elements.Add(element)
	return c.String(http.StatusOK, "Element added: "+element)
}

// Clear
//
// @Summary  Clear the list
// @Tags     list
// @Produce  plain
// @Success  200  {string}  string  "All elements cleared."
// @Security BasicAuth
// @Router   /list [delete]
func (h *ListHandler) Clear(c echo.Context) error {
	h.elements.Clear()
	return c.String(http.StatusOK, "All elements cleared.")
}
