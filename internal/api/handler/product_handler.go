package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/krm/catalog-api/internal/api/metrics"
	"github.com/krm/catalog-api/internal/core/domain"
	"github.com/krm/catalog-api/internal/core/ports"
)

type ProductHandler struct {
	catalog ports.CatalogService
}

func NewProductHandler(catalog ports.CatalogService) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

// List returns every product in insertion order.
//
// @Summary  List products
// @Tags     products
// @Produce  json
// @Success  200  {array}   domain.Product
// @Failure  401  {object}  map[string]string
// @Security BasicAuth
// @Router   /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.catalog.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, products)
}

// Get
//
// @Summary  Get a product
// @Tags     products
// @Produce  json
// @Param    id   path      int  true  "Product id"
// @Success  200  {object}  domain.Product
// @Failure  400  {object}  map[string]string
// @Failure  404  {object}  map[string]string
// @Security BasicAuth
// @Router   /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.catalog.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create adds a product.
//
// @Summary  Add a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body  body      productRequest  true  "Product"
// @Success  201   {object}  domain.Product
// @Failure  400   {object}  map[string]string
// @Failure  409   {object}  map[string]string
// @Security BasicAuth
// @Router   /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		countMutation("add", err)
		return err
	}
	p, err := h.catalog.Add(c.Request().Context(), req.toDomain())
	countMutation("add", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// Update replaces every product with the body's id.
//
// @Summary  Replace a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    body  body      productRequest  true  "Product"
// @Success  200   {object}  domain.Product
// @Failure  400   {object}  map[string]string
// @Failure  404   {object}  map[string]string
// @Security BasicAuth
// @Router   /products [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := bindAndValidate(c, &req); err != nil {
		countMutation("update", err)
		return err
	}
	p, err := h.catalog.Update(c.Request().Context(), req.toDomain())
	countMutation("update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Delete
//
// @Summary  Delete a product
// @Tags     products
// @Param    id   path  int  true  "Product id"
// @Success  204
// @Failure  400  {object}  map[string]string
// @Security BasicAuth
// @Router   /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	removed, err := h.catalog.Delete(c.Request().Context(), id)
	if err != nil {
		countMutation("delete", err)
		return err
	}
	if removed == 0 {
		metrics.CatalogMutationsTotal.WithLabelValues("delete", "not_found").Inc()
	} else {
		countMutation("delete", nil)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}
	return id, nil
}

func countMutation(op string, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrProductNotFound):
		outcome = "not_found"
	case errors.Is(err, domain.ErrProductConflict):
		outcome = "conflict"
	case errors.Is(err, domain.ErrValidation):
		outcome = "invalid"
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code == http.StatusBadRequest {
			outcome = "invalid"
		} else {
			outcome = "error"
		}
	}
	metrics.CatalogMutationsTotal.WithLabelValues(op, outcome).Inc()
}
