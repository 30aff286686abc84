package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tesloshop/catalog-api/internal/api/metrics"
	"github.com/tesloshop/catalog-api/internal/core/domain"
	"github.com/tesloshop/catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /products.
//
// @Summary      Create a new product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  ports.ProductDetail
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	detail, err := h.service.Create(c.Request().Context(), toCreateInput(req), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, detail)
}

// List handles GET /products.
//
// @Summary      List products with offset/limit pagination
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 10, max 100)"
// @Param        offset  query     int  false  "Rows to skip"
// @Success      200     {array}   ports.ProductDetail
// @Failure      401     {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	var q listProductsQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid pagination")
	}

	details, err := h.service.List(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Get handles GET /products/:criteria, accepting an id, a slug or a title.
//
// @Summary      Get a product by id, slug or title
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        criteria  path      string  true  "Product id, slug or title"
// @Success      200       {object}  ports.ProductDetail
// @Failure      401       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /products/{criteria} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	detail, err := h.service.FindOne(c.Request().Context(), c.Param("criteria"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Update handles PATCH /products/:id. A supplied non-empty image list
// replaces the whole image set atomically; an absent or empty list keeps
// the existing images.
//
// @Summary      Update a product by id
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to change"
// @Success      200   {object}  ports.ProductDetail
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [patch]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	start := time.Now()
	detail, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req), user)
	metrics.ProductUpdateDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProductUpdatesTotal.WithLabelValues(updateResult(err)).Inc()
		return err
	}

	metrics.ProductUpdatesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, detail)
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product by id
// @Tags         products
// @Security     BearerAuth
// @Param        id  path  string  true  "Product id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func updateResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrDuplicateProduct):
		return "conflict"
	default:
		return "error"
	}
}
