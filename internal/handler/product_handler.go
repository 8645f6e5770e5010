package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/service"
	"github.com/orderhub/backend/pkg/response"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService service.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a product to the catalog
// POST /api/product
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid product payload", details)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, product)
}

// List returns products matching search, status, sort and paging filters
// GET /api/product
func (h *ProductHandler) List(c *gin.Context) {
	skip, take, details := dto.ParsePagination(c.Query("skip"), c.Query("take"))

	query := &dto.ProductListQuery{
		Search:    c.Query("search"),
		Status:    c.Query("status"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.Query("sortOrder"),
		Skip:      skip,
		Take:      take,
	}
	details = append(details, query.Validate()...)
	if len(details) > 0 {
		response.ValidationError(c, "invalid product query", details)
		return
	}

	result, err := h.productService.List(c.Request.Context(), query)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// GetByID returns one product
// GET /api/product/:id
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, product)
}

// Update applies a partial update to a product
// PUT /api/product/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid product payload", details)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			response.NotFound(c, "product not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, product)
}

// Delete removes a product unless order items still reference it
// DELETE /api/product/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid product id")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			response.NotFound(c, "product not found")
		case errors.Is(err, domain.ErrProductReferenced):
			response.BadRequest(c, "product is referenced by existing orders; mark it DISCONTINUED instead")
		default:
			response.InternalError(c)
		}
		return
	}

	response.NoContent(c)
}
