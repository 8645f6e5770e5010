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

// OrderHandler handles order workflow HTTP requests
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// Create places a new order, reserving stock atomically
// POST /api/order
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid order payload", details)
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			response.NotFound(c, err.Error())
		case errors.Is(err, domain.ErrUserNotFound):
			response.NotFound(c, "user not found")
		case errors.Is(err, domain.ErrProductUnavailable),
			errors.Is(err, domain.ErrInsufficientStock):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Created(c, order)
}

// List returns one page of orders, optionally filtered by status
// GET /api/order
func (h *OrderHandler) List(c *gin.Context) {
	skip, take, details := dto.ParsePagination(c.Query("skip"), c.Query("take"))

	query := &dto.OrderListQuery{
		Status: c.Query("status"),
		Skip:   skip,
		Take:   take,
	}
	details = append(details, query.Validate()...)
	if len(details) > 0 {
		response.ValidationError(c, "invalid order query", details)
		return
	}

	result, err := h.orderService.List(c.Request.Context(), query)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Success(c, result)
}

// GetByID returns one order with its items
// GET /api/order/:id
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid order id")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			response.NotFound(c, "order not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, order)
}

// ListByUser returns every order belonging to a user
// GET /api/order/user/:id
func (h *OrderHandler) ListByUser(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || userID <= 0 {
		response.BadRequest(c, "invalid user id")
		return
	}

	orders, err := h.orderService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			response.NotFound(c, "user not found")
			return
		}
		response.InternalError(c)
		return
	}

	response.Success(c, orders)
}

// UpdateStatus transitions an order through its lifecycle
// PATCH /api/order/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid order id")
		return
	}

	var req dto.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	if details := req.Validate(); len(details) > 0 {
		response.ValidationError(c, "invalid status payload", details)
		return
	}

	order, err := h.orderService.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOrderNotFound):
			response.NotFound(c, "order not found")
		case errors.Is(err, domain.ErrInvalidStatus),
			errors.Is(err, domain.ErrInvalidTransition):
			response.BadRequest(c, err.Error())
		default:
			response.InternalError(c)
		}
		return
	}

	response.Success(c, order)
}
