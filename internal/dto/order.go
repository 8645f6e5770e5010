package dto

import (
	"fmt"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/pkg/response"
)

// OrderItemRequest is one requested line of a new order
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest represents order placement input
type CreateOrderRequest struct {
	UserID int64              `json:"userId"`
	Items  []OrderItemRequest `json:"orderItems"`
}

// Validate collects field-level failures
func (r *CreateOrderRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if r.UserID <= 0 {
		errs = append(errs, response.FieldError{Field: "userId", Message: "userId must be a positive integer"})
	}
	if len(r.Items) == 0 {
		errs = append(errs, response.FieldError{Field: "orderItems", Message: "order must contain at least one item"})
	}
	for i, item := range r.Items {
		if item.ProductID <= 0 {
			errs = append(errs, response.FieldError{
				Field:   fmt.Sprintf("orderItems[%d].productId", i),
				Message: "productId must be a positive integer",
			})
		}
		if item.Quantity <= 0 {
			errs = append(errs, response.FieldError{
				Field:   fmt.Sprintf("orderItems[%d].quantity", i),
				Message: "quantity must be greater than zero",
			})
		}
	}

	return errs
}

// UpdateOrderStatusRequest represents a status transition request
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Validate collects field-level failures. Transition legality is checked by
// the service against the current state; this only rejects unknown statuses.
func (r *UpdateOrderStatusRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if r.Status == "" {
		errs = append(errs, response.FieldError{Field: "status", Message: "status is required"})
	} else if !domain.OrderStatus(r.Status).IsValid() {
		errs = append(errs, response.FieldError{
			Field:   "status",
			Message: "status must be one of PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED",
		})
	}

	return errs
}

// OrderListQuery represents order listing filters
type OrderListQuery struct {
	Status string
	Skip   int
	Take   int
}

// Validate collects field-level failures
func (q *OrderListQuery) Validate() []response.FieldError {
	var errs []response.FieldError

	if q.Status != "" && !domain.OrderStatus(q.Status).IsValid() {
		errs = append(errs, response.FieldError{
			Field:   "status",
			Message: "status must be one of PENDING, PROCESSING, SHIPPED, DELIVERED, CANCELLED",
		})
	}

	return errs
}

// OrderListResponse is the paginated order listing payload
type OrderListResponse struct {
	Orders     []domain.Order `json:"orders"`
	Pagination Pagination     `json:"pagination"`
}
