package domain

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	// User errors
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Product errors
	ErrProductNotFound     = errors.New("product not found")
	ErrProductUnavailable  = errors.New("product is not available for purchase")
	ErrProductReferenced   = errors.New("product is referenced by existing orders")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidProductStatus = errors.New("invalid product status")

	// Order errors
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrInvalidTransition = errors.New("invalid order status transition")

	// Validation errors
	ErrInvalidUserID    = errors.New("invalid user id")
	ErrInvalidProductID = errors.New("invalid product id")
	ErrInvalidOrderID   = errors.New("invalid order id")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
	ErrInvalidPrice     = errors.New("price must be greater than zero")
	ErrEmptyOrder       = errors.New("order must contain at least one item")
)

// ProductNotFoundError identifies which product of a multi-item request was
// missing. errors.Is(err, ErrProductNotFound) holds.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// ProductUnavailableError reports a product whose status blocks purchase.
// errors.Is(err, ErrProductUnavailable) holds.
type ProductUnavailableError struct {
	ProductID int64
	Status    ProductStatus
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("product %d is not available (status %s)", e.ProductID, e.Status)
}

func (e *ProductUnavailableError) Is(target error) bool {
	return target == ErrProductUnavailable
}

// InsufficientStockError carries the available count, which is part of the
// API response. errors.Is(err, ErrInsufficientStock) holds.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidUserID) ||
		errors.Is(err, ErrInvalidProductID) ||
		errors.Is(err, ErrInvalidOrderID) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrEmptyOrder) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidTransition) ||
		errors.Is(err, ErrInvalidProductStatus)
}
