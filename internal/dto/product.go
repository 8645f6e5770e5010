package dto

import (
	"strings"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/pkg/response"
)

// Sortable product columns exposed to clients
var productSortFields = map[string]bool{
	"id":        true,
	"name":      true,
	"brand":     true,
	"price":     true,
	"stock":     true,
	"createdAt": true,
}

// CreateProductRequest represents product creation input
type CreateProductRequest struct {
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"imageURL"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
	Status      string  `json:"status"`
}

// Validate collects field-level failures
func (r *CreateProductRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, response.FieldError{Field: "name", Message: "name is required"})
	}
	if strings.TrimSpace(r.Brand) == "" {
		errs = append(errs, response.FieldError{Field: "brand", Message: "brand is required"})
	}
	if r.Price <= 0 {
		errs = append(errs, response.FieldError{Field: "price", Message: "price must be greater than zero"})
	}
	if r.Stock < 0 {
		errs = append(errs, response.FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if r.Status != "" && !domain.ProductStatus(r.Status).IsValid() {
		errs = append(errs, response.FieldError{Field: "status", Message: "status must be one of ACTIVE, INACTIVE, DISCONTINUED"})
	}

	return errs
}

// UpdateProductRequest represents partial product update input
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Brand       *string  `json:"brand"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"imageURL"`
	Category    *string  `json:"category"`
	Stock       *int     `json:"stock"`
	Status      *string  `json:"status"`
}

// Validate collects field-level failures
func (r *UpdateProductRequest) Validate() []response.FieldError {
	var errs []response.FieldError

	if r.Name != nil && strings.TrimSpace(*r.Name) == "" {
		errs = append(errs, response.FieldError{Field: "name", Message: "name cannot be empty"})
	}
	if r.Brand != nil && strings.TrimSpace(*r.Brand) == "" {
		errs = append(errs, response.FieldError{Field: "brand", Message: "brand cannot be empty"})
	}
	if r.Price != nil && *r.Price <= 0 {
		errs = append(errs, response.FieldError{Field: "price", Message: "price must be greater than zero"})
	}
	if r.Stock != nil && *r.Stock < 0 {
		errs = append(errs, response.FieldError{Field: "stock", Message: "stock cannot be negative"})
	}
	if r.Status != nil && !domain.ProductStatus(*r.Status).IsValid() {
		errs = append(errs, response.FieldError{Field: "status", Message: "status must be one of ACTIVE, INACTIVE, DISCONTINUED"})
	}

	return errs
}

// ProductListQuery represents product listing filters
type ProductListQuery struct {
	Search    string
	Status    string
	SortBy    string
	SortOrder string
	Skip      int
	Take      int
}

// Validate collects field-level failures. Defaults for sort are applied
// here so the repository only ever sees vetted values.
func (q *ProductListQuery) Validate() []response.FieldError {
	var errs []response.FieldError

	if q.Status != "" && !domain.ProductStatus(q.Status).IsValid() {
		errs = append(errs, response.FieldError{Field: "status", Message: "status must be one of ACTIVE, INACTIVE, DISCONTINUED"})
	}

	if q.SortBy == "" {
		q.SortBy = "id"
	} else if !productSortFields[q.SortBy] {
		errs = append(errs, response.FieldError{Field: "sortBy", Message: "sortBy must be one of id, name, brand, price, stock, createdAt"})
	}

	switch q.SortOrder {
	case "":
		q.SortOrder = "asc"
	case "asc", "desc":
	default:
		errs = append(errs, response.FieldError{Field: "sortOrder", Message: "sortOrder must be asc or desc"})
	}

	return errs
}

// ProductListResponse is the paginated product listing payload
type ProductListResponse struct {
	Products   []domain.Product `json:"products"`
	Pagination Pagination       `json:"pagination"`
}
