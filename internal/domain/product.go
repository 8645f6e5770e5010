package domain

import "time"

// ProductStatus represents the purchasability of a product
type ProductStatus string

const (
	ProductStatusActive       ProductStatus = "ACTIVE"
	ProductStatusInactive     ProductStatus = "INACTIVE"
	ProductStatusDiscontinued ProductStatus = "DISCONTINUED"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDiscontinued:
		return true
	}
	return false
}

// String returns the string representation of ProductStatus
func (s ProductStatus) String() string {
	return string(s)
}

// Product represents a catalog item. Stock never goes negative; Status gates
// purchasability independent of stock.
type Product struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Brand       string        `json:"brand"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	ImageURL    string        `json:"imageURL,omitempty"`
	Category    string        `json:"category,omitempty"`
	Stock       int           `json:"stock"`
	Status      ProductStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// IsPurchasable reports whether the product can be ordered at all
func (p *Product) IsPurchasable() bool {
	return p.Status == ProductStatusActive
}
