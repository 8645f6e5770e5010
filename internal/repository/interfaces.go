package repository

import (
	"context"

	"github.com/orderhub/backend/internal/domain"
)

// UserRepository defines persistence operations for users
type UserRepository interface {
	// Create inserts a user. A duplicate email fails with
	// domain.ErrUserAlreadyExists.
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetAll(ctx context.Context) ([]domain.User, error)
	// GetCustomers returns all non-admin users
	GetCustomers(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
}

// ProductFilter narrows and orders a product listing
type ProductFilter struct {
	Search    string
	Status    domain.ProductStatus
	SortBy    string
	SortOrder string
	Skip      int
	Take      int
}

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// List returns one page of products plus the unpaginated total
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error)
	Update(ctx context.Context, product *domain.Product) error
	// Delete removes a product. Products referenced by order items fail
	// with domain.ErrProductReferenced.
	Delete(ctx context.Context, id int64) error
}

// OrderLine is one requested item of a new order
type OrderLine struct {
	ProductID int64
	Quantity  int
}

// OrderFilter narrows an order listing
type OrderFilter struct {
	Status domain.OrderStatus
	Skip   int
	Take   int
}

// OrderRepository defines persistence operations for orders. Stock
// reservation and release run inside single transactions with row locking;
// see the postgres implementation.
type OrderRepository interface {
	// CreateOrder reserves stock for every line and inserts the order and
	// its items as one atomic unit. Unit prices are snapshotted from the
	// product rows at reservation time.
	CreateOrder(ctx context.Context, userID int64, lines []OrderLine) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetOwnerID resolves the owning user of an order without loading items
	GetOwnerID(ctx context.Context, orderID int64) (int64, error)
	// List returns one page of orders plus the unpaginated total
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	// UpdateStatus transitions an order, releasing reserved stock when the
	// transition enters CANCELLED. Illegal transitions fail with
	// domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
}
