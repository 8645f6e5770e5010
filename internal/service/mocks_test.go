package service

import (
	"context"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository
type MockUserRepository struct {
	CreateFunc       func(ctx context.Context, user *domain.User) error
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	GetAllFunc       func(ctx context.Context) ([]domain.User, error)
	GetCustomersFunc func(ctx context.Context) ([]domain.User, error)
	UpdateFunc       func(ctx context.Context, user *domain.User) error
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	user.ID = 1
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &domain.User{ID: id, Email: "test@example.com"}, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserRepository) GetCustomers(ctx context.Context) ([]domain.User, error) {
	if m.GetCustomersFunc != nil {
		return m.GetCustomersFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProductRepository is a mock implementation of repository.ProductRepository
type MockProductRepository struct {
	CreateFunc  func(ctx context.Context, product *domain.Product) error
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Product, error)
	ListFunc    func(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int64, error)
	UpdateFunc  func(ctx context.Context, product *domain.Product) error
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, product)
	}
	product.ID = 1
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return &domain.Product{ID: id, Status: domain.ProductStatusActive}, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []domain.Product{}, 0, nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, product)
	}
	return nil
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockOrderRepository is a mock implementation of repository.OrderRepository
type MockOrderRepository struct {
	CreateOrderFunc  func(ctx context.Context, userID int64, lines []repository.OrderLine) (*domain.Order, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Order, error)
	GetOwnerIDFunc   func(ctx context.Context, orderID int64) (int64, error)
	ListFunc         func(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error)
	ListByUserFunc   func(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, userID int64, lines []repository.OrderLine) (*domain.Order, error) {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(ctx, userID, lines)
	}
	return &domain.Order{ID: 1, UserID: userID, Status: domain.OrderStatusPending}, nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) GetOwnerID(ctx context.Context, orderID int64) (int64, error) {
	if m.GetOwnerIDFunc != nil {
		return m.GetOwnerIDFunc(ctx, orderID)
	}
	return 0, domain.ErrOrderNotFound
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return []domain.Order{}, 0, nil
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []domain.Order{}, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, status)
	}
	return nil, domain.ErrOrderNotFound
}

// MockEventPublisher records published events for assertions
type MockEventPublisher struct {
	CreatedEvents       []*domain.Order
	CancelledEvents     []*domain.Order
	StatusChangedEvents []*domain.Order
	PublishErr          error
}

func (m *MockEventPublisher) PublishOrderCreated(ctx context.Context, order *domain.Order) error {
	m.CreatedEvents = append(m.CreatedEvents, order)
	return m.PublishErr
}

func (m *MockEventPublisher) PublishOrderCancelled(ctx context.Context, order *domain.Order) error {
	m.CancelledEvents = append(m.CancelledEvents, order)
	return m.PublishErr
}

func (m *MockEventPublisher) PublishOrderStatusChanged(ctx context.Context, order *domain.Order) error {
	m.StatusChangedEvents = append(m.StatusChangedEvents, order)
	return m.PublishErr
}

func (m *MockEventPublisher) Close() error {
	return nil
}
