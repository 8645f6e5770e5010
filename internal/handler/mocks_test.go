package handler

import (
	"context"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
)

// MockUserService is a mock implementation of service.UserService
type MockUserService struct {
	RegisterFunc     func(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error)
	LoginFunc        func(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.User, error)
	GetByEmailFunc   func(ctx context.Context, email string) (*domain.User, error)
	GetAllFunc       func(ctx context.Context) ([]domain.User, error)
	GetCustomersFunc func(ctx context.Context) ([]domain.User, error)
	UpdateFunc       func(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error)
	DeleteFunc       func(ctx context.Context, id int64) error
}

func (m *MockUserService) Register(ctx context.Context, req *dto.CreateUserRequest) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &domain.User{ID: 1, Email: req.Email}, nil
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, req)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) GetAll(ctx context.Context) ([]domain.User, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserService) GetCustomers(ctx context.Context) ([]domain.User, error) {
	if m.GetCustomersFunc != nil {
		return m.GetCustomersFunc(ctx)
	}
	return []domain.User{}, nil
}

func (m *MockUserService) Update(ctx context.Context, id int64, req *dto.UpdateUserRequest) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockProductService is a mock implementation of service.ProductService
type MockProductService struct {
	CreateFunc  func(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error)
	GetByIDFunc func(ctx context.Context, id int64) (*domain.Product, error)
	ListFunc    func(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error)
	UpdateFunc  func(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*domain.Product, error)
	DeleteFunc  func(ctx context.Context, id int64) error
}

func (m *MockProductService) Create(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Product{ID: 1, Name: req.Name}, nil
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductService) List(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return &dto.ProductListResponse{Products: []domain.Product{}}, nil
}

func (m *MockProductService) Update(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*domain.Product, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, domain.ErrProductNotFound
}

func (m *MockProductService) Delete(ctx context.Context, id int64) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockOrderService is a mock implementation of service.OrderService
type MockOrderService struct {
	CreateFunc       func(ctx context.Context, req *dto.CreateOrderRequest) (*domain.Order, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*domain.Order, error)
	GetOwnerIDFunc   func(ctx context.Context, orderID int64) (int64, error)
	ListFunc         func(ctx context.Context, query *dto.OrderListQuery) (*dto.OrderListResponse, error)
	ListByUserFunc   func(ctx context.Context, userID int64) ([]domain.Order, error)
	UpdateStatusFunc func(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
}

func (m *MockOrderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*domain.Order, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Order{ID: 1, UserID: req.UserID, Status: domain.OrderStatusPending}, nil
}

func (m *MockOrderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrOrderNotFound
}

func (m *MockOrderService) GetOwnerID(ctx context.Context, orderID int64) (int64, error) {
	if m.GetOwnerIDFunc != nil {
		return m.GetOwnerIDFunc(ctx, orderID)
	}
	return 0, domain.ErrOrderNotFound
}

func (m *MockOrderService) List(ctx context.Context, query *dto.OrderListQuery) (*dto.OrderListResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, query)
	}
	return &dto.OrderListResponse{Orders: []domain.Order{}}, nil
}

func (m *MockOrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []domain.Order{}, nil
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, orderID, status)
	}
	return nil, domain.ErrOrderNotFound
}
