package service

import (
	"context"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/repository"
	"github.com/orderhub/backend/pkg/logger"
	"github.com/orderhub/backend/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// OrderService defines the interface for order workflow operations
type OrderService interface {
	// Create places an order, atomically reserving stock for every item
	Create(ctx context.Context, req *dto.CreateOrderRequest) (*domain.Order, error)
	// GetByID retrieves an order with its items
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	// GetOwnerID resolves the owning user of an order
	GetOwnerID(ctx context.Context, orderID int64) (int64, error)
	// List retrieves orders matching the query with pagination
	List(ctx context.Context, query *dto.OrderListQuery) (*dto.OrderListResponse, error)
	// ListByUser retrieves all orders belonging to a user
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
	// UpdateStatus transitions an order, releasing stock on cancellation
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error)
}

// orderService implements OrderService
type orderService struct {
	orderRepo      repository.OrderRepository
	userRepo       repository.UserRepository
	eventPublisher EventPublisher
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	eventPublisher EventPublisher,
) OrderService {
	if eventPublisher == nil {
		eventPublisher = NewNoOpEventPublisher()
	}
	return &orderService{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
	}
}

// Create places an order, atomically reserving stock for every item
func (s *orderService) Create(ctx context.Context, req *dto.CreateOrderRequest) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.order.create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", req.UserID),
		attribute.Int("item_count", len(req.Items)),
	)

	// The order must belong to an existing user
	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	lines := make([]repository.OrderLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, repository.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := s.orderRepo.CreateOrder(ctx, req.UserID, lines)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	// Event delivery is best-effort; the order is already committed
	if err := s.eventPublisher.PublishOrderCreated(ctx, order); err != nil {
		logger.Get().Warn("failed to publish order created event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))
	span.SetStatus(codes.Ok, "")
	return order, nil
}

// GetByID retrieves an order with its items
func (s *orderService) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidOrderID
	}
	return s.orderRepo.GetByID(ctx, id)
}

// GetOwnerID resolves the owning user of an order
func (s *orderService) GetOwnerID(ctx context.Context, orderID int64) (int64, error) {
	if orderID <= 0 {
		return 0, domain.ErrInvalidOrderID
	}
	return s.orderRepo.GetOwnerID(ctx, orderID)
}

// List retrieves orders matching the query with pagination
func (s *orderService) List(ctx context.Context, query *dto.OrderListQuery) (*dto.OrderListResponse, error) {
	filter := repository.OrderFilter{
		Status: domain.OrderStatus(query.Status),
		Skip:   query.Skip,
		Take:   query.Take,
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.OrderListResponse{
		Orders:     orders,
		Pagination: dto.NewPagination(total, query.Skip, query.Take),
	}, nil
}

// ListByUser retrieves all orders belonging to a user
func (s *orderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, domain.ErrInvalidUserID
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListByUser(ctx, userID)
}

// UpdateStatus transitions an order, releasing stock on cancellation
func (s *orderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "service.order.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
		attribute.String("target_status", status.String()),
	)

	if orderID <= 0 {
		span.SetStatus(codes.Error, "invalid order id")
		return nil, domain.ErrInvalidOrderID
	}
	if !status.IsValid() {
		span.SetStatus(codes.Error, "invalid status")
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.orderRepo.UpdateStatus(ctx, orderID, status)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var publishErr error
	if status == domain.OrderStatusCancelled {
		publishErr = s.eventPublisher.PublishOrderCancelled(ctx, order)
	} else {
		publishErr = s.eventPublisher.PublishOrderStatusChanged(ctx, order)
	}
	if publishErr != nil {
		logger.Get().Warn("failed to publish order status event",
			zap.Int64("order_id", order.ID),
			zap.String("status", status.String()),
			zap.Error(publishErr))
	}

	span.SetStatus(codes.Ok, "")
	return order, nil
}
