package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PostgresOrderRepository implements OrderRepository using PostgreSQL with pgxpool
type PostgresOrderRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresOrderRepository creates a new PostgresOrderRepository
func NewPostgresOrderRepository(pool *pgxpool.Pool) *PostgresOrderRepository {
	return &PostgresOrderRepository{pool: pool}
}

// CreateOrder reserves stock and inserts the order in one transaction.
//
// Product rows are locked FOR UPDATE in request order, so the stock check and
// decrement of one reservation never interleave with another's for the same
// product. Any failure rolls back every decrement already made in this call.
func (r *PostgresOrderRepository) CreateOrder(ctx context.Context, userID int64, lines []OrderLine) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.order.create")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("user_id", userID),
		attribute.Int("item_count", len(lines)),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	order := &domain.Order{
		UserID:    userID,
		Status:    domain.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, line := range lines {
		item, err := reserveLine(ctx, tx, line)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		order.Items = append(order.Items, *item)
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO orders (user_id, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		order.UserID, order.Status.String(), order.CreatedAt, order.UpdatedAt,
	).Scan(&order.ID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err = tx.QueryRow(ctx,
			`INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPrice,
		).Scan(&item.ID)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit order: %w", err)
	}

	span.SetAttributes(attribute.Int64("order_id", order.ID))
	span.SetStatus(codes.Ok, "")
	return order, nil
}

// reserveLine locks one product row, validates it, snapshots the unit price,
// and decrements stock.
func reserveLine(ctx context.Context, tx pgx.Tx, line OrderLine) (*domain.OrderItem, error) {
	var (
		price  float64
		stock  int
		status string
	)

	err := tx.QueryRow(ctx,
		`SELECT price, stock, status FROM products WHERE id = $1 FOR UPDATE`,
		line.ProductID,
	).Scan(&price, &stock, &status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &domain.ProductNotFoundError{ProductID: line.ProductID}
		}
		return nil, fmt.Errorf("failed to lock product %d: %w", line.ProductID, err)
	}

	if domain.ProductStatus(status) != domain.ProductStatusActive {
		return nil, &domain.ProductUnavailableError{
			ProductID: line.ProductID,
			Status:    domain.ProductStatus(status),
		}
	}
	if stock < line.Quantity {
		return nil, &domain.InsufficientStockError{
			ProductID: line.ProductID,
			Requested: line.Quantity,
			Available: stock,
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE products SET stock = stock - $2, updated_at = $3 WHERE id = $1`,
		line.ProductID, line.Quantity, time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement stock for product %d: %w", line.ProductID, err)
	}

	return &domain.OrderItem{
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		UnitPrice: price,
	}, nil
}

// UpdateStatus transitions an order inside one transaction. The order row is
// locked FOR UPDATE so the previous-status check and the write cannot race a
// concurrent transition. Entering CANCELLED restores the reserved stock;
// cancelling an already-cancelled order commits nothing and releases nothing.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) (*domain.Order, error) {
	ctx, span := telemetry.StartSpan(ctx, "repo.postgres.order.update_status")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("order_id", orderID),
		attribute.String("target_status", status.String()),
	)

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current string
	err = tx.QueryRow(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "not found")
			return nil, domain.ErrOrderNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}

	currentStatus := domain.OrderStatus(current)
	span.SetAttributes(attribute.String("current_status", current))

	// Re-cancelling is a no-op, never a double release.
	if currentStatus == domain.OrderStatusCancelled && status == domain.OrderStatusCancelled {
		span.SetStatus(codes.Ok, "already cancelled")
		return r.GetByID(ctx, orderID)
	}

	if !currentStatus.CanTransitionTo(status) {
		span.SetStatus(codes.Error, "invalid transition")
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, currentStatus, status)
	}

	if status == domain.OrderStatusCancelled {
		if err := releaseItems(ctx, tx, orderID); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	_, err = tx.Exec(ctx,
		`UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`,
		orderID, status.String(), time.Now(),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	span.SetStatus(codes.Ok, "")
	return r.GetByID(ctx, orderID)
}

// releaseItems restores stock for every item of an order being cancelled.
// Items are walked in insertion order so concurrent releases take product
// locks in a consistent order.
func releaseItems(ctx context.Context, tx pgx.Tx, orderID int64) error {
	rows, err := tx.Query(ctx,
		`SELECT product_id, quantity FROM order_items WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}

	type line struct {
		productID int64
		quantity  int
	}
	var lines []line
	for rows.Next() {
		var l line
		if err := rows.Scan(&l.productID, &l.quantity); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		lines = append(lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read order items: %w", err)
	}

	for _, l := range lines {
		_, err := tx.Exec(ctx,
			`UPDATE products SET stock = stock + $2, updated_at = $3 WHERE id = $1`,
			l.productID, l.quantity, time.Now(),
		)
		if err != nil {
			return fmt.Errorf("failed to restore stock for product %d: %w", l.productID, err)
		}
	}

	return nil
}

// GetByID retrieves an order and its items
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	order := &domain.Order{}
	var status string

	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, status, created_at, updated_at FROM orders WHERE id = $1`, id,
	).Scan(&order.ID, &order.UserID, &status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	order.Status = domain.OrderStatus(status)

	items, err := r.loadItems(ctx, []int64{order.ID})
	if err != nil {
		return nil, err
	}
	order.Items = items[order.ID]

	return order, nil
}

// GetOwnerID resolves the owning user of an order
func (r *PostgresOrderRepository) GetOwnerID(ctx context.Context, orderID int64) (int64, error) {
	var userID int64
	err := r.pool.QueryRow(ctx, `SELECT user_id FROM orders WHERE id = $1`, orderID).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrOrderNotFound
		}
		return 0, fmt.Errorf("failed to get order owner: %w", err)
	}
	return userID, nil
}

// List retrieves one page of orders matching the filter plus the total count
func (r *PostgresOrderRepository) List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error) {
	where := ""
	args := []interface{}{}

	if filter.Status != "" {
		args = append(args, filter.Status.String())
		where = " WHERE status = $1"
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	args = append(args, filter.Take, filter.Skip)
	query := fmt.Sprintf(
		`SELECT id, user_id, status, created_at, updated_at FROM orders%s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)-1, len(args))

	orders, err := r.queryOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListByUser retrieves all orders placed by a user, newest first
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	return r.queryOrders(ctx,
		`SELECT id, user_id, status, created_at, updated_at FROM orders WHERE user_id = $1 ORDER BY id DESC`,
		userID)
}

func (r *PostgresOrderRepository) queryOrders(ctx context.Context, query string, args ...interface{}) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	var ids []int64
	for rows.Next() {
		var (
			order  domain.Order
			status string
		)
		if err := rows.Scan(&order.ID, &order.UserID, &status, &order.CreatedAt, &order.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		order.Status = domain.OrderStatus(status)
		orders = append(orders, order)
		ids = append(ids, order.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// loadItems fetches items for a set of orders in one query
func (r *PostgresOrderRepository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]domain.OrderItem, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, order_id, product_id, quantity, unit_price
		 FROM order_items
		 WHERE order_id = ANY($1)
		 ORDER BY id`,
		orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[int64][]domain.OrderItem)
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read order items: %w", err)
	}

	return items, nil
}

var _ OrderRepository = (*PostgresOrderRepository)(nil)
