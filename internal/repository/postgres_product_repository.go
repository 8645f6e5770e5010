package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orderhub/backend/internal/domain"
)

const pgForeignKeyViolationCode = "23503"

const productColumns = `id, name, brand, description, price, image_url, category, stock, status, created_at, updated_at`

// sortColumns maps client sort fields to SQL columns. Anything outside this
// map never reaches the query.
var sortColumns = map[string]string{
	"id":        "id",
	"name":      "name",
	"brand":     "brand",
	"price":     "price",
	"stock":     "stock",
	"createdAt": "created_at",
}

// PostgresProductRepository implements ProductRepository using PostgreSQL
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresProductRepository creates a new PostgresProductRepository
func NewPostgresProductRepository(pool *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{pool: pool}
}

// Create creates a new product
func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, brand, description, price, image_url, category, stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	err := r.pool.QueryRow(ctx, query,
		product.Name,
		product.Brand,
		nullString(product.Description),
		product.Price,
		nullString(product.ImageURL),
		nullString(product.Category),
		product.Stock,
		product.Status.String(),
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// GetByID retrieves a product by ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// List retrieves one page of products matching the filter plus the total count
func (r *PostgresProductRepository) List(ctx context.Context, filter ProductFilter) ([]domain.Product, int64, error) {
	where := ""
	args := []interface{}{}

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = fmt.Sprintf(" WHERE (name ILIKE $%d OR brand ILIKE $%d OR description ILIKE $%d)", n, n, n)
	}
	if filter.Status != "" {
		args = append(args, filter.Status.String())
		clause := fmt.Sprintf("status = $%d", len(args))
		if where == "" {
			where = " WHERE " + clause
		} else {
			where += " AND " + clause
		}
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	sortCol, ok := sortColumns[filter.SortBy]
	if !ok {
		sortCol = "id"
	}
	direction := "ASC"
	if filter.SortOrder == "desc" {
		direction = "DESC"
	}

	args = append(args, filter.Take, filter.Skip)
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		productColumns, where, sortCol, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read products: %w", err)
	}

	return products, total, nil
}

// Update updates a product
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $2, brand = $3, description = $4, price = $5, image_url = $6,
		    category = $7, stock = $8, status = $9, updated_at = $10
		WHERE id = $1
	`
	product.UpdatedAt = time.Now()

	tag, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.Brand,
		nullString(product.Description),
		product.Price,
		nullString(product.ImageURL),
		nullString(product.Category),
		product.Stock,
		product.Status.String(),
		product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete deletes a product unless order items still reference it
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	var referenced bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM order_items WHERE product_id = $1)`, id,
	).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("failed to check product references: %w", err)
	}
	if referenced {
		return domain.ErrProductReferenced
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		// The FK constraint backstops the existence check above against a
		// concurrent order insert.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			return domain.ErrProductReferenced
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	product := &domain.Product{}
	var (
		description *string
		imageURL    *string
		category    *string
		status      string
	)

	err := row.Scan(
		&product.ID,
		&product.Name,
		&product.Brand,
		&description,
		&product.Price,
		&imageURL,
		&category,
		&product.Stock,
		&status,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	product.Status = domain.ProductStatus(status)
	if description != nil {
		product.Description = *description
	}
	if imageURL != nil {
		product.ImageURL = *imageURL
	}
	if category != nil {
		product.Category = *category
	}
	return product, nil
}

var _ ProductRepository = (*PostgresProductRepository)(nil)
