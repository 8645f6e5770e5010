package service

import (
	"context"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/repository"
)

// ProductService defines the interface for product catalog operations
type ProductService interface {
	// Create adds a new product to the catalog
	Create(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error)
	// GetByID retrieves a product by ID
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	// List retrieves products matching the query with pagination
	List(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error)
	// Update applies a partial update to a product
	Update(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*domain.Product, error)
	// Delete removes a product unless orders reference it
	Delete(ctx context.Context, id int64) error
}

// productService implements ProductService
type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{productRepo: productRepo}
}

// Create adds a new product to the catalog
func (s *productService) Create(ctx context.Context, req *dto.CreateProductRequest) (*domain.Product, error) {
	status := domain.ProductStatus(req.Status)
	if req.Status == "" {
		status = domain.ProductStatusActive
	}

	product := &domain.Product{
		Name:        req.Name,
		Description: req.Description,
		Brand:       req.Brand,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Price:       req.Price,
		Stock:       req.Stock,
		Status:      status,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID retrieves a product by ID
func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidProductID
	}
	return s.productRepo.GetByID(ctx, id)
}

// List retrieves products matching the query with pagination
func (s *productService) List(ctx context.Context, query *dto.ProductListQuery) (*dto.ProductListResponse, error) {
	filter := repository.ProductFilter{
		Search:    query.Search,
		Status:    domain.ProductStatus(query.Status),
		SortBy:    query.SortBy,
		SortOrder: query.SortOrder,
		Skip:      query.Skip,
		Take:      query.Take,
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &dto.ProductListResponse{
		Products:   products,
		Pagination: dto.NewPagination(total, query.Skip, query.Take),
	}, nil
}

// Update applies a partial update to a product
func (s *productService) Update(ctx context.Context, id int64, req *dto.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = domain.ProductStatus(*req.Status)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete removes a product unless orders reference it
func (s *productService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrInvalidProductID
	}
	return s.productRepo.Delete(ctx, id)
}
