package service

import (
	"context"
	"errors"
	"testing"

	"github.com/orderhub/backend/internal/domain"
	"github.com/orderhub/backend/internal/dto"
	"github.com/orderhub/backend/internal/repository"
)

func TestProductService_Create(t *testing.T) {
	tests := []struct {
		name       string
		req        *dto.CreateProductRequest
		wantStatus domain.ProductStatus
	}{
		{
			name: "defaults status to ACTIVE",
			req: &dto.CreateProductRequest{
				Name:  "Widget",
				Brand: "Acme",
				Price: 19.99,
				Stock: 10,
			},
			wantStatus: domain.ProductStatusActive,
		},
		{
			name: "keeps explicit status",
			req: &dto.CreateProductRequest{
				Name:   "Old Widget",
				Brand:  "Acme",
				Price:  9.99,
				Stock:  0,
				Status: string(domain.ProductStatusDiscontinued),
			},
			wantStatus: domain.ProductStatusDiscontinued,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *domain.Product
			repo := &MockProductRepository{
				CreateFunc: func(ctx context.Context, product *domain.Product) error {
					product.ID = 5
					created = product
					return nil
				},
			}
			svc := NewProductService(repo)

			product, err := svc.Create(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if product.ID != 5 {
				t.Errorf("expected ID 5, got %d", product.ID)
			}
			if created.Status != tt.wantStatus {
				t.Errorf("expected status %s, got %s", tt.wantStatus, created.Status)
			}
			if created.Name != tt.req.Name {
				t.Errorf("expected name %s, got %s", tt.req.Name, created.Name)
			}
		})
	}
}

func TestProductService_GetByID(t *testing.T) {
	svc := NewProductService(&MockProductRepository{
		GetByIDFunc: func(ctx context.Context, id int64) (*domain.Product, error) {
			if id != 3 {
				return nil, domain.ErrProductNotFound
			}
			return &domain.Product{ID: 3, Name: "Widget"}, nil
		},
	})

	t.Run("found", func(t *testing.T) {
		product, err := svc.GetByID(context.Background(), 3)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if product.Name != "Widget" {
			t.Errorf("expected Widget, got %s", product.Name)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99)
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 0)
		if !errors.Is(err, domain.ErrInvalidProductID) {
			t.Errorf("expected ErrInvalidProductID, got %v", err)
		}
	})
}

func TestProductService_List(t *testing.T) {
	var gotFilter repository.ProductFilter
	repo := &MockProductRepository{
		ListFunc: func(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, int64, error) {
			gotFilter = filter
			return []domain.Product{{ID: 1}, {ID: 2}}, 12, nil
		},
	}
	svc := NewProductService(repo)

	resp, err := svc.List(context.Background(), &dto.ProductListQuery{
		Search:    "widget",
		Status:    "ACTIVE",
		SortBy:    "price",
		SortOrder: "desc",
		Skip:      0,
		Take:      5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotFilter.Status != domain.ProductStatusActive {
		t.Errorf("expected ACTIVE filter, got %s", gotFilter.Status)
	}
	if gotFilter.Search != "widget" {
		t.Errorf("expected search widget, got %s", gotFilter.Search)
	}
	if len(resp.Products) != 2 {
		t.Errorf("expected 2 products, got %d", len(resp.Products))
	}
	if resp.Pagination.Total != 12 {
		t.Errorf("expected total 12, got %d", resp.Pagination.Total)
	}
	if resp.Pagination.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.Pagination.TotalPages)
	}
}

func TestProductService_Update(t *testing.T) {
	t.Run("partial update keeps unset fields", func(t *testing.T) {
		existing := &domain.Product{
			ID:     7,
			Name:   "Widget",
			Brand:  "Acme",
			Price:  19.99,
			Stock:  10,
			Status: domain.ProductStatusActive,
		}
		var updated *domain.Product
		repo := &MockProductRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*domain.Product, error) {
				return existing, nil
			},
			UpdateFunc: func(ctx context.Context, product *domain.Product) error {
				updated = product
				return nil
			},
		}
		svc := NewProductService(repo)

		newPrice := 24.99
		newStatus := string(domain.ProductStatusInactive)
		_, err := svc.Update(context.Background(), 7, &dto.UpdateProductRequest{
			Price:  &newPrice,
			Status: &newStatus,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if updated.Price != 24.99 {
			t.Errorf("expected price 24.99, got %f", updated.Price)
		}
		if updated.Status != domain.ProductStatusInactive {
			t.Errorf("expected INACTIVE, got %s", updated.Status)
		}
		if updated.Name != "Widget" || updated.Brand != "Acme" {
			t.Errorf("unset fields changed: %+v", updated)
		}
	})

	t.Run("not found", func(t *testing.T) {
		repo := &MockProductRepository{
			GetByIDFunc: func(ctx context.Context, id int64) (*domain.Product, error) {
				return nil, domain.ErrProductNotFound
			},
		}
		svc := NewProductService(repo)

		name := "x"
		_, err := svc.Update(context.Background(), 99, &dto.UpdateProductRequest{Name: &name})
		if !errors.Is(err, domain.ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestProductService_Delete(t *testing.T) {
	t.Run("referenced product is rejected", func(t *testing.T) {
		repo := &MockProductRepository{
			DeleteFunc: func(ctx context.Context, id int64) error {
				return domain.ErrProductReferenced
			},
		}
		svc := NewProductService(repo)

		err := svc.Delete(context.Background(), 7)
		if !errors.Is(err, domain.ErrProductReferenced) {
			t.Errorf("expected ErrProductReferenced, got %v", err)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		svc := NewProductService(&MockProductRepository{})
		if err := svc.Delete(context.Background(), -1); !errors.Is(err, domain.ErrInvalidProductID) {
			t.Errorf("expected ErrInvalidProductID, got %v", err)
		}
	})
}
