package service

import (
	"context"
	"errors"

	"github.com/shri-jewellery/storefront/internal/domain"
	"github.com/shri-jewellery/storefront/internal/repository"
	apperrors "github.com/shri-jewellery/storefront/pkg/util/errorutil"
)

// CatalogService exposes the read-only product catalog.
type CatalogService struct {
	products repository.ProductRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns the full catalog in load order.
func (s *CatalogService) ListProducts(ctx context.Context) []domain.Product {
	return s.products.List(ctx)
}

// GetProduct returns a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("product", map[string]any{"product_id": id})
	}
	return p, err
}
