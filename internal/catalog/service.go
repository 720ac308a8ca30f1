package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
	"github.com/farmgate/storefront/internal/repository"
)

// Service defines the interface for storefront browse operations.
type Service interface {
	ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	GetLot(ctx context.Context, id uuid.UUID) (*domain.Lot, error)
}

type service struct {
	repo repository.Catalog
}

// NewService creates a new catalog service
func NewService(repo repository.Catalog) Service {
	return &service{repo: repo}
}

func (s *service) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	log := logger.FromContext(ctx)

	products, err := s.repo.ListProducts(ctx, limit, offset)
	if err != nil {
		log.Error("Failed to list products", "error", err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	return products, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product[%s]", domain.ErrItemNotFound, id)
	}

	return product, nil
}

func (s *service) GetLot(ctx context.Context, id uuid.UUID) (*domain.Lot, error) {
	lot, err := s.repo.GetLot(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get lot: %w", err)
	}
	if lot == nil {
		return nil, fmt.Errorf("%w: lot[%s]", domain.ErrItemNotFound, id)
	}

	return lot, nil
}
