package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/farmgate/storefront/internal/checkout"
	"github.com/farmgate/storefront/internal/domain"
)

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) Cart(ctx context.Context, ident domain.Identity) (domain.Cart, error) {
	args := m.Called(ctx, ident)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartService) AddItem(ctx context.Context, ident domain.Identity, ref domain.ItemRef, quantity int) (domain.Cart, error) {
	args := m.Called(ctx, ident, ref, quantity)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartService) UpdateQuantity(ctx context.Context, ident domain.Identity, lineID string, quantity int) (domain.Cart, error) {
	args := m.Called(ctx, ident, lineID, quantity)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartService) RemoveItem(ctx context.Context, ident domain.Identity, lineID string) (domain.Cart, error) {
	args := m.Called(ctx, ident, lineID)
	return args.Get(0).(domain.Cart), args.Error(1)
}

func (m *MockCartService) ClearCart(ctx context.Context, ident domain.Identity) error {
	args := m.Called(ctx, ident)
	return args.Error(0)
}

func (m *MockCartService) MergeOnAuthentication(ctx context.Context, ident domain.Identity) (domain.Cart, error) {
	args := m.Called(ctx, ident)
	return args.Get(0).(domain.Cart), args.Error(1)
}

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListProducts(ctx context.Context, limit, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogService) GetLot(ctx context.Context, id uuid.UUID) (*domain.Lot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lot), args.Error(1)
}

type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Quote(ctx context.Context, ident domain.Identity) (checkout.Quote, error) {
	args := m.Called(ctx, ident)
	return args.Get(0).(checkout.Quote), args.Error(1)
}
