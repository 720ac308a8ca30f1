package cart

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/farmgate/storefront/internal/domain"
)

// MockOracle implements PriceOracle for testing
type MockOracle struct {
	mock.Mock
}

func (m *MockOracle) Price(ctx context.Context, ref domain.ItemRef) (domain.Money, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(domain.Money), args.Error(1)
}

// MockDurable implements repository.Cart for error-injection tests
type MockDurable struct {
	mock.Mock
}

func (m *MockDurable) Load(ctx context.Context, ownerID string) ([]domain.CartLine, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CartLine), args.Error(1)
}

func (m *MockDurable) Insert(ctx context.Context, ownerID string, ref domain.ItemRef, quantity int, unitPrice domain.Money) (domain.CartLine, error) {
	args := m.Called(ctx, ownerID, ref, quantity, unitPrice)
	return args.Get(0).(domain.CartLine), args.Error(1)
}

func (m *MockDurable) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	args := m.Called(ctx, lineID, quantity)
	return args.Error(0)
}

func (m *MockDurable) Delete(ctx context.Context, lineID string) (bool, error) {
	args := m.Called(ctx, lineID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDurable) DeleteAll(ctx context.Context, ownerID string) error {
	args := m.Called(ctx, ownerID)
	return args.Error(0)
}

// fakeDurable is an in-memory durable store with the same upsert semantics
// as the Postgres implementation, for behavioral sequences where wiring
// per-call mock expectations would drown the test.
type fakeDurable struct {
	mu     sync.Mutex
	nextID int
	lines  map[string][]domain.CartLine // ownerID -> lines
}

func newFakeDurable() *fakeDurable {
	return &fakeDurable{lines: make(map[string][]domain.CartLine)}
}

func (f *fakeDurable) Load(_ context.Context, ownerID string) ([]domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]domain.CartLine, len(f.lines[ownerID]))
	copy(out, f.lines[ownerID])
	return out, nil
}

func (f *fakeDurable) Insert(_ context.Context, ownerID string, ref domain.ItemRef, quantity int, unitPrice domain.Money) (domain.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.lines[ownerID] {
		if f.lines[ownerID][i].ItemRef.Equal(ref) {
			f.lines[ownerID][i].Quantity += quantity
			return f.lines[ownerID][i], nil
		}
	}

	f.nextID++
	line := domain.CartLine{
		ID:        "line-" + strconv.Itoa(f.nextID),
		OwnerID:   ownerID,
		ItemRef:   ref,
		Quantity:  quantity,
		UnitPrice: unitPrice,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.lines[ownerID] = append(f.lines[ownerID], line)
	return line, nil
}

func (f *fakeDurable) UpdateQuantity(_ context.Context, lineID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for owner := range f.lines {
		for i := range f.lines[owner] {
			if f.lines[owner][i].ID == lineID {
				f.lines[owner][i].Quantity = quantity
				return nil
			}
		}
	}
	return domain.ErrLineNotFound
}

func (f *fakeDurable) Delete(_ context.Context, lineID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for owner := range f.lines {
		for i := range f.lines[owner] {
			if f.lines[owner][i].ID == lineID {
				f.lines[owner] = append(f.lines[owner][:i], f.lines[owner][i+1:]...)
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeDurable) DeleteAll(_ context.Context, ownerID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.lines, ownerID)
	return nil
}
