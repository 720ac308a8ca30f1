package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/farmgate/storefront/internal/domain"
)

func TestAddItem_ConcurrentSameItemSingleLine(t *testing.T) {
	const workers = 16

	ctx := context.Background()
	oracle := new(MockOracle)
	oracle.On("Price", mock.Anything, productRef()).Return(price("10"), nil)
	durable := newFakeDurable()
	svc, _ := newTestService(durable, oracle)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddItem(ctx, ownerIdent(), productRef(), 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cart, err := svc.Cart(ctx, ownerIdent())
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1, "concurrent adds of one item must collapse into one line")
	assert.Equal(t, workers, cart.Lines[0].Quantity)
	assert.Equal(t, workers, cart.ItemCount)
}

func TestAddItem_ConcurrentAnonymousSessions(t *testing.T) {
	const sessions = 8

	ctx := context.Background()
	oracle := new(MockOracle)
	oracle.On("Price", mock.Anything, lotRef()).Return(price("500"), nil)
	svc, _ := newTestService(newFakeDurable(), oracle)

	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			ident := domain.Anonymous(string(rune('a' + n)))
			_, err := svc.AddItem(ctx, ident, lotRef(), n+1)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Each session keeps its own cart.
	for i := 0; i < sessions; i++ {
		cart, err := svc.Cart(ctx, domain.Anonymous(string(rune('a'+i))))
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, i+1, cart.Lines[0].Quantity)
	}
}
