package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(quantity int, unitPrice string) CartLine {
	return CartLine{
		ID:        uuid.NewString(),
		ItemRef:   ProductRef(uuid.New()),
		Quantity:  quantity,
		UnitPrice: MustMoney(unitPrice, "EUR"),
	}
}

func TestCartLine_Subtotal(t *testing.T) {
	got := line(3, "4.90").Subtotal()
	assert.True(t, got.Equal(MustMoney("14.70", "EUR")))
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name      string
		lines     []CartLine
		wantCount int
		wantTotal string
	}{
		{"empty", nil, 0, "0"},
		{"single line", []CartLine{line(2, "10")}, 2, "20"},
		{"multiple lines", []CartLine{line(2, "10"), line(1, "95"), line(3, "0.50")}, 6, "116.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, total, err := ComputeTotals(tt.lines)
			require.NoError(t, err)

			assert.Equal(t, tt.wantCount, count)
			if len(tt.lines) == 0 {
				assert.True(t, total.IsZero())
				return
			}
			assert.True(t, total.Equal(MustMoney(tt.wantTotal, "EUR")), "got %s", total)
		})
	}
}

func TestComputeTotals_CurrencyMismatch(t *testing.T) {
	lines := []CartLine{line(1, "10"), {Quantity: 1, UnitPrice: MustMoney("10", "USD")}}

	_, _, err := ComputeTotals(lines)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestNewCart(t *testing.T) {
	lines := []CartLine{line(2, "10"), line(1, "95")}

	cart, err := NewCart("owner-1", lines)
	require.NoError(t, err)

	assert.Equal(t, "owner-1", cart.OwnerID)
	assert.Equal(t, 3, cart.ItemCount)
	assert.True(t, cart.Total.Equal(MustMoney("115", "EUR")))
	assert.Len(t, cart.Lines, 2)
}
