package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmgate/storefront/internal/domain"
)

// EphemeralLine is the persisted record of one ephemeral cart position.
// It is the on-device wire format: an ordered list of these records with
// forward-compatible field addition and no other schema versioning.
type EphemeralLine struct {
	ItemKind  string    `json:"item_kind"`
	ItemID    string    `json:"item_id"`
	Quantity  int       `json:"quantity"`
	Amount    string    `json:"unit_price_amount"`
	Currency  string    `json:"unit_price_currency"`
	AddedAt   time.Time `json:"added_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// newEphemeralLine snapshots a domain line into its persisted form.
func newEphemeralLine(ref domain.ItemRef, quantity int, unitPrice domain.Money, now time.Time) EphemeralLine {
	return EphemeralLine{
		ItemKind:  string(ref.Kind()),
		ItemID:    ref.ID().String(),
		Quantity:  quantity,
		Amount:    unitPrice.Amount.String(),
		Currency:  unitPrice.Currency.String(),
		AddedAt:   now,
		UpdatedAt: now,
	}
}

// Ref parses the record's item reference.
func (l EphemeralLine) Ref() (domain.ItemRef, error) {
	return domain.ParseItemRef(l.ItemKind, l.ItemID)
}

// Price parses the record's price snapshot.
func (l EphemeralLine) Price() (domain.Money, error) {
	amount, err := decimal.NewFromString(l.Amount)
	if err != nil {
		return domain.Money{}, fmt.Errorf("amount[%s] is not valid: %w", l.Amount, err)
	}
	return domain.NewMoney(amount, l.Currency)
}

// EphemeralStore holds cart lines for a visitor without an authenticated
// identity. Persistence is local to the visitor's device; it is not durable
// and not shared. Records are owner-less and ordered; line ids are
// materialized positionally at read time.
type EphemeralStore interface {
	Load(ctx context.Context) ([]EphemeralLine, error)
	Save(ctx context.Context, lines []EphemeralLine) error
	Clear(ctx context.Context) error
}

// EphemeralProvider resolves the ephemeral store for a visitor session.
// Each device session gets its own independent store.
type EphemeralProvider interface {
	ForSession(sessionID string) EphemeralStore
}
