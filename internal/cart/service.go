package cart

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/farmgate/storefront/internal/concurrency"
	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
	"github.com/farmgate/storefront/internal/metrics"
	"github.com/farmgate/storefront/internal/repository"
)

// PriceOracle looks up the current unit price for an item. It is consulted
// exactly once per new line creation and never for quantity changes; the
// stored snapshot is authoritative and deliberately stale-tolerant.
type PriceOracle interface {
	Price(ctx context.Context, ref domain.ItemRef) (domain.Money, error)
}

// Service defines the interface for cart operations. The active store is
// chosen per call from the supplied identity: anonymous identities operate
// on the session's ephemeral store, authenticated identities on the durable
// owner-keyed store. Mutations for one owner context are serialized; the
// caller signals authentication by invoking MergeOnAuthentication before
// issuing further operations for that owner.
type Service interface {
	Cart(ctx context.Context, ident domain.Identity) (domain.Cart, error)
	AddItem(ctx context.Context, ident domain.Identity, ref domain.ItemRef, quantity int) (domain.Cart, error)
	UpdateQuantity(ctx context.Context, ident domain.Identity, lineID string, quantity int) (domain.Cart, error)
	RemoveItem(ctx context.Context, ident domain.Identity, lineID string) (domain.Cart, error)
	ClearCart(ctx context.Context, ident domain.Identity) error
	MergeOnAuthentication(ctx context.Context, ident domain.Identity) (domain.Cart, error)
}

type service struct {
	durable  repository.Cart
	sessions EphemeralProvider
	oracle   PriceOracle
	locks    *concurrency.LockManager
	now      func() time.Time
}

// NewService creates a new cart service
func NewService(durable repository.Cart, sessions EphemeralProvider, oracle PriceOracle) Service {
	return &service{
		durable:  durable,
		sessions: sessions,
		oracle:   oracle,
		locks:    concurrency.NewLockManager(),
		now:      time.Now,
	}
}

// Cart materializes the cart for the current identity with derived totals.
func (s *service) Cart(ctx context.Context, ident domain.Identity) (domain.Cart, error) {
	lines, err := s.loadLines(ctx, ident)
	if err != nil {
		return domain.Cart{}, err
	}
	return domain.NewCart(ident.OwnerID, lines)
}

// AddItem adds quantity of the referenced item to the active cart. An
// existing line for the same item has its quantity incremented and keeps its
// price snapshot; a new line captures the oracle's current price once.
func (s *service) AddItem(ctx context.Context, ident domain.Identity, ref domain.ItemRef, quantity int) (domain.Cart, error) {
	log := logger.FromContext(ctx)

	if quantity < 1 {
		return domain.Cart{}, fmt.Errorf("%w: got %d", domain.ErrInvalidQuantity, quantity)
	}
	if ref.IsZero() {
		return domain.Cart{}, domain.ErrInvalidItemRef
	}

	var cart domain.Cart
	err := s.locks.WithLock(ident.LockKey(), func() error {
		var err error
		if ident.IsAnonymous() {
			cart, err = s.addEphemeral(ctx, ident, ref, quantity)
		} else {
			cart, err = s.addDurable(ctx, ident, ref, quantity)
		}
		return err
	})
	if err != nil {
		return domain.Cart{}, err
	}

	log.Info("Item added to cart", "item", ref.String(), "quantity", quantity, "anonymous", ident.IsAnonymous())
	metrics.CartItemsAdded.WithLabelValues(string(ref.Kind())).Inc()

	return cart, nil
}

func (s *service) addDurable(ctx context.Context, ident domain.Identity, ref domain.ItemRef, quantity int) (domain.Cart, error) {
	lines, err := s.durable.Load(ctx, ident.OwnerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	if existing := findByRef(lines, ref); existing != nil {
		if err := s.durable.UpdateQuantity(ctx, existing.ID, existing.Quantity+quantity); err != nil {
			return domain.Cart{}, fmt.Errorf("increment line: %w", err)
		}
		return s.refreshDurable(ctx, ident.OwnerID)
	}

	price, err := s.oracle.Price(ctx, ref)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("price lookup for %s: %w", ref, err)
	}

	// The store-level upsert folds a lost find-or-create race into an
	// increment on the winner's line.
	if _, err := s.durable.Insert(ctx, ident.OwnerID, ref, quantity, price); err != nil {
		return domain.Cart{}, fmt.Errorf("insert line: %w", err)
	}

	return s.refreshDurable(ctx, ident.OwnerID)
}

func (s *service) addEphemeral(ctx context.Context, ident domain.Identity, ref domain.ItemRef, quantity int) (domain.Cart, error) {
	store := s.sessions.ForSession(ident.SessionID)

	records, err := store.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load ephemeral cart: %w", err)
	}

	found := false
	for i := range records {
		if records[i].ItemKind == string(ref.Kind()) && records[i].ItemID == ref.ID().String() {
			records[i].Quantity += quantity
			records[i].UpdatedAt = s.now()
			found = true
			break
		}
	}

	if !found {
		price, err := s.oracle.Price(ctx, ref)
		if err != nil {
			return domain.Cart{}, fmt.Errorf("price lookup for %s: %w", ref, err)
		}
		records = append(records, newEphemeralLine(ref, quantity, price, s.now()))
	}

	if err := store.Save(ctx, records); err != nil {
		return domain.Cart{}, fmt.Errorf("save ephemeral cart: %w", err)
	}

	return materialize(ident, records)
}

// UpdateQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line instead; the price snapshot is never touched.
func (s *service) UpdateQuantity(ctx context.Context, ident domain.Identity, lineID string, quantity int) (domain.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, ident, lineID)
	}

	var cart domain.Cart
	err := s.locks.WithLock(ident.LockKey(), func() error {
		var err error
		if ident.IsAnonymous() {
			cart, err = s.updateEphemeral(ctx, ident, lineID, quantity)
		} else {
			if err = s.durable.UpdateQuantity(ctx, lineID, quantity); err != nil {
				return fmt.Errorf("update quantity: %w", err)
			}
			cart, err = s.refreshDurable(ctx, ident.OwnerID)
		}
		return err
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *service) updateEphemeral(ctx context.Context, ident domain.Identity, lineID string, quantity int) (domain.Cart, error) {
	store := s.sessions.ForSession(ident.SessionID)

	records, err := store.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load ephemeral cart: %w", err)
	}

	idx, err := ephemeralIndex(lineID, len(records))
	if err != nil {
		return domain.Cart{}, err
	}

	records[idx].Quantity = quantity
	records[idx].UpdatedAt = s.now()

	if err := store.Save(ctx, records); err != nil {
		return domain.Cart{}, fmt.Errorf("save ephemeral cart: %w", err)
	}

	return materialize(ident, records)
}

// RemoveItem deletes a line unconditionally. Removing a line that is already
// absent is a tolerated no-op.
func (s *service) RemoveItem(ctx context.Context, ident domain.Identity, lineID string) (domain.Cart, error) {
	var cart domain.Cart
	err := s.locks.WithLock(ident.LockKey(), func() error {
		var err error
		if ident.IsAnonymous() {
			cart, err = s.removeEphemeral(ctx, ident, lineID)
		} else {
			if _, err = s.durable.Delete(ctx, lineID); err != nil {
				return fmt.Errorf("delete line: %w", err)
			}
			cart, err = s.refreshDurable(ctx, ident.OwnerID)
		}
		return err
	})
	if err != nil {
		return domain.Cart{}, err
	}

	return cart, nil
}

func (s *service) removeEphemeral(ctx context.Context, ident domain.Identity, lineID string) (domain.Cart, error) {
	store := s.sessions.ForSession(ident.SessionID)

	records, err := store.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load ephemeral cart: %w", err)
	}

	idx, err := ephemeralIndex(lineID, len(records))
	if err != nil {
		// Absent line: removal stays a no-op.
		return materialize(ident, records)
	}

	records = append(records[:idx], records[idx+1:]...)

	if err := store.Save(ctx, records); err != nil {
		return domain.Cart{}, fmt.Errorf("save ephemeral cart: %w", err)
	}

	return materialize(ident, records)
}

// ClearCart deletes all lines for the active owner context.
func (s *service) ClearCart(ctx context.Context, ident domain.Identity) error {
	return s.locks.WithLock(ident.LockKey(), func() error {
		if ident.IsAnonymous() {
			if err := s.sessions.ForSession(ident.SessionID).Clear(ctx); err != nil {
				return fmt.Errorf("clear ephemeral cart: %w", err)
			}
			return nil
		}
		if err := s.durable.DeleteAll(ctx, ident.OwnerID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
}

func (s *service) refreshDurable(ctx context.Context, ownerID string) (domain.Cart, error) {
	lines, err := s.durable.Load(ctx, ownerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("reload cart: %w", err)
	}
	return domain.NewCart(ownerID, lines)
}

func (s *service) loadLines(ctx context.Context, ident domain.Identity) ([]domain.CartLine, error) {
	if !ident.IsAnonymous() {
		lines, err := s.durable.Load(ctx, ident.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("load cart: %w", err)
		}
		return lines, nil
	}

	records, err := s.sessions.ForSession(ident.SessionID).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ephemeral cart: %w", err)
	}

	cart, err := materialize(ident, records)
	if err != nil {
		return nil, err
	}
	return cart.Lines, nil
}

// materialize turns ephemeral records into a derived cart. Line ids are the
// record's position at read time; they are only stable until the next write.
func materialize(ident domain.Identity, records []EphemeralLine) (domain.Cart, error) {
	lines := make([]domain.CartLine, 0, len(records))

	for i, rec := range records {
		ref, err := rec.Ref()
		if err != nil {
			return domain.Cart{}, fmt.Errorf("record[%d]: %w", i, err)
		}
		price, err := rec.Price()
		if err != nil {
			return domain.Cart{}, fmt.Errorf("record[%d]: %w", i, err)
		}

		lines = append(lines, domain.CartLine{
			ID:        strconv.Itoa(i),
			ItemRef:   ref,
			Quantity:  rec.Quantity,
			UnitPrice: price,
			CreatedAt: rec.AddedAt,
			UpdatedAt: rec.UpdatedAt,
		})
	}

	return domain.NewCart("", lines)
}

func ephemeralIndex(lineID string, size int) (int, error) {
	idx, err := strconv.Atoi(lineID)
	if err != nil || idx < 0 || idx >= size {
		return 0, fmt.Errorf("%w: line id[%s]", domain.ErrLineNotFound, lineID)
	}
	return idx, nil
}

func findByRef(lines []domain.CartLine, ref domain.ItemRef) *domain.CartLine {
	for i := range lines {
		if lines[i].ItemRef.Equal(ref) {
			return &lines[i]
		}
	}
	return nil
}
