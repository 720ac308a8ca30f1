package cart

import (
	"context"
	"fmt"

	"github.com/farmgate/storefront/internal/domain"
	"github.com/farmgate/storefront/internal/logger"
	"github.com/farmgate/storefront/internal/metrics"
)

// MergeOnAuthentication folds the session's ephemeral cart into the durable
// cart of the newly authenticated owner, then clears the ephemeral store.
// For an item present in both carts the quantities are summed and the
// durable price snapshot wins; an item only in the ephemeral cart becomes a
// durable line carrying its ephemeral snapshot.
//
// The walk drops each ephemeral record as soon as its durable upsert is
// confirmed, so a merge interrupted by a failure can simply be re-invoked:
// already-merged records are gone and only the remainder is applied. With an
// empty ephemeral store the merge is a no-op, which makes a repeated
// invocation after success harmless.
func (s *service) MergeOnAuthentication(ctx context.Context, ident domain.Identity) (domain.Cart, error) {
	log := logger.FromContext(ctx)

	if ident.IsAnonymous() {
		return domain.Cart{}, fmt.Errorf("%w: merge requires an authenticated owner", domain.ErrMergeIncomplete)
	}

	var cart domain.Cart
	err := s.locks.WithLock(ident.LockKey(), func() error {
		return s.locks.WithLock(domain.Anonymous(ident.SessionID).LockKey(), func() error {
			var err error
			cart, err = s.merge(ctx, ident)
			return err
		})
	})
	if err != nil {
		metrics.CartMerges.WithLabelValues(metrics.ResultFailure).Inc()
		return domain.Cart{}, err
	}

	metrics.CartMerges.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info("Ephemeral cart merged", "owner_id", ident.OwnerID, "lines", len(cart.Lines))

	return cart, nil
}

func (s *service) merge(ctx context.Context, ident domain.Identity) (domain.Cart, error) {
	store := s.sessions.ForSession(ident.SessionID)

	records, err := store.Load(ctx)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load ephemeral cart: %w", err)
	}

	// Already merged (or nothing to merge): report the durable state.
	if len(records) == 0 {
		return s.refreshDurable(ctx, ident.OwnerID)
	}

	durableLines, err := s.durable.Load(ctx, ident.OwnerID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("load cart: %w", err)
	}

	for len(records) > 0 {
		rec := records[0]

		if err := s.mergeRecord(ctx, ident.OwnerID, durableLines, rec); err != nil {
			// Unmerged records stay behind; the caller retries the merge.
			return domain.Cart{}, fmt.Errorf("%w: item %s/%s: %v",
				domain.ErrMergeIncomplete, rec.ItemKind, rec.ItemID, err)
		}

		records = records[1:]
		if err := store.Save(ctx, records); err != nil {
			return domain.Cart{}, fmt.Errorf("%w: persist merge progress: %v", domain.ErrMergeIncomplete, err)
		}
	}

	if err := store.Clear(ctx); err != nil {
		return domain.Cart{}, fmt.Errorf("%w: clear ephemeral cart: %v", domain.ErrMergeIncomplete, err)
	}

	return s.refreshDurable(ctx, ident.OwnerID)
}

func (s *service) mergeRecord(ctx context.Context, ownerID string, durableLines []domain.CartLine, rec EphemeralLine) error {
	ref, err := rec.Ref()
	if err != nil {
		return err
	}

	if existing := findByRef(durableLines, ref); existing != nil {
		// Durable snapshot wins; only the quantity is folded in.
		if err := s.durable.UpdateQuantity(ctx, existing.ID, existing.Quantity+rec.Quantity); err != nil {
			return err
		}
		existing.Quantity += rec.Quantity
		return nil
	}

	price, err := rec.Price()
	if err != nil {
		return err
	}

	_, err = s.durable.Insert(ctx, ownerID, ref, rec.Quantity, price)
	return err
}
