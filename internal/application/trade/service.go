package trade

import (
	"context"
	"errors"

	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// maxCodeAttempts bounds the regenerate-and-retry loop when two concurrent
// creations compute the same next code and collide on the unique index.
const maxCodeAttempts = 3

// retryOnDuplicateCode runs fn, regenerating the document code when the save
// hits the (tenant, code) unique index, up to maxCodeAttempts times.
func retryOnDuplicateCode(fn func() error) error {
	var err error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		err = fn()
		if err == nil || !errors.Is(err, shared.ErrAlreadyExists) {
			return err
		}
	}
	return shared.NewConcurrencyError("CODE_COLLISION", "Could not generate a unique document code")
}

// resolveProducts loads and returns the products referenced by the inputs,
// keyed by ID, guaranteeing they all belong to the tenant.
func resolveProducts(ctx context.Context, products catalog.ProductRepository, tenantID uuid.UUID, items []ItemInput) (map[uuid.UUID]catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]catalog.Product{}, nil
	}

	found, err := products.FindByIDs(ctx, tenantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]catalog.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	for _, id := range ids {
		if _, ok := byID[id]; !ok {
			return nil, shared.NewConsistencyError("PRODUCT_NOT_FOUND", "Product does not exist for this enterprise")
		}
	}
	return byID, nil
}

// publishEvents dispatches collected domain events after a successful
// commit. Publishing is best-effort: the transaction has already committed,
// so failures are swallowed by the publisher implementation.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, events []shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}
