package document

import (
	"context"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductPrice pairs a product with its last observed quote price
type ProductPrice struct {
	ProductID uuid.UUID       `json:"product_id"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// FindByID finds a quote by ID for a tenant, items included
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Quote, error)

	// FindByCode finds a quote by code for a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Quote, error)

	// FindAll finds all quotes of a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Quote, error)

	// FindByCustomer finds quotes for a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Quote, error)

	// Save creates or updates a quote and syncs its items
	Save(ctx context.Context, quote *Quote) error

	// SaveWithLock updates only if the persisted version matches expectedVersion,
	// returning shared.ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, quote *Quote, expectedVersion int) error

	// Delete removes a quote and its items. Callers must check CanDelete.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// NextCode generates the next COT code for the tenant in the current
	// year, by scanning the most recent matching code
	NextCode(ctx context.Context, tenantID uuid.UUID) (string, error)

	// LastNotesForCustomer returns the notes of the customer's most recent
	// non-rejected quote; empty string when there is no history
	LastNotesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (string, error)

	// LatestPricesForCustomer returns, for each product ever quoted to the
	// customer in a non-rejected quote, the unit price from the most recent
	// quote containing it
	LatestPricesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]ProductPrice, error)

	// Count counts quotes of a tenant matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale by ID for a tenant, items included
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)

	// FindByCode finds a sale by code for a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Sale, error)

	// FindAll finds all sales of a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindByCustomer finds sales for a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Sale, error)

	// FindBySource finds the sale generated from a given source document
	FindBySource(ctx context.Context, tenantID uuid.UUID, source SourceRef) (*Sale, error)

	// Save creates or updates a sale and syncs its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock updates only if the persisted version matches expectedVersion,
	// returning shared.ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, sale *Sale, expectedVersion int) error

	// Delete removes a sale and its items. Callers must check CanDelete.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// NextCode generates the next VTA code for the tenant in the current year
	NextCode(ctx context.Context, tenantID uuid.UUID) (string, error)

	// Count counts sales of a tenant matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	// FindByID finds a purchase order by ID for a tenant, items included
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)

	// FindByCode finds a purchase order by code for a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*PurchaseOrder, error)

	// FindAll finds all purchase orders of a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindByProvider finds purchase orders addressed to a provider
	FindByProvider(ctx context.Context, tenantID, providerID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)

	// FindBySource finds all purchase orders generated from a source document
	FindBySource(ctx context.Context, tenantID uuid.UUID, source SourceRef) ([]PurchaseOrder, error)

	// ExistsBySource checks whether any purchase order was generated from
	// the source document
	ExistsBySource(ctx context.Context, tenantID uuid.UUID, source SourceRef) (bool, error)

	// Save creates or updates a purchase order and syncs its items
	Save(ctx context.Context, po *PurchaseOrder) error

	// SaveWithLock updates only if the persisted version matches expectedVersion,
	// returning shared.ErrConcurrencyConflict otherwise
	SaveWithLock(ctx context.Context, po *PurchaseOrder, expectedVersion int) error

	// Delete removes a purchase order and its items. Callers must check
	// CanDelete.
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// NextCode generates the next OC code for the tenant in the current year
	NextCode(ctx context.Context, tenantID uuid.UUID) (string, error)

	// LastNotesForCustomer returns the notes of the most recent
	// non-cancelled purchase order linked to the customer; empty string
	// when there is no history
	LastNotesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (string, error)

	// Count counts purchase orders of a tenant matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
