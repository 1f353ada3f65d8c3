package persistence

import (
	"context"
	"time"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormQuoteRepository implements QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote by ID for a tenant, items included
func (r *GormQuoteRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*document.Quote, error) {
	var quote document.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&quote).Error; err != nil {
		return nil, translateError(err)
	}
	return &quote, nil
}

// FindByCode finds a quote by code for a tenant
func (r *GormQuoteRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*document.Quote, error) {
	var quote document.Quote
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&quote).Error; err != nil {
		return nil, translateError(err)
	}
	return &quote, nil
}

// FindAll finds all quotes of a tenant matching the filter
func (r *GormQuoteRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.Quote, error) {
	var quotes []document.Quote
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindByCustomer finds quotes for a customer
func (r *GormQuoteRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]document.Quote, error) {
	var quotes []document.Quote
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// Save creates or updates a quote and syncs its items
func (r *GormQuoteRepository) Save(ctx context.Context, quote *document.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(quote).Error; err != nil {
			return translateError(err)
		}
		return syncQuoteItems(tx, quote)
	})
}

// SaveWithLock saves only if the row still holds expectedVersion. Callers
// bump the aggregate's version before saving so the write advances it.
func (r *GormQuoteRepository) SaveWithLock(ctx context.Context, quote *document.Quote, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&document.Quote{}).
			Where("id = ? AND tenant_id = ? AND version = ?", quote.ID, quote.TenantID, expectedVersion).
			Select("*").Omit("Items").
			Updates(quote)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return syncQuoteItems(tx, quote)
	})
}

// Delete removes a quote and its items
func (r *GormQuoteRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quote_id = ?", id).Delete(&document.QuoteItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&document.Quote{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextCode generates the next COT code for the tenant in the current year
func (r *GormQuoteRepository) NextCode(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentCode(ctx, r.db, &document.Quote{}, tenantID, document.CodePrefixQuote)
}

// LastNotesForCustomer returns the notes of the customer's most recent
// non-rejected quote
func (r *GormQuoteRepository) LastNotesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (string, error) {
	var notes []string
	err := r.db.WithContext(ctx).
		Model(&document.Quote{}).
		Where("tenant_id = ? AND customer_id = ? AND status <> ?", tenantID, customerID, document.QuoteStatusRejected).
		Order("created_at DESC").
		Limit(1).
		Pluck("notes", &notes).Error
	if err != nil {
		return "", err
	}
	if len(notes) == 0 {
		return "", nil
	}
	return notes[0], nil
}

// LatestPricesForCustomer returns the last observed unit price per product
// across the customer's non-rejected quotes
func (r *GormQuoteRepository) LatestPricesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]document.ProductPrice, error) {
	var rows []struct {
		ProductID uuid.UUID
		UnitPrice decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("quote_items").
		Select("quote_items.product_id, quote_items.unit_price").
		Joins("JOIN quotes ON quotes.id = quote_items.quote_id").
		Where("quotes.tenant_id = ? AND quotes.customer_id = ? AND quotes.status <> ?",
			tenantID, customerID, document.QuoteStatusRejected).
		Order("quotes.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	// Later quotes override earlier ones; first-appearance order is kept.
	index := make(map[uuid.UUID]int, len(rows))
	prices := make([]document.ProductPrice, 0, len(rows))
	for _, row := range rows {
		if i, seen := index[row.ProductID]; seen {
			prices[i].UnitPrice = row.UnitPrice
			continue
		}
		index[row.ProductID] = len(prices)
		prices = append(prices, document.ProductPrice{ProductID: row.ProductID, UnitPrice: row.UnitPrice})
	}
	return prices, nil
}

// Count counts quotes of a tenant matching the filter
func (r *GormQuoteRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&document.Quote{}).
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormQuoteRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR customer_name LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

// syncQuoteItems upserts the current items and removes rows that are no
// longer in the aggregate
func syncQuoteItems(tx *gorm.DB, quote *document.Quote) error {
	keep := make([]uuid.UUID, 0, len(quote.Items))
	for i := range quote.Items {
		quote.Items[i].QuoteID = quote.ID
		keep = append(keep, quote.Items[i].ID)
	}

	stale := tx.Where("quote_id = ?", quote.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&document.QuoteItem{}).Error; err != nil {
		return err
	}

	if len(quote.Items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&quote.Items).Error
}

// nextDocumentCode scans the most recent code of a document type for the
// tenant in the current year and increments its sequence. The zero-padded
// middle segment keeps lexicographic and numeric order aligned.
func nextDocumentCode(ctx context.Context, db *gorm.DB, model any, tenantID uuid.UUID, prefix string) (string, error) {
	year := time.Now().Year()
	var codes []string
	err := db.WithContext(ctx).
		Model(model).
		Where("tenant_id = ? AND code LIKE ?", tenantID, document.CodePattern(prefix, year)).
		Order("code DESC").
		Limit(1).
		Pluck("code", &codes).Error
	if err != nil {
		return "", err
	}

	last := ""
	if len(codes) > 0 {
		last = codes[0]
	}
	return document.NextCode(prefix, last, year), nil
}

// Ensure GormQuoteRepository implements QuoteRepository
var _ document.QuoteRepository = (*GormQuoteRepository)(nil)
