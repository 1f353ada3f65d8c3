package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale by ID for a tenant, items included
func (r *GormSaleRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*document.Sale, error) {
	var sale document.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&sale).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// FindByCode finds a sale by code for a tenant
func (r *GormSaleRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*document.Sale, error) {
	var sale document.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&sale).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// FindAll finds all sales of a tenant matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.Sale, error) {
	var sales []document.Sale
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindByCustomer finds sales for a customer
func (r *GormSaleRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]document.Sale, error) {
	var sales []document.Sale
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND customer_id = ?", tenantID, customerID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// FindBySource finds the sale generated from a given source document
func (r *GormSaleRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source document.SourceRef) (*document.Sale, error) {
	if !source.IsSet() {
		return nil, shared.ErrNotFound
	}
	var sale document.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND source_kind = ? AND source_id = ?", tenantID, source.Kind, source.ID).
		First(&sale).Error; err != nil {
		return nil, translateError(err)
	}
	return &sale, nil
}

// Save creates or updates a sale and syncs its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *document.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(sale).Error; err != nil {
			return translateError(err)
		}
		return syncSaleItems(tx, sale)
	})
}

// SaveWithLock saves only if the row still holds expectedVersion. Callers
// bump the aggregate's version before saving so the write advances it.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *document.Sale, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&document.Sale{}).
			Where("id = ? AND tenant_id = ? AND version = ?", sale.ID, sale.TenantID, expectedVersion).
			Select("*").Omit("Items").
			Updates(sale)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return syncSaleItems(tx, sale)
	})
}

// Delete removes a sale and its items
func (r *GormSaleRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&document.SaleItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&document.Sale{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextCode generates the next VTA code for the tenant in the current year
func (r *GormSaleRepository) NextCode(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentCode(ctx, r.db, &document.Sale{}, tenantID, document.CodePrefixSale)
}

// Count counts sales of a tenant matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&document.Sale{}).
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSaleRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func syncSaleItems(tx *gorm.DB, sale *document.Sale) error {
	keep := make([]uuid.UUID, 0, len(sale.Items))
	for i := range sale.Items {
		sale.Items[i].SaleID = sale.ID
		keep = append(keep, sale.Items[i].ID)
	}

	stale := tx.Where("sale_id = ?", sale.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&document.SaleItem{}).Error; err != nil {
		return err
	}

	if len(sale.Items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&sale.Items).Error
}

// Ensure GormSaleRepository implements SaleRepository
var _ document.SaleRepository = (*GormSaleRepository)(nil)
