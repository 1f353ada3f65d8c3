package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/document"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by ID for a tenant, items included
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*document.PurchaseOrder, error) {
	var po document.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&po).Error; err != nil {
		return nil, translateError(err)
	}
	return &po, nil
}

// FindByCode finds a purchase order by code for a tenant
func (r *GormPurchaseOrderRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*document.PurchaseOrder, error) {
	var po document.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND code = ?", tenantID, code).
		First(&po).Error; err != nil {
		return nil, translateError(err)
	}
	return &po, nil
}

// FindAll finds all purchase orders of a tenant matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]document.PurchaseOrder, error) {
	var orders []document.PurchaseOrder
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByProvider finds purchase orders addressed to a provider
func (r *GormPurchaseOrderRepository) FindByProvider(ctx context.Context, tenantID, providerID uuid.UUID, filter shared.Filter) ([]document.PurchaseOrder, error) {
	var orders []document.PurchaseOrder
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND provider_id = ?", tenantID, providerID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySource finds all purchase orders generated from a source document
func (r *GormPurchaseOrderRepository) FindBySource(ctx context.Context, tenantID uuid.UUID, source document.SourceRef) ([]document.PurchaseOrder, error) {
	if !source.IsSet() {
		return []document.PurchaseOrder{}, nil
	}
	var orders []document.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND source_kind = ? AND source_id = ?", tenantID, source.Kind, source.ID).
		Order("code ASC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// ExistsBySource checks whether any purchase order was generated from the
// source document
func (r *GormPurchaseOrderRepository) ExistsBySource(ctx context.Context, tenantID uuid.UUID, source document.SourceRef) (bool, error) {
	if !source.IsSet() {
		return false, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&document.PurchaseOrder{}).
		Where("tenant_id = ? AND source_kind = ? AND source_id = ?", tenantID, source.Kind, source.ID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a purchase order and syncs its items
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *document.PurchaseOrder) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(po).Error; err != nil {
			return translateError(err)
		}
		return syncPurchaseOrderItems(tx, po)
	})
}

// SaveWithLock saves only if the row still holds expectedVersion. Callers
// bump the aggregate's version before saving so the write advances it.
func (r *GormPurchaseOrderRepository) SaveWithLock(ctx context.Context, po *document.PurchaseOrder, expectedVersion int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&document.PurchaseOrder{}).
			Where("id = ? AND tenant_id = ? AND version = ?", po.ID, po.TenantID, expectedVersion).
			Select("*").Omit("Items").
			Updates(po)
		if result.Error != nil {
			return translateError(result.Error)
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return syncPurchaseOrderItems(tx, po)
	})
}

// Delete removes a purchase order and its items
func (r *GormPurchaseOrderRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_order_id = ?", id).Delete(&document.PurchaseOrderItem{}).Error; err != nil {
			return err
		}
		result := tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&document.PurchaseOrder{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// NextCode generates the next OC code for the tenant in the current year
func (r *GormPurchaseOrderRepository) NextCode(ctx context.Context, tenantID uuid.UUID) (string, error) {
	return nextDocumentCode(ctx, r.db, &document.PurchaseOrder{}, tenantID, document.CodePrefixPurchaseOrder)
}

// LastNotesForCustomer returns the notes of the most recent non-cancelled
// purchase order linked to the customer
func (r *GormPurchaseOrderRepository) LastNotesForCustomer(ctx context.Context, tenantID, customerID uuid.UUID) (string, error) {
	var notes []string
	err := r.db.WithContext(ctx).
		Model(&document.PurchaseOrder{}).
		Where("tenant_id = ? AND customer_id = ? AND status <> ?", tenantID, customerID, document.PurchaseOrderStatusCancelled).
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

// Count counts purchase orders of a tenant matching the filter
func (r *GormPurchaseOrderRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&document.PurchaseOrder{}).
		Where("tenant_id = ?", tenantID)
	query = r.applySearch(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseOrderRepository) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR provider_name LIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "provider_id":
			query = query.Where("provider_id = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		}
	}
	return query
}

func syncPurchaseOrderItems(tx *gorm.DB, po *document.PurchaseOrder) error {
	keep := make([]uuid.UUID, 0, len(po.Items))
	for i := range po.Items {
		po.Items[i].PurchaseOrderID = po.ID
		keep = append(keep, po.Items[i].ID)
	}

	stale := tx.Where("purchase_order_id = ?", po.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&document.PurchaseOrderItem{}).Error; err != nil {
		return err
	}

	if len(po.Items) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&po.Items).Error
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ document.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
