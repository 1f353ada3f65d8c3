package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProviderRepository implements ProviderRepository using GORM
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindByID finds a provider by its ID within a tenant
func (r *GormProviderRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&provider).Error; err != nil {
		return nil, translateError(err)
	}
	return &provider, nil
}

// FindByIDs finds multiple providers by their IDs within a tenant
func (r *GormProviderRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Provider, error) {
	if len(ids) == 0 {
		return []partner.Provider{}, nil
	}
	var providers []partner.Provider
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// FindByTaxID finds a provider by RUC within a tenant
func (r *GormProviderRepository) FindByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*partner.Provider, error) {
	var provider partner.Provider
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND tax_id = ?", tenantID, taxID).
		First(&provider).Error; err != nil {
		return nil, translateError(err)
	}
	return &provider, nil
}

// FindAll finds all providers of a tenant matching the filter
func (r *GormProviderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Provider, error) {
	var providers []partner.Provider
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR tax_id LIKE ?", pattern, pattern)
	}
	query = applyFilter(query, filter, "name ASC")

	if err := query.Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

// Save creates or updates a provider
func (r *GormProviderRepository) Save(ctx context.Context, provider *partner.Provider) error {
	return translateError(r.db.WithContext(ctx).Save(provider).Error)
}

// Ensure GormProviderRepository implements ProviderRepository
var _ partner.ProviderRepository = (*GormProviderRepository)(nil)
