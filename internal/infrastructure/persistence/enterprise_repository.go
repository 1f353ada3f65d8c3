package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormEnterpriseRepository implements EnterpriseRepository using GORM
type GormEnterpriseRepository struct {
	db *gorm.DB
}

// NewGormEnterpriseRepository creates a new GormEnterpriseRepository
func NewGormEnterpriseRepository(db *gorm.DB) *GormEnterpriseRepository {
	return &GormEnterpriseRepository{db: db}
}

// FindByID finds an enterprise by its ID
func (r *GormEnterpriseRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Enterprise, error) {
	var enterprise identity.Enterprise
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&enterprise).Error; err != nil {
		return nil, translateError(err)
	}
	return &enterprise, nil
}

// FindByTaxID finds an enterprise by its tax ID
func (r *GormEnterpriseRepository) FindByTaxID(ctx context.Context, taxID string) (*identity.Enterprise, error) {
	var enterprise identity.Enterprise
	if err := r.db.WithContext(ctx).
		Where("tax_id = ?", taxID).
		First(&enterprise).Error; err != nil {
		return nil, translateError(err)
	}
	return &enterprise, nil
}

// FindBySubdomain finds an enterprise by its subdomain
func (r *GormEnterpriseRepository) FindBySubdomain(ctx context.Context, subdomain string) (*identity.Enterprise, error) {
	var enterprise identity.Enterprise
	if err := r.db.WithContext(ctx).
		Where("subdomain = ?", subdomain).
		First(&enterprise).Error; err != nil {
		return nil, translateError(err)
	}
	return &enterprise, nil
}

// FindAll finds all enterprises matching the filter
func (r *GormEnterpriseRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.Enterprise, error) {
	var enterprises []identity.Enterprise
	query := r.db.WithContext(ctx).Model(&identity.Enterprise{})
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR subdomain LIKE ?", pattern, pattern)
	}
	query = applyFilter(query, filter, "name ASC")

	if err := query.Find(&enterprises).Error; err != nil {
		return nil, err
	}
	return enterprises, nil
}

// Save creates or updates an enterprise
func (r *GormEnterpriseRepository) Save(ctx context.Context, enterprise *identity.Enterprise) error {
	return translateError(r.db.WithContext(ctx).Save(enterprise).Error)
}

// ExistsBySubdomain checks if an enterprise with the given subdomain exists
func (r *GormEnterpriseRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&identity.Enterprise{}).
		Where("subdomain = ?", subdomain).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormEnterpriseRepository implements EnterpriseRepository
var _ identity.EnterpriseRepository = (*GormEnterpriseRepository)(nil)
