package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/bulk"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBulkImportRepository implements BulkImportRepository using GORM
type GormBulkImportRepository struct {
	db *gorm.DB
}

// NewGormBulkImportRepository creates a new GormBulkImportRepository
func NewGormBulkImportRepository(db *gorm.DB) *GormBulkImportRepository {
	return &GormBulkImportRepository{db: db}
}

// FindByID finds an import job by ID for a tenant
func (r *GormBulkImportRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*bulk.BulkImport, error) {
	var job bulk.BulkImport
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&job).Error; err != nil {
		return nil, translateError(err)
	}
	return &job, nil
}

// FindRecent finds the most recent import jobs of a tenant
func (r *GormBulkImportRepository) FindRecent(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]bulk.BulkImport, error) {
	var jobs []bulk.BulkImport
	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindByResource finds import jobs for one resource type
func (r *GormBulkImportRepository) FindByResource(ctx context.Context, tenantID uuid.UUID, resourceType bulk.ImportResourceType, filter shared.Filter) ([]bulk.BulkImport, error) {
	var jobs []bulk.BulkImport
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND resource_type = ?", tenantID, resourceType)
	query = applyFilter(query, filter, "created_at DESC")

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Save creates or updates an import job
func (r *GormBulkImportRepository) Save(ctx context.Context, job *bulk.BulkImport) error {
	return translateError(r.db.WithContext(ctx).Save(job).Error)
}

// Ensure GormBulkImportRepository implements BulkImportRepository
var _ bulk.BulkImportRepository = (*GormBulkImportRepository)(nil)
