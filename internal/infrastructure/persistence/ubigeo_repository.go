package persistence

import (
	"context"

	"github.com/comercio/backend/internal/domain/partner"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUbigeoRepository implements UbigeoRepository using GORM. The
// ubigeo catalog is shared across tenants so no tenant scoping applies.
type GormUbigeoRepository struct {
	db *gorm.DB
}

// NewGormUbigeoRepository creates a new GormUbigeoRepository
func NewGormUbigeoRepository(db *gorm.DB) *GormUbigeoRepository {
	return &GormUbigeoRepository{db: db}
}

// FindByID finds a ubigeo row by its ID
func (r *GormUbigeoRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Ubigeo, error) {
	var ubigeo partner.Ubigeo
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ubigeo).Error; err != nil {
		return nil, translateError(err)
	}
	return &ubigeo, nil
}

// FindByCode finds a ubigeo row by its six-digit code
func (r *GormUbigeoRepository) FindByCode(ctx context.Context, code string) (*partner.Ubigeo, error) {
	var ubigeo partner.Ubigeo
	if err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&ubigeo).Error; err != nil {
		return nil, translateError(err)
	}
	return &ubigeo, nil
}

// FindByDepartment finds all rows under a two-digit department prefix
func (r *GormUbigeoRepository) FindByDepartment(ctx context.Context, departmentCode string) ([]partner.Ubigeo, error) {
	var rows []partner.Ubigeo
	if err := r.db.WithContext(ctx).
		Where("code LIKE ?", departmentCode+"%").
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a ubigeo row
func (r *GormUbigeoRepository) Save(ctx context.Context, ubigeo *partner.Ubigeo) error {
	return translateError(r.db.WithContext(ctx).Save(ubigeo).Error)
}

// Ensure GormUbigeoRepository implements UbigeoRepository
var _ partner.UbigeoRepository = (*GormUbigeoRepository)(nil)
