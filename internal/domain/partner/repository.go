package partner

import (
	"context"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindByIDWithUbigeo finds a customer with its ubigeo row preloaded
	FindByIDWithUbigeo(ctx context.Context, tenantID, id uuid.UUID) (*Customer, error)

	// FindByTaxID finds a customer by fiscal identifier within a tenant
	FindByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*Customer, error)

	// FindAll finds all customers of a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Count counts customers of a tenant matching the filter
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

// ProviderRepository defines the interface for provider persistence
type ProviderRepository interface {
	// FindByID finds a provider by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Provider, error)

	// FindByIDs finds multiple providers by their IDs within a tenant
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Provider, error)

	// FindByTaxID finds a provider by RUC within a tenant
	FindByTaxID(ctx context.Context, tenantID uuid.UUID, taxID string) (*Provider, error)

	// FindAll finds all providers of a tenant matching the filter
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Provider, error)

	// Save creates or updates a provider
	Save(ctx context.Context, provider *Provider) error
}

// UbigeoRepository defines the interface for the geographic catalog
type UbigeoRepository interface {
	// FindByID finds a ubigeo row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ubigeo, error)

	// FindByCode finds a ubigeo row by its six-digit code
	FindByCode(ctx context.Context, code string) (*Ubigeo, error)

	// FindByDepartment finds all rows under a two-digit department prefix
	FindByDepartment(ctx context.Context, departmentCode string) ([]Ubigeo, error)

	// Save creates or updates a ubigeo row
	Save(ctx context.Context, ubigeo *Ubigeo) error
}
