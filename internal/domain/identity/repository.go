package identity

import (
	"context"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EnterpriseRepository defines the interface for enterprise persistence
type EnterpriseRepository interface {
	// FindByID finds an enterprise by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Enterprise, error)

	// FindByTaxID finds an enterprise by its tax ID
	FindByTaxID(ctx context.Context, taxID string) (*Enterprise, error)

	// FindBySubdomain finds an enterprise by its subdomain
	FindBySubdomain(ctx context.Context, subdomain string) (*Enterprise, error)

	// FindAll finds all enterprises matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Enterprise, error)

	// Save creates or updates an enterprise
	Save(ctx context.Context, enterprise *Enterprise) error

	// ExistsBySubdomain checks if an enterprise with the given subdomain exists
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
}

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// FindByID finds a user by its ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindByTenant finds all users of an enterprise
	FindByTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]User, error)

	// Save creates or updates a user
	Save(ctx context.Context, user *User) error
}
