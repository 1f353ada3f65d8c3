package bulk

import (
	"context"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BulkImportRepository defines the interface for import job persistence
type BulkImportRepository interface {
	// FindByID finds an import job by ID for a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*BulkImport, error)

	// FindRecent finds the most recent import jobs of a tenant
	FindRecent(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]BulkImport, error)

	// FindByResource finds import jobs for one resource type
	FindByResource(ctx context.Context, tenantID uuid.UUID, resourceType ImportResourceType, filter shared.Filter) ([]BulkImport, error)

	// Save creates or updates an import job
	Save(ctx context.Context, job *BulkImport) error
}
