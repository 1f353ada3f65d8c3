package bulk

import (
	"time"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ImportResourceType represents the kind of records a bulk import creates
type ImportResourceType string

const (
	ImportResourceProducts  ImportResourceType = "products"
	ImportResourceCustomers ImportResourceType = "customers"
	ImportResourceProviders ImportResourceType = "providers"
)

// IsValid checks if the resource type is a known value
func (r ImportResourceType) IsValid() bool {
	switch r {
	case ImportResourceProducts, ImportResourceCustomers, ImportResourceProviders:
		return true
	}
	return false
}

// ImportStatus represents the status of a bulk import job
type ImportStatus string

const (
	ImportStatusPending    ImportStatus = "pending"
	ImportStatusProcessing ImportStatus = "processing"
	ImportStatusCompleted  ImportStatus = "completed"
	ImportStatusFailed     ImportStatus = "failed"
)

// IsValid checks if the status is a known value
func (s ImportStatus) IsValid() bool {
	switch s {
	case ImportStatusPending, ImportStatusProcessing, ImportStatusCompleted, ImportStatusFailed:
		return true
	}
	return false
}

// IsTerminal returns true if this is a terminal state
func (s ImportStatus) IsTerminal() bool {
	return s == ImportStatusCompleted || s == ImportStatusFailed
}

// Label returns the presentation label of the status
func (s ImportStatus) Label() string {
	switch s {
	case ImportStatusPending:
		return "Pendiente"
	case ImportStatusProcessing:
		return "Procesando"
	case ImportStatusCompleted:
		return "Completado"
	case ImportStatusFailed:
		return "Fallido"
	}
	return string(s)
}

// RowError records why one input row was rejected
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkImport tracks one background import job: which resource it loads, who
// started it, and the per-row outcome once processed.
type BulkImport struct {
	shared.TenantAggregateRoot
	ResourceType   ImportResourceType `gorm:"type:varchar(20);not null;index"`
	FileName       string             `gorm:"type:varchar(255)"`
	Status         ImportStatus       `gorm:"type:varchar(20);not null;default:'pending'"`
	TotalRows      int                `gorm:"not null;default:0"`
	SuccessfulRows int                `gorm:"not null;default:0"`
	FailedRows     int                `gorm:"not null;default:0"`
	RowErrors      []RowError         `gorm:"serializer:json"`
	ErrorMessage   string             `gorm:"type:text"`
	StartedAt      *time.Time
	CompletedAt    *time.Time
}

// TableName returns the table name for GORM
func (BulkImport) TableName() string {
	return "bulk_imports"
}

// NewBulkImport creates a pending import job
func NewBulkImport(tenantID, createdBy uuid.UUID, resourceType ImportResourceType, fileName string) (*BulkImport, error) {
	if !resourceType.IsValid() {
		return nil, shared.NewValidationError("INVALID_RESOURCE_TYPE", "Unknown import resource type")
	}

	return &BulkImport{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, createdBy),
		ResourceType:        resourceType,
		FileName:            fileName,
		Status:              ImportStatusPending,
	}, nil
}

// MarkProcessing transitions the job to processing
func (b *BulkImport) MarkProcessing(totalRows int) error {
	if b.Status != ImportStatusPending {
		return shared.NewPreconditionError("INVALID_STATE", "Only pending imports can start processing")
	}
	if totalRows < 0 {
		return shared.NewValidationError("INVALID_ROWS", "Total rows cannot be negative")
	}

	now := time.Now()
	b.Status = ImportStatusProcessing
	b.TotalRows = totalRows
	b.StartedAt = &now
	b.Touch()
	b.IncrementVersion()

	return nil
}

// MarkCompleted records the row counters and finishes the job. A completed
// job may still carry row errors; completed means the batch ran to the end.
func (b *BulkImport) MarkCompleted(successful, failed int, rowErrors []RowError) error {
	if b.Status != ImportStatusProcessing {
		return shared.NewPreconditionError("INVALID_STATE", "Only processing imports can complete")
	}

	now := time.Now()
	b.Status = ImportStatusCompleted
	b.SuccessfulRows = successful
	b.FailedRows = failed
	b.RowErrors = rowErrors
	b.CompletedAt = &now
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBulkImportFinishedEvent(b))

	return nil
}

// MarkFailed aborts the job with a batch-level error
func (b *BulkImport) MarkFailed(message string) error {
	if b.Status.IsTerminal() {
		return shared.NewPreconditionError("INVALID_STATE", "Import already finished")
	}

	now := time.Now()
	b.Status = ImportStatusFailed
	b.ErrorMessage = message
	b.CompletedAt = &now
	b.Touch()
	b.IncrementVersion()

	b.AddDomainEvent(NewBulkImportFinishedEvent(b))

	return nil
}

// Duration returns the processing time, zero until the job finishes
func (b *BulkImport) Duration() time.Duration {
	if b.StartedAt == nil || b.CompletedAt == nil {
		return 0
	}
	return b.CompletedAt.Sub(*b.StartedAt)
}
