package bulk

import (
	"github.com/comercio/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeBulkImport = "BulkImport"

// Event type constant
const EventTypeBulkImportFinished = "BulkImportFinished"

// BulkImportFinishedEvent is published when an import job reaches a terminal
// status. The notifier relays it to the user who launched the job.
type BulkImportFinishedEvent struct {
	shared.BaseDomainEvent
	ResourceType   ImportResourceType `json:"resource_type"`
	Status         ImportStatus       `json:"status"`
	SuccessfulRows int                `json:"successful_rows"`
	FailedRows     int                `json:"failed_rows"`
}

// NewBulkImportFinishedEvent creates a new BulkImportFinishedEvent
func NewBulkImportFinishedEvent(b *BulkImport) *BulkImportFinishedEvent {
	return &BulkImportFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeBulkImportFinished, AggregateTypeBulkImport, b.ID, b.TenantID),
		ResourceType:    b.ResourceType,
		Status:          b.Status,
		SuccessfulRows:  b.SuccessfulRows,
		FailedRows:      b.FailedRows,
	}
}
