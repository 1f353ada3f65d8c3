package importer

import (
	"time"

	"github.com/comercio/backend/internal/domain/bulk"
	"github.com/google/uuid"
)

// ProductRow is one already-parsed product record handed to the bulk
// pipeline. Validation tags mirror the single-create path.
type ProductRow struct {
	SKU             string `validate:"max=50"`
	Name            string `validate:"required,max=200"`
	Description     string `validate:"max=1000"`
	Unit            string `validate:"required,oneof=kg g lt ml un cl"`
	SourceType      string `validate:"required,oneof=purchased manufactured"`
	ProviderTaxID   string `validate:"omitempty,len=11,numeric"`
	BuyPrice        string `validate:"omitempty"`
	SellCashPrice   string `validate:"omitempty"`
	SellCreditPrice string `validate:"omitempty"`
}

// CustomerRow is one already-parsed customer record
type CustomerRow struct {
	Name      string `validate:"required,max=200"`
	TaxIDType string `validate:"required,oneof=ruc dni no_document"`
	TaxID     string `validate:"omitempty,numeric"`
	Phone     string `validate:"max=50"`
	Email     string `validate:"omitempty,email"`
	Address   string `validate:"max=500"`
}

// ProviderRow is one already-parsed provider record
type ProviderRow struct {
	TaxID       string `validate:"required,len=11,numeric"`
	Name        string `validate:"required,max=200"`
	ContactName string `validate:"max=100"`
	Phone       string `validate:"max=50"`
	Email       string `validate:"omitempty,email"`
	Address     string `validate:"max=500"`
}

// ImportResponse summarizes a finished bulk import job
type ImportResponse struct {
	ID             uuid.UUID       `json:"id"`
	ResourceType   string          `json:"resource_type"`
	FileName       string          `json:"file_name,omitempty"`
	Status         string          `json:"status"`
	StatusLabel    string          `json:"status_label"`
	TotalRows      int             `json:"total_rows"`
	SuccessfulRows int             `json:"successful_rows"`
	FailedRows     int             `json:"failed_rows"`
	RowErrors      []bulk.RowError `json:"row_errors,omitempty"`
	ErrorMessage   string          `json:"error_message,omitempty"`
	Duration       time.Duration   `json:"duration"`
}

// ToImportResponse converts an import job aggregate to a response DTO
func ToImportResponse(job *bulk.BulkImport) ImportResponse {
	return ImportResponse{
		ID:             job.ID,
		ResourceType:   string(job.ResourceType),
		FileName:       job.FileName,
		Status:         string(job.Status),
		StatusLabel:    job.Status.Label(),
		TotalRows:      job.TotalRows,
		SuccessfulRows: job.SuccessfulRows,
		FailedRows:     job.FailedRows,
		RowErrors:      job.RowErrors,
		ErrorMessage:   job.ErrorMessage,
		Duration:       job.Duration(),
	}
}
