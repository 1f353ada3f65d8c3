package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/comercio/backend/internal/domain/bulk"
	"github.com/comercio/backend/internal/domain/catalog"
	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Notifier delivers a short message to a user once a job finishes.
// Delivery is fire-and-forget; failures are not the import's problem.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, message string) error
}

// ImportService runs bulk creation over already-parsed rows. Spreadsheet
// parsing happens upstream; this service validates each row, feeds the
// ordinary creation paths, and records the per-row outcome on the job.
type ImportService struct {
	importRepo   bulk.BulkImportRepository
	productRepo  catalog.ProductRepository
	customerRepo partner.CustomerRepository
	providerRepo partner.ProviderRepository
	validate     *validator.Validate
	notifier     Notifier
}

// NewImportService creates a new ImportService
func NewImportService(
	importRepo bulk.BulkImportRepository,
	productRepo catalog.ProductRepository,
	customerRepo partner.CustomerRepository,
	providerRepo partner.ProviderRepository,
) *ImportService {
	return &ImportService{
		importRepo:   importRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		providerRepo: providerRepo,
		validate:     validator.New(),
	}
}

// SetNotifier sets the completion notification sink
func (s *ImportService) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// GetJob retrieves an import job by ID
func (s *ImportService) GetJob(ctx context.Context, tenantID, jobID uuid.UUID) (*ImportResponse, error) {
	job, err := s.importRepo.FindByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	response := ToImportResponse(job)
	return &response, nil
}

// ListRecent retrieves the most recent import jobs of a tenant
func (s *ImportService) ListRecent(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ImportResponse, error) {
	jobs, err := s.importRepo.FindRecent(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ImportResponse, len(jobs))
	for i := range jobs {
		responses[i] = ToImportResponse(&jobs[i])
	}
	return responses, nil
}

// ImportProducts creates products from parsed rows. Rows referencing a
// provider resolve it by RUC within the tenant.
func (s *ImportService) ImportProducts(ctx context.Context, tenantID, createdBy uuid.UUID, fileName string, rows []ProductRow) (*ImportResponse, error) {
	return s.run(ctx, tenantID, createdBy, bulk.ImportResourceProducts, fileName, len(rows), func(ctx context.Context) []bulk.RowError {
		var rowErrors []bulk.RowError
		for i, row := range rows {
			if err := s.importProduct(ctx, tenantID, row); err != nil {
				rowErrors = append(rowErrors, bulk.RowError{Row: i + 1, Message: err.Error()})
			}
		}
		return rowErrors
	})
}

// ImportCustomers creates customers from parsed rows
func (s *ImportService) ImportCustomers(ctx context.Context, tenantID, createdBy uuid.UUID, fileName string, rows []CustomerRow) (*ImportResponse, error) {
	return s.run(ctx, tenantID, createdBy, bulk.ImportResourceCustomers, fileName, len(rows), func(ctx context.Context) []bulk.RowError {
		var rowErrors []bulk.RowError
		for i, row := range rows {
			if err := s.importCustomer(ctx, tenantID, row); err != nil {
				rowErrors = append(rowErrors, bulk.RowError{Row: i + 1, Message: err.Error()})
			}
		}
		return rowErrors
	})
}

// ImportProviders creates providers from parsed rows
func (s *ImportService) ImportProviders(ctx context.Context, tenantID, createdBy uuid.UUID, fileName string, rows []ProviderRow) (*ImportResponse, error) {
	return s.run(ctx, tenantID, createdBy, bulk.ImportResourceProviders, fileName, len(rows), func(ctx context.Context) []bulk.RowError {
		var rowErrors []bulk.RowError
		for i, row := range rows {
			if err := s.importProvider(ctx, tenantID, row); err != nil {
				rowErrors = append(rowErrors, bulk.RowError{Row: i + 1, Message: err.Error()})
			}
		}
		return rowErrors
	})
}

// run drives one job through its lifecycle and notifies the creator at the
// end. The job row survives even when every data row fails; completed with
// row errors and failed are different outcomes.
func (s *ImportService) run(ctx context.Context, tenantID, createdBy uuid.UUID, resource bulk.ImportResourceType, fileName string, totalRows int, process func(context.Context) []bulk.RowError) (*ImportResponse, error) {
	job, err := bulk.NewBulkImport(tenantID, createdBy, resource, fileName)
	if err != nil {
		return nil, err
	}
	if err := s.importRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	if err := job.MarkProcessing(totalRows); err != nil {
		return nil, err
	}
	if err := s.importRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	rowErrors := process(ctx)

	successful := totalRows - len(rowErrors)
	if err := job.MarkCompleted(successful, len(rowErrors), rowErrors); err != nil {
		return nil, err
	}
	if err := s.importRepo.Save(ctx, job); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		message := fmt.Sprintf("Importación de %s finalizada: %d exitosas, %d fallidas",
			resource, successful, len(rowErrors))
		_ = s.notifier.Notify(ctx, createdBy, message)
	}

	response := ToImportResponse(job)
	return &response, nil
}

func (s *ImportService) importProduct(ctx context.Context, tenantID uuid.UUID, row ProductRow) error {
	if err := s.validate.Struct(row); err != nil {
		return err
	}

	var providerID *uuid.UUID
	if row.ProviderTaxID != "" {
		provider, err := s.providerRepo.FindByTaxID(ctx, tenantID, row.ProviderTaxID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewConsistencyError("PROVIDER_NOT_FOUND", fmt.Sprintf("No provider with RUC %s", row.ProviderTaxID))
			}
			return err
		}
		providerID = &provider.ID
	}

	if row.SKU != "" {
		if _, err := s.productRepo.FindBySKU(ctx, tenantID, row.SKU); err == nil {
			return shared.NewConsistencyError("DUPLICATE_SKU", fmt.Sprintf("A product with SKU %s already exists", row.SKU))
		} else if !errors.Is(err, shared.ErrNotFound) {
			return err
		}
	}

	product, err := catalog.NewProduct(tenantID, row.Name, catalog.ProductUnit(row.Unit), catalog.ProductSourceType(row.SourceType), providerID)
	if err != nil {
		return err
	}
	product.SKU = row.SKU
	product.Description = row.Description

	buy, err := parsePrice(row.BuyPrice)
	if err != nil {
		return err
	}
	sellCash, err := parsePrice(row.SellCashPrice)
	if err != nil {
		return err
	}
	sellCredit, err := parsePrice(row.SellCreditPrice)
	if err != nil {
		return err
	}
	if err := product.SetPrices(buy, sellCash, sellCredit); err != nil {
		return err
	}

	return s.productRepo.Save(ctx, product)
}

func (s *ImportService) importCustomer(ctx context.Context, tenantID uuid.UUID, row CustomerRow) error {
	if err := s.validate.Struct(row); err != nil {
		return err
	}

	customer, err := partner.NewCustomer(tenantID, row.Name, partner.TaxIDType(row.TaxIDType), row.TaxID)
	if err != nil {
		return err
	}
	customer.Phone = row.Phone
	customer.Email = row.Email
	customer.Address = row.Address

	return s.customerRepo.Save(ctx, customer)
}

func (s *ImportService) importProvider(ctx context.Context, tenantID uuid.UUID, row ProviderRow) error {
	if err := s.validate.Struct(row); err != nil {
		return err
	}

	if _, err := s.providerRepo.FindByTaxID(ctx, tenantID, row.TaxID); err == nil {
		return shared.NewConsistencyError("DUPLICATE_TAX_ID", fmt.Sprintf("A provider with RUC %s already exists", row.TaxID))
	} else if !errors.Is(err, shared.ErrNotFound) {
		return err
	}

	provider, err := partner.NewProvider(tenantID, row.TaxID, row.Name)
	if err != nil {
		return err
	}
	provider.ContactName = row.ContactName
	provider.Phone = row.Phone
	provider.Email = row.Email
	provider.Address = row.Address

	return s.providerRepo.Save(ctx, provider)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewValidationError("INVALID_PRICE", fmt.Sprintf("%q is not a valid price", raw))
	}
	return price, nil
}
