package partner

import (
	"context"
	"errors"

	"github.com/comercio/backend/internal/domain/partner"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProviderService handles provider business operations
type ProviderService struct {
	providerRepo partner.ProviderRepository
}

// NewProviderService creates a new ProviderService
func NewProviderService(providerRepo partner.ProviderRepository) *ProviderService {
	return &ProviderService{providerRepo: providerRepo}
}

// Create creates a new provider. The RUC must be unique per tenant.
func (s *ProviderService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProviderRequest) (*ProviderResponse, error) {
	_, err := s.providerRepo.FindByTaxID(ctx, tenantID, req.TaxID)
	if err == nil {
		return nil, shared.NewConsistencyError("DUPLICATE_TAX_ID", "A provider with this RUC already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	provider, err := partner.NewProvider(tenantID, req.TaxID, req.Name)
	if err != nil {
		return nil, err
	}
	provider.ContactName = req.ContactName
	provider.Phone = req.Phone
	provider.Email = req.Email
	provider.Address = req.Address
	provider.Notes = req.Notes

	if err := s.providerRepo.Save(ctx, provider); err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// GetByID retrieves a provider by ID
func (s *ProviderService) GetByID(ctx context.Context, tenantID, providerID uuid.UUID) (*ProviderResponse, error) {
	provider, err := s.providerRepo.FindByID(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}
	response := ToProviderResponse(provider)
	return &response, nil
}

// List retrieves providers of a tenant
func (s *ProviderService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ProviderResponse, error) {
	providers, err := s.providerRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]ProviderResponse, len(providers))
	for i := range providers {
		responses[i] = ToProviderResponse(&providers[i])
	}
	return responses, nil
}

// Update applies partial changes to a provider
func (s *ProviderService) Update(ctx context.Context, tenantID, providerID uuid.UUID, req UpdateProviderRequest) (*ProviderResponse, error) {
	provider, err := s.providerRepo.FindByID(ctx, tenantID, providerID)
	if err != nil {
		return nil, err
	}

	name := provider.Name
	contactName := provider.ContactName
	phone := provider.Phone
	email := provider.Email
	address := provider.Address
	if req.Name != nil {
		name = *req.Name
	}
	if req.ContactName != nil {
		contactName = *req.ContactName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.Address != nil {
		address = *req.Address
	}
	if err := provider.Update(name, contactName, phone, email, address); err != nil {
		return nil, err
	}
	if req.Notes != nil {
		provider.Notes = *req.Notes
	}

	if err := s.providerRepo.Save(ctx, provider); err != nil {
		return nil, err
	}

	response := ToProviderResponse(provider)
	return &response, nil
}

// Deactivate marks a provider as inactive
func (s *ProviderService) Deactivate(ctx context.Context, tenantID, providerID uuid.UUID) error {
	provider, err := s.providerRepo.FindByID(ctx, tenantID, providerID)
	if err != nil {
		return err
	}
	provider.Deactivate()
	return s.providerRepo.Save(ctx, provider)
}
