package identity

import (
	"context"
	"errors"

	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// EnterpriseService handles tenant registration and settings
type EnterpriseService struct {
	enterpriseRepo identity.EnterpriseRepository
	eventPublisher shared.EventPublisher
}

// NewEnterpriseService creates a new EnterpriseService
func NewEnterpriseService(enterpriseRepo identity.EnterpriseRepository) *EnterpriseService {
	return &EnterpriseService{enterpriseRepo: enterpriseRepo}
}

// SetEventPublisher sets the publisher used to dispatch domain events
func (s *EnterpriseService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Register creates a new enterprise in activating status. Tax ID and
// subdomain must both be unused.
func (s *EnterpriseService) Register(ctx context.Context, req RegisterEnterpriseRequest) (*EnterpriseResponse, error) {
	_, err := s.enterpriseRepo.FindByTaxID(ctx, req.TaxID)
	if err == nil {
		return nil, shared.NewConsistencyError("DUPLICATE_TAX_ID", "An enterprise with this RUC already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	taken, err := s.enterpriseRepo.ExistsBySubdomain(ctx, req.Subdomain)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewConsistencyError("DUPLICATE_SUBDOMAIN", "Subdomain is already taken")
	}

	enterprise, err := identity.NewEnterprise(req.TaxID, req.SocialReason, req.Subdomain)
	if err != nil {
		return nil, err
	}
	enterprise.UpdateProfile(req.ComercialName, req.Phone, req.Address)

	if err := s.enterpriseRepo.Save(ctx, enterprise); err != nil {
		return nil, err
	}

	s.publish(ctx, enterprise)
	response := ToEnterpriseResponse(enterprise)
	return &response, nil
}

// GetByID retrieves an enterprise by ID
func (s *EnterpriseService) GetByID(ctx context.Context, enterpriseID uuid.UUID) (*EnterpriseResponse, error) {
	enterprise, err := s.enterpriseRepo.FindByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}
	response := ToEnterpriseResponse(enterprise)
	return &response, nil
}

// GetBySubdomain resolves the tenant serving a subdomain
func (s *EnterpriseService) GetBySubdomain(ctx context.Context, subdomain string) (*EnterpriseResponse, error) {
	enterprise, err := s.enterpriseRepo.FindBySubdomain(ctx, subdomain)
	if err != nil {
		return nil, err
	}
	response := ToEnterpriseResponse(enterprise)
	return &response, nil
}

// Activate completes onboarding
func (s *EnterpriseService) Activate(ctx context.Context, enterpriseID uuid.UUID) error {
	enterprise, err := s.enterpriseRepo.FindByID(ctx, enterpriseID)
	if err != nil {
		return err
	}
	if err := enterprise.Activate(); err != nil {
		return err
	}
	if err := s.enterpriseRepo.Save(ctx, enterprise); err != nil {
		return err
	}
	s.publish(ctx, enterprise)
	return nil
}

// Deactivate suspends the enterprise
func (s *EnterpriseService) Deactivate(ctx context.Context, enterpriseID uuid.UUID) error {
	enterprise, err := s.enterpriseRepo.FindByID(ctx, enterpriseID)
	if err != nil {
		return err
	}
	if err := enterprise.Deactivate(); err != nil {
		return err
	}
	if err := s.enterpriseRepo.Save(ctx, enterprise); err != nil {
		return err
	}
	s.publish(ctx, enterprise)
	return nil
}

// UpdateProfile applies partial profile changes
func (s *EnterpriseService) UpdateProfile(ctx context.Context, enterpriseID uuid.UUID, req UpdateEnterpriseRequest) (*EnterpriseResponse, error) {
	enterprise, err := s.enterpriseRepo.FindByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	comercialName := enterprise.ComercialName
	phone := enterprise.Phone
	address := enterprise.Address
	if req.ComercialName != nil {
		comercialName = *req.ComercialName
	}
	if req.Phone != nil {
		phone = *req.Phone
	}
	if req.Address != nil {
		address = *req.Address
	}
	enterprise.UpdateProfile(comercialName, phone, address)

	if err := s.enterpriseRepo.Save(ctx, enterprise); err != nil {
		return nil, err
	}

	response := ToEnterpriseResponse(enterprise)
	return &response, nil
}

// UpdateSettings replaces the tenant's behavior toggles. Stock tracking and
// dropshipping take effect on the next document operation.
func (s *EnterpriseService) UpdateSettings(ctx context.Context, enterpriseID uuid.UUID, req UpdateSettingsRequest) (*EnterpriseResponse, error) {
	enterprise, err := s.enterpriseRepo.FindByID(ctx, enterpriseID)
	if err != nil {
		return nil, err
	}

	enterprise.UpdateSettings(identity.EnterpriseSettings{
		UseStock:            req.UseStock,
		DropshippingEnabled: req.DropshippingEnabled,
	})

	if err := s.enterpriseRepo.Save(ctx, enterprise); err != nil {
		return nil, err
	}

	s.publish(ctx, enterprise)
	response := ToEnterpriseResponse(enterprise)
	return &response, nil
}

func (s *EnterpriseService) publish(ctx context.Context, enterprise *identity.Enterprise) {
	if s.eventPublisher == nil {
		enterprise.ClearDomainEvents()
		return
	}
	events := enterprise.DomainEvents()
	enterprise.ClearDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
	}
}
