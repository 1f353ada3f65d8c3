package partner

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProviderStatus represents the status of a provider
type ProviderStatus string

const (
	ProviderStatusActive   ProviderStatus = "active"
	ProviderStatusInactive ProviderStatus = "inactive"
)

// Provider represents a supplier of purchased products. Purchase orders are
// always addressed to exactly one provider; sale items are partitioned by
// their product's provider when orders are generated.
type Provider struct {
	shared.TenantAggregateRoot
	TaxID       string         `gorm:"type:varchar(20);not null;index"`
	Name        string         `gorm:"type:varchar(200);not null"`
	ContactName string         `gorm:"type:varchar(100)"`
	Phone       string         `gorm:"type:varchar(50)"`
	Email       string         `gorm:"type:varchar(200)"`
	Address     string         `gorm:"type:text"`
	Status      ProviderStatus `gorm:"type:varchar(20);not null;default:'active'"`
	Notes       string         `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Provider) TableName() string {
	return "providers"
}

// NewProvider creates a provider scoped to an enterprise
func NewProvider(tenantID uuid.UUID, taxID, name string) (*Provider, error) {
	taxID = strings.TrimSpace(taxID)
	if len(taxID) != 11 {
		return nil, shared.NewValidationError("INVALID_TAX_ID", "Provider RUC must be 11 digits")
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return nil, shared.NewValidationError("INVALID_TAX_ID", "Provider RUC must contain only digits")
		}
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Provider name cannot be empty")
	}

	provider := &Provider{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TaxID:               taxID,
		Name:                name,
		Status:              ProviderStatusActive,
	}

	provider.AddDomainEvent(NewProviderCreatedEvent(provider))

	return provider, nil
}

// Update replaces the provider's descriptive information
func (p *Provider) Update(name, contactName, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Provider name cannot be empty")
	}

	p.Name = name
	p.ContactName = contactName
	p.Phone = phone
	p.Email = email
	p.Address = address
	p.Touch()
	p.IncrementVersion()

	return nil
}

// Deactivate hides the provider from new purchase orders
func (p *Provider) Deactivate() {
	p.Status = ProviderStatusInactive
	p.Touch()
	p.IncrementVersion()
}

// IsActive reports whether new purchase orders may target the provider
func (p *Provider) IsActive() bool {
	return p.Status == ProviderStatusActive
}
