package partner

import (
	"github.com/comercio/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCustomer = "Customer"
	AggregateTypeProvider = "Provider"
)

// Event type constants
const (
	EventTypeCustomerCreated = "CustomerCreated"
	EventTypeProviderCreated = "ProviderCreated"
)

// CustomerCreatedEvent is published when a new customer is created
type CustomerCreatedEvent struct {
	shared.BaseDomainEvent
	Name      string    `json:"name"`
	TaxIDType TaxIDType `json:"tax_id_type"`
	TaxID     string    `json:"tax_id,omitempty"`
}

// NewCustomerCreatedEvent creates a new CustomerCreatedEvent
func NewCustomerCreatedEvent(c *Customer) *CustomerCreatedEvent {
	return &CustomerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCustomerCreated, AggregateTypeCustomer, c.ID, c.TenantID),
		Name:            c.Name,
		TaxIDType:       c.TaxIDType,
		TaxID:           c.TaxID,
	}
}

// ProviderCreatedEvent is published when a new provider is created
type ProviderCreatedEvent struct {
	shared.BaseDomainEvent
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
}

// NewProviderCreatedEvent creates a new ProviderCreatedEvent
func NewProviderCreatedEvent(p *Provider) *ProviderCreatedEvent {
	return &ProviderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProviderCreated, AggregateTypeProvider, p.ID, p.TenantID),
		Name:            p.Name,
		TaxID:           p.TaxID,
	}
}
