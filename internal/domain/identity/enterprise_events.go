package identity

import (
	"github.com/comercio/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeEnterprise = "Enterprise"

// Event type constants
const (
	EventTypeEnterpriseRegistered      = "EnterpriseRegistered"
	EventTypeEnterpriseStatusChanged   = "EnterpriseStatusChanged"
	EventTypeEnterpriseSettingsChanged = "EnterpriseSettingsChanged"
)

// EnterpriseRegisteredEvent is published when a new enterprise registers
type EnterpriseRegisteredEvent struct {
	shared.BaseDomainEvent
	TaxID        string `json:"tax_id"`
	SocialReason string `json:"social_reason"`
	Subdomain    string `json:"subdomain"`
}

// NewEnterpriseRegisteredEvent creates a new EnterpriseRegisteredEvent
func NewEnterpriseRegisteredEvent(e *Enterprise) *EnterpriseRegisteredEvent {
	return &EnterpriseRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnterpriseRegistered, AggregateTypeEnterprise, e.ID, e.ID),
		TaxID:           e.TaxID,
		SocialReason:    e.SocialReason,
		Subdomain:       e.Subdomain,
	}
}

// EnterpriseStatusChangedEvent is published when an enterprise's status changes
type EnterpriseStatusChangedEvent struct {
	shared.BaseDomainEvent
	OldStatus EnterpriseStatus `json:"old_status"`
	NewStatus EnterpriseStatus `json:"new_status"`
}

// NewEnterpriseStatusChangedEvent creates a new EnterpriseStatusChangedEvent
func NewEnterpriseStatusChangedEvent(e *Enterprise, oldStatus, newStatus EnterpriseStatus) *EnterpriseStatusChangedEvent {
	return &EnterpriseStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnterpriseStatusChanged, AggregateTypeEnterprise, e.ID, e.ID),
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// EnterpriseSettingsChangedEvent is published when operational toggles change
type EnterpriseSettingsChangedEvent struct {
	shared.BaseDomainEvent
	OldSettings EnterpriseSettings `json:"old_settings"`
	NewSettings EnterpriseSettings `json:"new_settings"`
}

// NewEnterpriseSettingsChangedEvent creates a new EnterpriseSettingsChangedEvent
func NewEnterpriseSettingsChangedEvent(e *Enterprise, oldSettings, newSettings EnterpriseSettings) *EnterpriseSettingsChangedEvent {
	return &EnterpriseSettingsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnterpriseSettingsChanged, AggregateTypeEnterprise, e.ID, e.ID),
		OldSettings:     oldSettings,
		NewSettings:     newSettings,
	}
}
