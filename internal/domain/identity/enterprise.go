package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/comercio/backend/internal/domain/shared"
)

// EnterpriseStatus represents the lifecycle status of an enterprise
type EnterpriseStatus string

const (
	EnterpriseStatusActivating EnterpriseStatus = "activating" // Registered, onboarding not finished
	EnterpriseStatusActive     EnterpriseStatus = "active"
	EnterpriseStatusInactive   EnterpriseStatus = "inactive"
)

// IsValid checks if the status is a known value
func (s EnterpriseStatus) IsValid() bool {
	switch s {
	case EnterpriseStatusActivating, EnterpriseStatusActive, EnterpriseStatusInactive:
		return true
	}
	return false
}

func (s EnterpriseStatus) String() string { return string(s) }

// EnterpriseSettings holds the operational toggles of an enterprise.
// UseStock controls whether sale confirmation and purchase reception move
// product stock; DropshippingEnabled allows generating purchase orders
// straight from a confirmed sale.
type EnterpriseSettings struct {
	UseStock            bool `json:"use_stock"`
	DropshippingEnabled bool `json:"dropshipping_enabled"`
}

// DefaultEnterpriseSettings returns the settings applied to a new
// enterprise: both toggles off until the owner opts in.
func DefaultEnterpriseSettings() EnterpriseSettings {
	return EnterpriseSettings{}
}

var subdomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,48}[a-z0-9]$`)

// Enterprise is the tenant of the system. Every document, product, and
// partner belongs to exactly one enterprise; its ID is the TenantID carried
// by every other aggregate.
type Enterprise struct {
	shared.BaseAggregateRoot
	TaxID         string             `gorm:"type:varchar(20);not null;uniqueIndex"`
	SocialReason  string             `gorm:"type:varchar(200);not null"`
	ComercialName string             `gorm:"type:varchar(200)"`
	Subdomain     string             `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status        EnterpriseStatus   `gorm:"type:varchar(20);not null;default:'activating'"`
	Phone         string             `gorm:"type:varchar(50)"`
	Address       string             `gorm:"type:text"`
	Settings      EnterpriseSettings `gorm:"embedded;embeddedPrefix:settings_"`
	ActivatedAt   *time.Time
}

// TableName returns the table name for GORM
func (Enterprise) TableName() string {
	return "enterprises"
}

// NewEnterprise registers a new enterprise in activating status
func NewEnterprise(taxID, socialReason, subdomain string) (*Enterprise, error) {
	if err := validateTaxID(taxID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(socialReason) == "" {
		return nil, shared.NewValidationError("INVALID_SOCIAL_REASON", "Social reason cannot be empty")
	}
	subdomain = strings.ToLower(strings.TrimSpace(subdomain))
	if !subdomainPattern.MatchString(subdomain) {
		return nil, shared.NewValidationError("INVALID_SUBDOMAIN", "Subdomain must be 3-50 lowercase alphanumeric characters")
	}

	enterprise := &Enterprise{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		TaxID:             taxID,
		SocialReason:      socialReason,
		Subdomain:         subdomain,
		Status:            EnterpriseStatusActivating,
		Settings:          DefaultEnterpriseSettings(),
	}

	enterprise.AddDomainEvent(NewEnterpriseRegisteredEvent(enterprise))

	return enterprise, nil
}

// Activate completes onboarding and enables the enterprise
func (e *Enterprise) Activate() error {
	if e.Status == EnterpriseStatusActive {
		return shared.NewPreconditionError("ALREADY_ACTIVE", "Enterprise is already active")
	}

	oldStatus := e.Status
	now := time.Now()
	e.Status = EnterpriseStatusActive
	e.ActivatedAt = &now
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEnterpriseStatusChangedEvent(e, oldStatus, e.Status))

	return nil
}

// Deactivate disables the enterprise. Its data stays intact but no new
// documents can be created.
func (e *Enterprise) Deactivate() error {
	if e.Status == EnterpriseStatusInactive {
		return shared.NewPreconditionError("ALREADY_INACTIVE", "Enterprise is already inactive")
	}

	oldStatus := e.Status
	e.Status = EnterpriseStatusInactive
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEnterpriseStatusChangedEvent(e, oldStatus, e.Status))

	return nil
}

// IsActive reports whether the enterprise can operate
func (e *Enterprise) IsActive() bool {
	return e.Status == EnterpriseStatusActive
}

// UpdateProfile updates the enterprise's descriptive information
func (e *Enterprise) UpdateProfile(comercialName, phone, address string) {
	e.ComercialName = comercialName
	e.Phone = phone
	e.Address = address
	e.Touch()
	e.IncrementVersion()
}

// UpdateSettings replaces the operational toggles
func (e *Enterprise) UpdateSettings(settings EnterpriseSettings) {
	old := e.Settings
	e.Settings = settings
	e.Touch()
	e.IncrementVersion()

	e.AddDomainEvent(NewEnterpriseSettingsChangedEvent(e, old, settings))
}

func validateTaxID(taxID string) error {
	taxID = strings.TrimSpace(taxID)
	if len(taxID) != 11 {
		return shared.NewValidationError("INVALID_TAX_ID", "Tax ID must be 11 digits")
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return shared.NewValidationError("INVALID_TAX_ID", "Tax ID must contain only digits")
		}
	}
	return nil
}
