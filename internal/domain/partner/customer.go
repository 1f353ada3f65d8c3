package partner

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxIDType represents the kind of fiscal identifier a customer carries
type TaxIDType string

const (
	TaxIDTypeRUC        TaxIDType = "ruc"         // 11-digit business registration
	TaxIDTypeDNI        TaxIDType = "dni"         // 8-digit personal identity document
	TaxIDTypeNoDocument TaxIDType = "no_document" // Walk-in customer without papers
)

// IsValid checks if the tax ID type is a known value
func (t TaxIDType) IsValid() bool {
	switch t {
	case TaxIDTypeRUC, TaxIDTypeDNI, TaxIDTypeNoDocument:
		return true
	}
	return false
}

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "active"
	CustomerStatusInactive CustomerStatus = "inactive"
)

// Customer represents a buyer in the partner context. Quotes and sales
// reference a customer; its ubigeo supplies the delivery address for
// purchase orders generated from a sale.
type Customer struct {
	shared.TenantAggregateRoot
	TaxIDType    TaxIDType       `gorm:"type:varchar(20);not null;default:'no_document'"`
	TaxID        string          `gorm:"type:varchar(20);index"`
	Name         string          `gorm:"type:varchar(200);not null"`
	ContactName  string          `gorm:"type:varchar(100)"`
	Phone        string          `gorm:"type:varchar(50);index"`
	Email        string          `gorm:"type:varchar(200);index"`
	Address      string          `gorm:"type:text"`
	UbigeoID     *uuid.UUID      `gorm:"type:uuid;index"`
	Ubigeo       *Ubigeo         `gorm:"foreignKey:UbigeoID"`
	CreditLimit  decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentTerms int             `gorm:"not null;default:0"` // Days of credit granted
	Status       CustomerStatus  `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a customer scoped to an enterprise
func NewCustomer(tenantID uuid.UUID, name string, taxIDType TaxIDType, taxID string) (*Customer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Customer name cannot be empty")
	}
	if !taxIDType.IsValid() {
		return nil, shared.NewValidationError("INVALID_TAX_ID_TYPE", "Unknown tax ID type")
	}
	if err := validateCustomerTaxID(taxIDType, taxID); err != nil {
		return nil, err
	}

	customer := &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TaxIDType:           taxIDType,
		TaxID:               taxID,
		Name:                name,
		CreditLimit:         decimal.Zero,
		Status:              CustomerStatusActive,
	}

	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))

	return customer, nil
}

// Update replaces the customer's descriptive information
func (c *Customer) Update(name, contactName, phone, email, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("INVALID_NAME", "Customer name cannot be empty")
	}

	c.Name = name
	c.ContactName = contactName
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.Touch()
	c.IncrementVersion()

	return nil
}

// AssignUbigeo links the customer to a geographic catalog row
func (c *Customer) AssignUbigeo(ubigeoID uuid.UUID) {
	c.UbigeoID = &ubigeoID
	c.Touch()
	c.IncrementVersion()
}

// SetCreditTerms grants a credit limit and payment window
func (c *Customer) SetCreditTerms(limit decimal.Decimal, paymentTermDays int) error {
	if limit.IsNegative() {
		return shared.NewValidationError("INVALID_CREDIT_LIMIT", "Credit limit cannot be negative")
	}
	if paymentTermDays < 0 {
		return shared.NewValidationError("INVALID_PAYMENT_TERMS", "Payment terms cannot be negative")
	}

	c.CreditLimit = limit
	c.PaymentTerms = paymentTermDays
	c.Touch()
	c.IncrementVersion()

	return nil
}

// Deactivate hides the customer from new document creation
func (c *Customer) Deactivate() {
	c.Status = CustomerStatusInactive
	c.Touch()
	c.IncrementVersion()
}

// IsActive reports whether new documents may reference the customer
func (c *Customer) IsActive() bool {
	return c.Status == CustomerStatusActive
}

// DeliveryAddress returns the address used on purchase orders generated for
// this customer: the ubigeo full path when present, the free-form address
// otherwise.
func (c *Customer) DeliveryAddress() string {
	if c.Ubigeo != nil {
		return c.Ubigeo.FullPath()
	}
	return c.Address
}

func validateCustomerTaxID(taxIDType TaxIDType, taxID string) error {
	switch taxIDType {
	case TaxIDTypeRUC:
		if len(taxID) != 11 {
			return shared.NewValidationError("INVALID_TAX_ID", "RUC must be 11 digits")
		}
	case TaxIDTypeDNI:
		if len(taxID) != 8 {
			return shared.NewValidationError("INVALID_TAX_ID", "DNI must be 8 digits")
		}
	case TaxIDTypeNoDocument:
		if taxID != "" {
			return shared.NewValidationError("INVALID_TAX_ID", "Tax ID must be empty for undocumented customers")
		}
		return nil
	}
	for _, r := range taxID {
		if r < '0' || r > '9' {
			return shared.NewValidationError("INVALID_TAX_ID", "Tax ID must contain only digits")
		}
	}
	return nil
}
