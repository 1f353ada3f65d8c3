package partner

import (
	"time"

	"github.com/comercio/backend/internal/domain/partner"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest represents a request to create a customer
type CreateCustomerRequest struct {
	Name         string           `json:"name"`
	TaxIDType    string           `json:"tax_id_type"`
	TaxID        string           `json:"tax_id"`
	ContactName  string           `json:"contact_name"`
	Phone        string           `json:"phone"`
	Email        string           `json:"email"`
	Address      string           `json:"address"`
	UbigeoID     *uuid.UUID       `json:"ubigeo_id"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	PaymentTerms *int             `json:"payment_terms"`
	Notes        string           `json:"notes"`
}

// UpdateCustomerRequest represents a partial customer update
type UpdateCustomerRequest struct {
	Name         *string          `json:"name"`
	ContactName  *string          `json:"contact_name"`
	Phone        *string          `json:"phone"`
	Email        *string          `json:"email"`
	Address      *string          `json:"address"`
	UbigeoID     *uuid.UUID       `json:"ubigeo_id"`
	CreditLimit  *decimal.Decimal `json:"credit_limit"`
	PaymentTerms *int             `json:"payment_terms"`
	Notes        *string          `json:"notes"`
}

// CustomerResponse represents a customer
type CustomerResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	TaxIDType       string          `json:"tax_id_type"`
	TaxID           string          `json:"tax_id,omitempty"`
	ContactName     string          `json:"contact_name,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	UbigeoID        *uuid.UUID      `json:"ubigeo_id,omitempty"`
	DeliveryAddress string          `json:"delivery_address,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
	PaymentTerms    int             `json:"payment_terms"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CreateProviderRequest represents a request to create a provider
type CreateProviderRequest struct {
	TaxID       string `json:"tax_id"`
	Name        string `json:"name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateProviderRequest represents a partial provider update
type UpdateProviderRequest struct {
	Name        *string `json:"name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}

// ProviderResponse represents a provider
type ProviderResponse struct {
	ID          uuid.UUID `json:"id"`
	TaxID       string    `json:"tax_id"`
	Name        string    `json:"name"`
	ContactName string    `json:"contact_name,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Email       string    `json:"email,omitempty"`
	Address     string    `json:"address,omitempty"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCustomerResponse converts a customer aggregate to a response DTO
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		TaxIDType:       string(c.TaxIDType),
		TaxID:           c.TaxID,
		ContactName:     c.ContactName,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		UbigeoID:        c.UbigeoID,
		DeliveryAddress: c.DeliveryAddress(),
		CreditLimit:     c.CreditLimit,
		PaymentTerms:    c.PaymentTerms,
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
	}
}

// ToProviderResponse converts a provider aggregate to a response DTO
func ToProviderResponse(p *partner.Provider) ProviderResponse {
	return ProviderResponse{
		ID:          p.ID,
		TaxID:       p.TaxID,
		Name:        p.Name,
		ContactName: p.ContactName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		Status:      string(p.Status),
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
