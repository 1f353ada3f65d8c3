package identity

import (
	"time"

	"github.com/comercio/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterEnterpriseRequest represents a tenant registration
type RegisterEnterpriseRequest struct {
	TaxID         string `json:"tax_id"`
	SocialReason  string `json:"social_reason"`
	ComercialName string `json:"comercial_name"`
	Subdomain     string `json:"subdomain"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

// UpdateEnterpriseRequest represents a partial profile update
type UpdateEnterpriseRequest struct {
	ComercialName *string `json:"comercial_name"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// UpdateSettingsRequest represents a settings change
type UpdateSettingsRequest struct {
	UseStock            bool `json:"use_stock"`
	DropshippingEnabled bool `json:"dropshipping_enabled"`
}

// EnterpriseResponse represents an enterprise
type EnterpriseResponse struct {
	ID            uuid.UUID  `json:"id"`
	TaxID         string     `json:"tax_id"`
	SocialReason  string     `json:"social_reason"`
	ComercialName string     `json:"comercial_name,omitempty"`
	Subdomain     string     `json:"subdomain"`
	Status        string     `json:"status"`
	Phone         string     `json:"phone,omitempty"`
	Address       string     `json:"address,omitempty"`
	UseStock      bool       `json:"use_stock"`
	Dropshipping  bool       `json:"dropshipping_enabled"`
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// CreateUserRequest represents a user creation within a tenant
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
	Role     string `json:"role"`
}

// UserResponse represents a user
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
}

// ToEnterpriseResponse converts an enterprise aggregate to a response DTO
func ToEnterpriseResponse(e *identity.Enterprise) EnterpriseResponse {
	return EnterpriseResponse{
		ID:            e.ID,
		TaxID:         e.TaxID,
		SocialReason:  e.SocialReason,
		ComercialName: e.ComercialName,
		Subdomain:     e.Subdomain,
		Status:        string(e.Status),
		Phone:         e.Phone,
		Address:       e.Address,
		UseStock:      e.Settings.UseStock,
		Dropshipping:  e.Settings.DropshippingEnabled,
		ActivatedAt:   e.ActivatedAt,
		CreatedAt:     e.CreatedAt,
	}
}

// ToUserResponse converts a user entity to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName(),
		Role:     string(u.Role),
		Active:   u.Active,
	}
}
