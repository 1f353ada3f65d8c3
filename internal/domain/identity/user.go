package identity

import (
	"strings"

	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRole represents the role of a user within their enterprise
type UserRole string

const (
	UserRoleAdmin  UserRole = "admin"
	UserRoleSeller UserRole = "seller"
	UserRoleBuyer  UserRole = "buyer"
)

// IsValid checks if the role is a known value
func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleSeller, UserRoleBuyer:
		return true
	}
	return false
}

// User is an operator of an enterprise. Documents record the creating user
// through CreatedBy.
type User struct {
	shared.TenantAggregateRoot
	Email    string   `gorm:"type:varchar(200);not null;uniqueIndex"`
	Name     string   `gorm:"type:varchar(200);not null"`
	Role     UserRole `gorm:"type:varchar(20);not null;default:'seller'"`
	Active   bool     `gorm:"not null;default:true"`
	LastName string   `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user scoped to an enterprise
func NewUser(tenantID uuid.UUID, email, name string, role UserRole) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewValidationError("INVALID_EMAIL", "Email is not valid")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Name cannot be empty")
	}
	if !role.IsValid() {
		return nil, shared.NewValidationError("INVALID_ROLE", "Unknown user role")
	}

	return &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               email,
		Name:                name,
		Role:                role,
		Active:              true,
	}, nil
}

// FullName returns the display name of the user
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	return u.Name + " " + u.LastName
}

// Deactivate disables the user's access
func (u *User) Deactivate() {
	u.Active = false
	u.Touch()
	u.IncrementVersion()
}

// ChangeRole updates the user's role
func (u *User) ChangeRole(role UserRole) error {
	if !role.IsValid() {
		return shared.NewValidationError("INVALID_ROLE", "Unknown user role")
	}
	u.Role = role
	u.Touch()
	u.IncrementVersion()
	return nil
}
