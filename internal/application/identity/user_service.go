package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/comercio/backend/internal/domain/identity"
	"github.com/comercio/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserService handles the operators of an enterprise
type UserService struct {
	userRepo identity.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create adds a user to an enterprise. Emails are globally unique.
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, shared.NewConsistencyError("DUPLICATE_EMAIL", "A user with this email already exists")
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	user, err := identity.NewUser(tenantID, email, req.Name, identity.UserRole(req.Role))
	if err != nil {
		return nil, err
	}
	user.LastName = req.LastName

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user within a tenant
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves the users of an enterprise
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]UserResponse, error) {
	users, err := s.userRepo.FindByTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses, nil
}

// ChangeRole updates a user's role
func (s *UserService) ChangeRole(ctx context.Context, tenantID, userID uuid.UUID, role string) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.ChangeRole(identity.UserRole(role)); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// Deactivate disables a user's access
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	user.Deactivate()
	return s.userRepo.Save(ctx, user)
}
