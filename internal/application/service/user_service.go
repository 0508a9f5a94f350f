package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	"github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/pkg/apperror"
	"github.com/prospecta/prospecta-api/pkg/utils"
)

// UserService handles user management (managers only)
type UserService struct {
	userRepo repository.UserRepository
	leadRepo repository.LeadRepository
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, leadRepo repository.LeadRepository) *UserService {
	return &UserService{userRepo: userRepo, leadRepo: leadRepo}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     enum.Role
}

// CreateUser creates a user with an explicit role
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	if !input.Role.IsValid() {
		return nil, apperror.NewFieldValidationError("role", "Role must be Admin, Supervisor or Vendedor")
	}

	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashedPassword,
		Role:     input.Role,
		Provider: "local",
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	Name     string
	Role     enum.Role
	Password string
}

// UpdateUser updates a user's name, role and optionally password
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Role != "" {
		if !input.Role.IsValid() {
			return nil, apperror.NewFieldValidationError("role", "Role must be Admin, Supervisor or Vendedor")
		}
		user.Role = input.Role
	}
	if input.Password != "" {
		hashedPassword, err := utils.HashPassword(input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser deletes a user. The delete is refused while the user owns leads.
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	count, err := s.leadRepo.CountByOwner(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperror.NewReferentialIntegrityError("User still owns leads; reassign them first")
	}

	return s.userRepo.Delete(ctx, id)
}

// GetUser retrieves a user by ID
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]entity.User, error) {
	return s.userRepo.List(ctx)
}
