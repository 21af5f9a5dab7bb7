package service

import (
	"fmt"

	"github.com/unibites/campus-bites/internal/models"
	"github.com/unibites/campus-bites/internal/repository"
	"github.com/unibites/campus-bites/internal/utils"
	"github.com/unibites/campus-bites/pkg/logger"
	"go.uber.org/zap"
)

// UpdateUserInput is the partial profile patch. It deliberately carries
// no role field: role changes go through ChangeRole, which is gated to
// admins, so an update payload can never elevate privileges.
type UpdateUserInput struct {
	Name       *string
	Email      *string
	University *string
	Password   *string
}

type UserService struct {
	userRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List returns all users, newest first. Password hashes are excluded
// from serialization at the model level.
func (s *UserService) List() ([]*models.User, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		logger.Log.Error("Failed to fetch users", zap.Error(err))
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// CreateAdmin provisions an account with the admin role. Caller must be
// an admin; the handler enforces that.
func (s *UserService) CreateAdmin(name, email, password, university string) (*models.User, error) {
	if err := validateRegisterInput(name, email, password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		University:   university,
		IsActive:     true,
		Role:         models.RoleAdmin,
	}

	if err := s.userRepo.Create(user); err != nil {
		logger.Log.Error("Failed to create admin user",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("Admin user created",
		zap.String("user_id", user.ID),
		zap.String("email", email),
	)

	return user, nil
}

// Update applies a partial patch. A supplied password is re-hashed; a
// changed email is re-checked for uniqueness.
func (s *UserService) Update(id string, input UpdateUserInput) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if len(*input.Name) < 2 || len(*input.Name) > 100 {
			return nil, fmt.Errorf("%w: name must be 2-100 characters", ErrInvalidInput)
		}
		user.Name = *input.Name
	}

	if input.Email != nil && *input.Email != user.Email {
		if !emailRegex.MatchString(*input.Email) {
			return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
		}
		existing, err := s.userRepo.GetByEmail(*input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = *input.Email
	}

	if input.University != nil {
		user.University = *input.University
	}

	if input.Password != nil {
		if len(*input.Password) < 8 || len(*input.Password) > 128 {
			return nil, fmt.Errorf("%w: password must be 8-128 characters", ErrInvalidInput)
		}
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
	}

	if err := s.userRepo.Save(user); err != nil {
		logger.Log.Error("Failed to update user",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	logger.Log.Info("User updated", zap.String("user_id", id))
	return user, nil
}

func (s *UserService) ChangeRole(id string, role models.Role) (*models.User, error) {
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.Role = role
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User role changed",
		zap.String("user_id", id),
		zap.String("role", string(role)),
	)
	return user, nil
}

// SetActive toggles the activation flag. Deactivation does not touch
// the user's restaurants or reviews; lifecycles are independent.
func (s *UserService) SetActive(id string, active bool) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User activation changed",
		zap.String("user_id", id),
		zap.Bool("active", active),
	)
	return user, nil
}

func (s *UserService) Verify(id string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.IsVerified = true
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	logger.Log.Info("User verified", zap.String("user_id", id))
	return user, nil
}

// Delete removes the account permanently.
func (s *UserService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}

	if err := s.userRepo.Delete(id); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", id),
			zap.Error(err),
		)
		return err
	}

	logger.Log.Info("User deleted", zap.String("user_id", id))
	return nil
}

// SetProfilePicture stores the object path returned by the blob store.
func (s *UserService) SetProfilePicture(id, picturePath string) (*models.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.ProfilePicture = picturePath
	if err := s.userRepo.Save(user); err != nil {
		return nil, err
	}

	logger.Log.Info("Profile picture updated",
		zap.String("user_id", id),
		zap.String("path", picturePath),
	)
	return user, nil
}
