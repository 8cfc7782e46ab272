package service

import (
	"context"
	"strings"

	"bislerium/internal/cache"
	"bislerium/internal/models"
	"bislerium/internal/repository"
	"bislerium/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
}

// UpdateProfileInput leaves blank fields unchanged.
type UpdateProfileInput struct {
	UserID    uint
	Username  string
	Email     string
	FullName  string
	ImagePath string
}

type ChangePasswordInput struct {
	UserID          uint
	CurrentPassword string
	NewPassword     string
}

type CreateAdminInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// IsAdmin satisfies AdminCheck.
func (s *UserService) IsAdmin(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.userRepo.List(ctx)
}

// GetProfile reads through the profile cache.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.ProfileKey(userID), &user, cache.ProfileTTL, func() error {
		u, err := s.userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, logFailure(ctx, "user.GetProfile", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if err := requireViewer(in.UserID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if u := strings.TrimSpace(in.Username); u != "" {
		if err := validation.ValidateUsername(u); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = u
	}
	if e := strings.TrimSpace(in.Email); e != "" {
		if err := validation.ValidateEmail(e); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = strings.ToLower(e)
	}
	if n := strings.TrimSpace(in.FullName); n != "" {
		if err := validation.ValidateFullName(n); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.FullName = n
	}
	if in.ImagePath != "" {
		user.ImagePath = strings.TrimSpace(in.ImagePath)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, logFailure(ctx, "user.UpdateProfile", err)
	}
	cache.InvalidateProfile(ctx, user.ID)
	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, in ChangePasswordInput) error {
	if err := requireViewer(in.UserID); err != nil {
		return err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.CurrentPassword)) != nil {
		return models.NewUnauthorizedError("Current password is incorrect")
	}
	if in.NewPassword == in.CurrentPassword {
		return models.NewValidationError("New password must differ from the current password")
	}
	if err := validation.ValidatePassword(in.NewPassword); err != nil {
		return models.NewValidationError(err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return models.NewInternalError(err)
	}
	user.Password = string(hashed)
	return logFailure(ctx, "user.ChangePassword", s.userRepo.Update(ctx, user))
}

// DeleteAccount removes the user and everything they authored.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if err := requireViewer(userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteCascade(ctx, userID); err != nil {
		return logFailure(ctx, "user.DeleteAccount", err)
	}
	cache.InvalidateProfile(ctx, userID)
	return nil
}

// CreateAdmin registers a new account with the admin role.
func (s *UserService) CreateAdmin(ctx context.Context, in CreateAdminInput) (*models.User, error) {
	return s.register(ctx, in.Username, in.Email, in.Password, in.FullName, models.RoleAdmin)
}

// Register creates a blogger account.
func (s *UserService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, error) {
	return s.register(ctx, username, email, password, fullName, models.RoleBlogger)
}

func (s *UserService) register(ctx context.Context, username, email, password, fullName string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	fullName = strings.TrimSpace(fullName)

	if username == "" || email == "" || password == "" {
		return nil, models.NewValidationError("Username, email, and password are required")
	}
	if err := validation.ValidateUsername(username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if fullName != "" {
		if err := validation.ValidateFullName(fullName); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, logFailure(ctx, "user.Register", err)
	}
	return user, nil
}

// Authenticate resolves an email or username and checks the password.
func (s *UserService) Authenticate(ctx context.Context, login, password string) (*models.User, error) {
	login = strings.TrimSpace(login)
	var (
		user *models.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(login))
	} else {
		user, err = s.userRepo.GetByUsername(ctx, login)
	}
	if err != nil {
		if models.HasCode(err, models.CodeNotFound) {
			return nil, models.NewUnauthorizedError("Invalid credentials")
		}
		return nil, logFailure(ctx, "user.Authenticate", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}
