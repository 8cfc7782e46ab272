package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"bislerium/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestUserService_UpdateProfile_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   UpdateProfileInput
	}{
		{"username too long", UpdateProfileInput{UserID: 1, Username: strings.Repeat("x", 51)}},
		{"bad email", UpdateProfileInput{UserID: 1, Email: "not-an-email"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := NewUserService(noopUserRepo())
			_, err := svc.UpdateProfile(context.Background(), tt.in)
			assertValidationError(t, err)
		})
	}
}

func TestUserService_UpdateProfile_PartialUpdate(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "old", Email: "old@example.com", FullName: "Old Name"}, nil
	}
	var saved *models.User
	repo.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	user, err := NewUserService(repo).UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Email:  "New@Example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "old", user.Username, "username should be unchanged when not provided")
	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, "Old Name", user.FullName)
	require.NotNil(t, saved)
}

func TestUserService_UpdateProfile_RepoError(t *testing.T) {
	t.Parallel()

	repoErr := errors.New("update failed")
	repo := noopUserRepo()
	repo.updateFn = func(context.Context, *models.User) error { return repoErr }

	_, err := NewUserService(repo).UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, FullName: "Jane"})
	assert.ErrorIs(t, err, repoErr)
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Parallel()

	const current = "Current1!pass"
	withUser := func(t *testing.T, saved **models.User) *userRepoStub {
		repo := noopUserRepo()
		hash := hashed(t, current)
		repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Password: hash}, nil
		}
		repo.updateFn = func(_ context.Context, u *models.User) error {
			*saved = u
			return nil
		}
		return repo
	}

	t.Run("wrong current password", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		err := NewUserService(withUser(t, &saved)).ChangePassword(context.Background(), ChangePasswordInput{
			UserID: 1, CurrentPassword: "nope", NewPassword: "Another1!pass",
		})
		assertUnauthorizedError(t, err)
		assert.Nil(t, saved)
	})

	t.Run("weak new password", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		err := NewUserService(withUser(t, &saved)).ChangePassword(context.Background(), ChangePasswordInput{
			UserID: 1, CurrentPassword: current, NewPassword: "short",
		})
		assertValidationError(t, err)
	})

	t.Run("same password", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		err := NewUserService(withUser(t, &saved)).ChangePassword(context.Background(), ChangePasswordInput{
			UserID: 1, CurrentPassword: current, NewPassword: current,
		})
		assertValidationError(t, err)
	})

	t.Run("stores a new hash", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		err := NewUserService(withUser(t, &saved)).ChangePassword(context.Background(), ChangePasswordInput{
			UserID: 1, CurrentPassword: current, NewPassword: "Another1!pass",
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("Another1!pass")))
	})
}

func TestUserService_Register(t *testing.T) {
	t.Parallel()

	t.Run("required fields", func(t *testing.T) {
		t.Parallel()
		_, err := NewUserService(noopUserRepo()).Register(context.Background(), "", "a@b.co", "Valid1!passwd", "")
		assertValidationError(t, err)
	})

	t.Run("hashes the password", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		var created *models.User
		repo.createFn = func(_ context.Context, u *models.User) error {
			created = u
			return nil
		}
		user, err := NewUserService(repo).Register(context.Background(), "jane", " Jane@Example.com ", "Valid1!passwd", "Jane Doe")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "jane@example.com", user.Email)
		assert.Equal(t, models.RoleBlogger, user.Role)
		assert.NotEqual(t, "Valid1!passwd", user.Password)
	})

	t.Run("admin role", func(t *testing.T) {
		t.Parallel()
		user, err := NewUserService(noopUserRepo()).CreateAdmin(context.Background(), CreateAdminInput{
			Username: "root", Email: "root@example.com", Password: "Valid1!passwd",
		})
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	hash := hashed(t, "Valid1!passwd")
	user := &models.User{ID: 4, Username: "jane", Email: "jane@example.com", Password: hash}
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		if email == user.Email {
			return user, nil
		}
		return nil, models.NewNotFoundError("User", email)
	}
	repo.getByUsernameFn = func(_ context.Context, name string) (*models.User, error) {
		if name == user.Username {
			return user, nil
		}
		return nil, models.NewNotFoundError("User", name)
	}
	svc := NewUserService(repo)
	ctx := context.Background()

	got, err := svc.Authenticate(ctx, "JANE@example.com", "Valid1!passwd")
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.ID)

	got, err = svc.Authenticate(ctx, "jane", "Valid1!passwd")
	require.NoError(t, err)
	assert.Equal(t, uint(4), got.ID)

	_, err = svc.Authenticate(ctx, "jane", "wrong")
	assertUnauthorizedError(t, err)

	_, err = svc.Authenticate(ctx, "ghost", "Valid1!passwd")
	assertUnauthorizedError(t, err)
}

func TestUserService_IsAdmin(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		switch id {
		case 1:
			return &models.User{ID: 1, Role: models.RoleAdmin}, nil
		case 2:
			return &models.User{ID: 2, Role: models.RoleBlogger}, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewUserService(repo)

	for id, want := range map[uint]bool{1: true, 2: false, 3: false} {
		got, err := svc.IsAdmin(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, got, "user %d", id)
	}
}

func TestUserService_DeleteAccount(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	var deleted uint
	repo.deleteCascadeFn = func(_ context.Context, id uint) error {
		deleted = id
		return nil
	}
	svc := NewUserService(repo)

	require.NoError(t, svc.DeleteAccount(context.Background(), 6))
	assert.Equal(t, uint(6), deleted)
	assertUnauthorizedError(t, svc.DeleteAccount(context.Background(), 0))
}

func TestUserService_GetProfile(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 2 {
			return &models.User{ID: 2, Username: "bob"}, nil
		}
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewUserService(repo)

	user, err := svc.GetProfile(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	_, err = svc.GetProfile(context.Background(), 3)
	assertNotFoundError(t, err)
}
