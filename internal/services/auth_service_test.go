package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkgauth "github.com/samuel890456/HogarPeludo-sub001/pkg/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-32-characters-long!!"

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager(testSecret, 1*time.Hour)
}

func TestAuthService_Register_Success(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error) {
			user.ID = "user-1"
			user.Roles = roles
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Register(context.Background(), "Ana", "a@x.com", "secret1", "123", "Calle 1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "a@x.com", resp.Email)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, []models.RoleID{models.RolePublicador, models.RoleAdoptante}, resp.Roles)
}

func TestAuthService_Register_AssignsDefaultRoles(t *testing.T) {
	var gotRoles []models.RoleID
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
		CreateFunc: func(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error) {
			gotRoles = roles
			user.ID = "user-1"
			user.Roles = roles
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	_, err := svc.Register(context.Background(), "Ana", "a@x.com", "secret1", "", "")

	require.NoError(t, err)
	assert.Equal(t, models.DefaultRoles(), gotRoles)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	existing := NewTestUser("user-1", "taken@x.com", "Taken")
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return existing, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Register(context.Background(), "Ana", "taken@x.com", "secret1", "", "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrConflict)
}

func TestAuthService_Register_PasswordTooShort(t *testing.T) {
	svc := NewAuthService(&MockUserRepository{}, newTestTokenManager(), slog.Default())

	resp, err := svc.Register(context.Background(), "Ana", "a@x.com", "abc", "", "")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAuthService_Login_Success(t *testing.T) {
	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)

	user := NewTestUser("user-1", "a@x.com", "Ana")
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Login(context.Background(), "a@x.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.ID)
	assert.NotEmpty(t, resp.Token)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)

	user := NewTestUser("user-1", "a@x.com", "Ana")
	user.PasswordHash = hash

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Login(context.Background(), "a@x.com", "wrong")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_Login_UnknownEmail_SameError(t *testing.T) {
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return nil, models.ErrNotFound
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Login(context.Background(), "nobody@x.com", "whatever")

	assert.Nil(t, resp)
	// Unknown email and wrong password are indistinguishable to the caller
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestAuthService_Login_BlockedAccount(t *testing.T) {
	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)

	user := NewTestUser("user-1", "a@x.com", "Ana")
	user.PasswordHash = hash
	user.Estado = models.UserStateBloqueado

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Login(context.Background(), "a@x.com", "secret1")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrAccountBlocked)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)

	user := NewTestUser("user-1", "a@x.com", "Ana")
	user.PasswordHash = hash
	user.Activo = false

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	resp, err := svc.Login(context.Background(), "a@x.com", "secret1")

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, models.ErrAccountInactive)
}

func TestAuthService_Login_NormalizesEmail(t *testing.T) {
	hash, err := pkgauth.HashPassword("secret1")
	require.NoError(t, err)

	user := NewTestUser("user-1", "a@x.com", "Ana")
	user.PasswordHash = hash

	var lookedUp string
	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*models.User, error) {
			lookedUp = email
			return user, nil
		},
	}

	svc := NewAuthService(mockUserRepo, newTestTokenManager(), slog.Default())

	_, err = svc.Login(context.Background(), "  A@X.COM ", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "a@x.com", lookedUp)
}
