package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/auth"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkgauth "github.com/samuel890456/HogarPeludo-sub001/pkg/auth"
	pkglogger "github.com/samuel890456/HogarPeludo-sub001/pkg/logger"
)

// UserRepository defines the storage operations the identity services need
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error)
	SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error
	GetByResetToken(ctx context.Context, token string) (*models.User, error)
	UpdatePasswordAndClearResetToken(ctx context.Context, userID, passwordHash string) error
	AddRoleTx(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error
}

// AuthService handles registration and login
type AuthService struct {
	repo   UserRepository
	tm     *auth.TokenManager
	logger *slog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(repo UserRepository, tm *auth.TokenManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		repo:   repo,
		tm:     tm,
		logger: logger,
	}
}

// AuthResponse is the body returned by registration and login
type AuthResponse struct {
	ID     string          `json:"id"`
	Nombre string          `json:"nombre"`
	Email  string          `json:"email"`
	Token  string          `json:"token"`
	Roles  []models.RoleID `json:"roles"`
}

// Register creates a new account with the default role set and issues a token.
func (s *AuthService) Register(ctx context.Context, nombre, email, password, telefono, direccion string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	nombre = strings.TrimSpace(nombre)

	if email == "" || nombre == "" {
		return nil, models.ErrValidation
	}
	if err := pkgauth.ValidatePassword(password); err != nil {
		return nil, models.ErrValidation
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		s.logger.Info("registration failed: email already in use")
		return nil, models.ErrConflict
	}
	if !errors.Is(err, models.ErrNotFound) {
		s.logger.Error("failed to check existing email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	hash, err := pkgauth.HashPassword(password)
	if err != nil {
		s.logger.Error("failed to hash password", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	user := &models.User{
		Nombre:       nombre,
		Email:        email,
		PasswordHash: hash,
		Telefono:     telefono,
		Direccion:    direccion,
		Activo:       true,
		Estado:       models.UserStateActivo,
	}

	created, err := s.repo.Create(ctx, user, models.DefaultRoles())
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrConflict
		}
		s.logger.Error("failed to create user", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	token, err := s.tm.Generate(created.ID, created.Email, created.Roles)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("user_id", created.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user registered",
		slog.String("user_id", created.ID),
		slog.String("email", pkglogger.SanitizedEmail(created.Email)))

	return &AuthResponse{
		ID:     created.ID,
		Nombre: created.Nombre,
		Email:  created.Email,
		Token:  token,
		Roles:  created.Roles,
	}, nil
}

// Login authenticates credentials and issues a token. Unknown email and
// wrong password produce the same error so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, models.ErrUnauthorized
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("login failed: invalid credentials")
			return nil, models.ErrUnauthorized
		}
		s.logger.Error("failed to get user by email", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	if err := pkgauth.ComparePassword(user.PasswordHash, password); err != nil {
		s.logger.Info("login failed: invalid credentials")
		return nil, models.ErrUnauthorized
	}

	if err := user.CanAuthenticate(); err != nil {
		s.logger.Info("login blocked due to account state",
			slog.String("user_id", user.ID),
			slog.String("estado", user.Estado))
		return nil, err
	}

	token, err := s.tm.Generate(user.ID, user.Email, user.Roles)
	if err != nil {
		s.logger.Error("failed to generate token", slog.String("user_id", user.ID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID))

	return &AuthResponse{
		ID:     user.ID,
		Nombre: user.Nombre,
		Email:  user.Email,
		Token:  token,
		Roles:  user.Roles,
	}, nil
}
