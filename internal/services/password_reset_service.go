package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	pkgauth "github.com/samuel890456/HogarPeludo-sub001/pkg/auth"
	pkglogger "github.com/samuel890456/HogarPeludo-sub001/pkg/logger"
)

// GenericResetMessage is returned by ForgotPassword whether or not the email
// exists, so the endpoint cannot be used to enumerate accounts.
const GenericResetMessage = "Si el correo está registrado, recibirás un enlace para restablecer tu contraseña."

// PasswordResetService issues single-use reset tokens and performs the reset
type PasswordResetService struct {
	repo        UserRepository
	email       EmailSender
	tokenExpiry time.Duration
	sendTimeout time.Duration
	logger      *slog.Logger
}

// NewPasswordResetService creates a new PasswordResetService
func NewPasswordResetService(repo UserRepository, email EmailSender, tokenExpiry, sendTimeout time.Duration, logger *slog.Logger) *PasswordResetService {
	return &PasswordResetService{
		repo:        repo,
		email:       email,
		tokenExpiry: tokenExpiry,
		sendTimeout: sendTimeout,
		logger:      logger,
	}
}

// ForgotPassword stores a fresh reset token when the account exists and
// dispatches the reset email out of band. The caller always receives the
// same generic message; a delivery failure is logged, not surfaced, and the
// stored token is not rolled back.
func (s *PasswordResetService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("password reset requested for unknown email")
			return nil
		}
		s.logger.Error("failed to look up user for password reset", slog.Any("error", err))
		return models.ErrInternalServer
	}

	token, err := pkgauth.GenerateResetToken()
	if err != nil {
		s.logger.Error("failed to generate reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	expiry := time.Now().Add(s.tokenExpiry)
	if err := s.repo.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		s.logger.Error("failed to store reset token", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	// Out-of-band send with its own deadline: a slow provider must not hold
	// the request open, and a failed send must not fail the caller.
	go func() {
		sendCtx, cancel := context.WithTimeout(context.Background(), s.sendTimeout)
		defer cancel()

		if err := s.email.SendPasswordResetEmail(sendCtx, user.Email, token); err != nil {
			s.logger.Error("failed to send password reset email",
				slog.String("user_id", user.ID),
				slog.String("email", pkglogger.SanitizedEmail(user.Email)),
				slog.Any("error", err))
		}
	}()

	s.logger.Info("password reset token issued", slog.String("user_id", user.ID))
	return nil
}

// ResetPassword consumes a reset token. The new hash is stored and both
// reset fields cleared in one statement, so a token succeeds at most once.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := pkgauth.ValidatePassword(newPassword); err != nil {
		return models.ErrValidation
	}

	user, err := s.repo.GetByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			s.logger.Info("password reset attempted with invalid or expired token")
			return models.ErrInvalidResetToken
		}
		s.logger.Error("failed to look up reset token", slog.Any("error", err))
		return models.ErrInternalServer
	}

	hash, err := pkgauth.HashPassword(newPassword)
	if err != nil {
		s.logger.Error("failed to hash new password", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if err := s.repo.UpdatePasswordAndClearResetToken(ctx, user.ID, hash); err != nil {
		s.logger.Error("failed to update password", slog.String("user_id", user.ID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	s.logger.Info("password reset completed", slog.String("user_id", user.ID))
	return nil
}
