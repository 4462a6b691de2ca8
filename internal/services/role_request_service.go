package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

// RoleRequestRepository defines storage for role-change requests
type RoleRequestRepository interface {
	Create(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error)
	ResolveLatestPendingTx(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error)
	ResolveLatestPending(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error)
	ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error)
}

// TxRunner runs a function inside a database transaction
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(pgx.Tx) error) error
}

// RoleRequestService governs the refugio role-upgrade lifecycle. Approval
// mutates the authorization state the rest of the platform depends on.
type RoleRequestService struct {
	requests RoleRequestRepository
	users    UserRepository
	notifier Notifier
	tx       TxRunner
	logger   *slog.Logger
}

// NewRoleRequestService creates a new RoleRequestService
func NewRoleRequestService(requests RoleRequestRepository, users UserRepository, notifier Notifier, tx TxRunner, logger *slog.Logger) *RoleRequestService {
	return &RoleRequestService{
		requests: requests,
		users:    users,
		notifier: notifier,
		tx:       tx,
		logger:   logger,
	}
}

// Submit files a pendiente request for the refugio role.
func (s *RoleRequestService) Submit(ctx context.Context, userID, motivo string) (*models.RoleChangeRequest, error) {
	motivo = strings.TrimSpace(motivo)
	if len(motivo) < models.MinMotivationLength {
		return nil, models.ErrValidation
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrUserNotFound
		}
		s.logger.Error("failed to resolve user for role request", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	req := &models.RoleChangeRequest{
		UserID:        userID,
		RequestedRole: models.RoleRefugio,
		Motivo:        motivo,
	}

	created, err := s.requests.Create(ctx, req)
	if err != nil {
		s.logger.Error("failed to create role request", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	s.logger.Info("role change request submitted",
		slog.String("request_id", created.ID),
		slog.String("user_id", userID))

	return created, nil
}

// Approve grants the refugio role and resolves the user's latest pendiente
// request in a single transaction: either both effects commit or neither
// does. The role grant is idempotent, so a duplicate approval cannot grant
// the role twice.
func (s *RoleRequestService) Approve(ctx context.Context, userID, adminID string) error {
	var resolved *models.RoleChangeRequest

	err := s.tx.WithTransaction(ctx, func(tx pgx.Tx) error {
		req, err := s.requests.ResolveLatestPendingTx(ctx, tx, userID, models.RoleRequestAprobada, adminID)
		if err != nil {
			return err
		}
		resolved = req

		return s.users.AddRoleTx(ctx, tx, userID, models.RoleRefugio)
	})
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to approve role request", slog.String("user_id", userID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if _, nerr := s.notifier.Create(ctx, userID, models.NotificationRolCambio,
		"Tu solicitud de rol refugio fue aprobada", nil); nerr != nil {
		s.logger.Error("failed to notify role approval", slog.String("user_id", userID), slog.Any("error", nerr))
	}

	s.logger.Info("role change request approved",
		slog.String("request_id", resolved.ID),
		slog.String("user_id", userID),
		slog.String("admin_id", adminID))

	return nil
}

// Reject resolves the latest pendiente request as rechazada. No role mutation.
func (s *RoleRequestService) Reject(ctx context.Context, userID, adminID string) error {
	resolved, err := s.requests.ResolveLatestPending(ctx, userID, models.RoleRequestRechazada, adminID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		s.logger.Error("failed to reject role request", slog.String("user_id", userID), slog.Any("error", err))
		return models.ErrInternalServer
	}

	if _, nerr := s.notifier.Create(ctx, userID, models.NotificationRolCambio,
		"Tu solicitud de rol refugio fue rechazada", nil); nerr != nil {
		s.logger.Error("failed to notify role rejection", slog.String("user_id", userID), slog.Any("error", nerr))
	}

	s.logger.Info("role change request rejected",
		slog.String("request_id", resolved.ID),
		slog.String("user_id", userID),
		slog.String("admin_id", adminID))

	return nil
}

// ListPending returns all pendiente requests for the admin dashboard.
func (s *RoleRequestService) ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error) {
	requests, err := s.requests.ListPending(ctx)
	if err != nil {
		s.logger.Error("failed to list pending role requests", slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return requests, nil
}
