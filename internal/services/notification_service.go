package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

// NotificationRepository defines storage for the per-user inbox
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) (*models.Notification, error)
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

// NotificationService is the append-only inbox per user. Every mutation is
// scoped to the owning user.
type NotificationService struct {
	repo   NotificationRepository
	logger *slog.Logger
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo NotificationRepository, logger *slog.Logger) *NotificationService {
	return &NotificationService{
		repo:   repo,
		logger: logger,
	}
}

// Create appends a new unread notification to the user's inbox.
func (s *NotificationService) Create(ctx context.Context, userID, tipo, mensaje string, enlace *string) (*models.Notification, error) {
	if userID == "" || mensaje == "" {
		return nil, models.ErrValidation
	}

	n := &models.Notification{
		UserID:  userID,
		Tipo:    tipo,
		Mensaje: mensaje,
		Enlace:  enlace,
	}

	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("failed to create notification", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}

	return created, nil
}

// GetAll returns the user's inbox, newest first.
func (s *NotificationService) GetAll(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list notifications", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return notifications, nil
}

// GetUnread returns only unread entries, newest first.
func (s *NotificationService) GetUnread(ctx context.Context, userID string) ([]*models.Notification, error) {
	notifications, err := s.repo.ListUnreadByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list unread notifications", slog.String("user_id", userID), slog.Any("error", err))
		return nil, models.ErrInternalServer
	}
	return notifications, nil
}

// MarkRead sets leida on an owned notification. Returns whether a row
// changed: false when the row was already read. A notification owned by
// another user fails ErrForbidden; a missing one fails ErrNotFound.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	changed, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to mark notification read", slog.String("notification_id", id), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	if changed {
		return true, nil
	}

	// Nothing changed: distinguish missing, foreign, and already-read rows.
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, models.ErrNotFound
		}
		s.logger.Error("failed to re-read notification", slog.String("notification_id", id), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	if n.UserID != userID {
		return false, models.ErrForbidden
	}
	return false, nil
}

// MarkAllRead transitions every unread notification for the user and
// returns the count affected. A second call affects zero rows.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("failed to mark all notifications read", slog.String("user_id", userID), slog.Any("error", err))
		return 0, models.ErrInternalServer
	}

	s.logger.Info("notifications marked read",
		slog.String("user_id", userID),
		slog.Int64("count", count))

	return count, nil
}

// Delete removes an owned notification and reports whether a row was
// removed. A notification owned by another user fails ErrForbidden and is
// left intact.
func (s *NotificationService) Delete(ctx context.Context, id, userID string) (bool, error) {
	removed, err := s.repo.Delete(ctx, id, userID)
	if err != nil {
		s.logger.Error("failed to delete notification", slog.String("notification_id", id), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	if removed {
		return true, nil
	}

	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return false, models.ErrNotFound
		}
		s.logger.Error("failed to re-read notification", slog.String("notification_id", id), slog.Any("error", err))
		return false, models.ErrInternalServer
	}
	if n.UserID != userID {
		return false, models.ErrForbidden
	}
	return false, nil
}
