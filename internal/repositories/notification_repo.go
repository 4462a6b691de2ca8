package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samuel890456/HogarPeludo-sub001/internal/database"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(db *database.DB) *NotificationRepository {
	return &NotificationRepository{pool: db.Pool}
}

const notificationColumns = `id, user_id, tipo, mensaje, enlace, leida, created_at`

func scanNotificationRow(scanner rowScanner) (*models.Notification, error) {
	var n models.Notification
	err := scanner.Scan(
		&n.ID, &n.UserID, &n.Tipo, &n.Mensaje, &n.Enlace, &n.Leida, &n.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &n, nil
}

func scanNotificationRows(rows pgx.Rows) ([]*models.Notification, error) {
	defer rows.Close()

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotificationRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return notifications, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	n.ID = uuid.New().String()
	n.Leida = false
	n.CreatedAt = time.Now()

	query := `
		INSERT INTO notificaciones (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + notificationColumns + `
	`

	return scanNotificationRow(r.pool.QueryRow(ctx, query,
		n.ID, n.UserID, n.Tipo, n.Mensaje, n.Enlace, n.Leida, n.CreatedAt,
	))
}

func (r *NotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notificaciones WHERE id = $1`

	return scanNotificationRow(r.pool.QueryRow(ctx, query, id))
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notificaciones WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	return scanNotificationRows(rows)
}

func (r *NotificationRepository) ListUnreadByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notificaciones WHERE user_id = $1 AND leida = false ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query notifications: %w", err)
	}

	return scanNotificationRows(rows)
}

// MarkRead flips leida for a single owned row. Reports false when the row
// was already read (the flag never reverts, so the guard keeps the update
// idempotent).
func (r *NotificationRepository) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	query := `UPDATE notificaciones SET leida = true WHERE id = $1 AND user_id = $2 AND leida = false`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return result.RowsAffected() > 0, nil
}

// MarkAllRead transitions every unread row for the user and returns the count.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	query := `UPDATE notificaciones SET leida = true WHERE user_id = $1 AND leida = false`

	result, err := r.pool.Exec(ctx, query, userID)
	if err != nil {
		return 0, database.MapPostgresError(err)
	}

	return result.RowsAffected(), nil
}

// Delete removes a row only when owned by userID; reports whether a row went away.
func (r *NotificationRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	query := `DELETE FROM notificaciones WHERE id = $1 AND user_id = $2`

	result, err := r.pool.Exec(ctx, query, id, userID)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return result.RowsAffected() > 0, nil
}
