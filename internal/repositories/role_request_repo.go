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

type RoleRequestRepository struct {
	pool *pgxpool.Pool
}

func NewRoleRequestRepository(db *database.DB) *RoleRequestRepository {
	return &RoleRequestRepository{pool: db.Pool}
}

const roleRequestColumns = `id, user_id, requested_role, motivo, estado, admin_id, responded_at, created_at`

func scanRoleRequestRow(scanner rowScanner) (*models.RoleChangeRequest, error) {
	var req models.RoleChangeRequest
	err := scanner.Scan(
		&req.ID, &req.UserID, &req.RequestedRole, &req.Motivo, &req.Estado,
		&req.AdminID, &req.RespondedAt, &req.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &req, nil
}

func (r *RoleRequestRepository) Create(ctx context.Context, req *models.RoleChangeRequest) (*models.RoleChangeRequest, error) {
	req.ID = uuid.New().String()
	req.Estado = models.RoleRequestPendiente
	req.CreatedAt = time.Now()

	query := `
		INSERT INTO solicitudes_rol (id, user_id, requested_role, motivo, estado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + roleRequestColumns + `
	`

	return scanRoleRequestRow(r.pool.QueryRow(ctx, query,
		req.ID, req.UserID, req.RequestedRole, req.Motivo, req.Estado, req.CreatedAt,
	))
}

// resolveLatestPendingSQL targets only the most-recently-created pendiente
// row for the user; ties on created_at break by row id. Older pendiente rows
// are deliberately left untouched.
const resolveLatestPendingSQL = `
	UPDATE solicitudes_rol
	SET estado = $1, admin_id = $2, responded_at = $3
	WHERE id = (
		SELECT id FROM solicitudes_rol
		WHERE user_id = $4 AND estado = $5
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	)
	RETURNING ` + roleRequestColumns

// ResolveLatestPendingTx marks the user's latest pendiente request with the
// given terminal state inside a caller-owned transaction.
func (r *RoleRequestRepository) ResolveLatestPendingTx(ctx context.Context, tx pgx.Tx, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
	return scanRoleRequestRow(tx.QueryRow(ctx, resolveLatestPendingSQL,
		newState, adminID, time.Now(), userID, models.RoleRequestPendiente,
	))
}

// ResolveLatestPending is the non-transactional variant used by reject,
// which has no second effect to keep atomic with.
func (r *RoleRequestRepository) ResolveLatestPending(ctx context.Context, userID, newState, adminID string) (*models.RoleChangeRequest, error) {
	return scanRoleRequestRow(r.pool.QueryRow(ctx, resolveLatestPendingSQL,
		newState, adminID, time.Now(), userID, models.RoleRequestPendiente,
	))
}

func (r *RoleRequestRepository) ListPending(ctx context.Context) ([]*models.RoleChangeRequest, error) {
	query := `SELECT ` + roleRequestColumns + ` FROM solicitudes_rol WHERE estado = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, models.RoleRequestPendiente)
	if err != nil {
		return nil, fmt.Errorf("failed to query role requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*models.RoleChangeRequest, 0)
	for rows.Next() {
		req, err := scanRoleRequestRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan role request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return requests, nil
}
