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

type AdoptionRequestRepository struct {
	pool *pgxpool.Pool
}

func NewAdoptionRequestRepository(db *database.DB) *AdoptionRequestRepository {
	return &AdoptionRequestRepository{pool: db.Pool}
}

const adoptionColumns = `id, pet_id, requester_id, comentario, estado, created_at`

func scanAdoptionRow(scanner rowScanner) (*models.AdoptionRequest, error) {
	var req models.AdoptionRequest
	err := scanner.Scan(
		&req.ID, &req.PetID, &req.RequesterID, &req.Comentario, &req.Estado, &req.CreatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}
	return &req, nil
}

func scanAdoptionRows(rows pgx.Rows) ([]*models.AdoptionRequest, error) {
	defer rows.Close()

	requests := make([]*models.AdoptionRequest, 0)
	for rows.Next() {
		req, err := scanAdoptionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan adoption request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return requests, nil
}

func (r *AdoptionRequestRepository) Create(ctx context.Context, req *models.AdoptionRequest) (*models.AdoptionRequest, error) {
	req.ID = uuid.New().String()
	req.Estado = models.AdoptionStatePendiente
	req.CreatedAt = time.Now()

	query := `
		INSERT INTO solicitudes_adopcion (` + adoptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + adoptionColumns + `
	`

	created, err := scanAdoptionRow(r.pool.QueryRow(ctx, query,
		req.ID, req.PetID, req.RequesterID, req.Comentario, req.Estado, req.CreatedAt,
	))
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *AdoptionRequestRepository) GetByID(ctx context.Context, id string) (*models.AdoptionRequest, error) {
	query := `SELECT ` + adoptionColumns + ` FROM solicitudes_adopcion WHERE id = $1`

	return scanAdoptionRow(r.pool.QueryRow(ctx, query, id))
}

// UpdateStateFromPending moves a request out of pendiente. The WHERE clause
// carries the state-machine guard: zero rows affected means the row is
// missing or already terminal, which callers distinguish via GetByID.
func (r *AdoptionRequestRepository) UpdateStateFromPending(ctx context.Context, id, newState string) (bool, error) {
	query := `
		UPDATE solicitudes_adopcion
		SET estado = $1
		WHERE id = $2 AND estado = $3
	`

	result, err := r.pool.Exec(ctx, query, newState, id, models.AdoptionStatePendiente)
	if err != nil {
		return false, database.MapPostgresError(err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *AdoptionRequestRepository) ListByPet(ctx context.Context, petID string) ([]*models.AdoptionRequest, error) {
	query := `SELECT ` + adoptionColumns + ` FROM solicitudes_adopcion WHERE pet_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, petID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adoption requests: %w", err)
	}

	return scanAdoptionRows(rows)
}

func (r *AdoptionRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]*models.AdoptionRequest, error) {
	query := `SELECT ` + adoptionColumns + ` FROM solicitudes_adopcion WHERE requester_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, requesterID)
	if err != nil {
		return nil, fmt.Errorf("failed to query adoption requests: %w", err)
	}

	return scanAdoptionRows(rows)
}
