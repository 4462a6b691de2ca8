package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samuel890456/HogarPeludo-sub001/internal/database"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
)

type PetRepository struct {
	pool *pgxpool.Pool
}

func NewPetRepository(db *database.DB) *PetRepository {
	return &PetRepository{pool: db.Pool}
}

func (r *PetRepository) GetByID(ctx context.Context, id string) (*models.Pet, error) {
	query := `
		SELECT id, nombre, especie, owner_user_id, created_at
		FROM mascotas WHERE id = $1
	`

	var pet models.Pet
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&pet.ID, &pet.Nombre, &pet.Especie, &pet.OwnerUserID, &pet.CreatedAt,
	)
	if err != nil {
		mapped := database.MapPostgresError(err)
		if errors.Is(mapped, models.ErrNotFound) {
			return nil, models.ErrPetNotFound
		}
		return nil, mapped
	}

	return &pet, nil
}
