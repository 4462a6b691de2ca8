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

type UserRepository struct {
	pool *pgxpool.Pool
	db   *database.DB
}

func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{pool: db.Pool, db: db}
}

const userColumns = `id, nombre, email, password_hash, telefono, direccion, activo, estado, reset_token, reset_token_expiry, created_at, updated_at`

// rowScanner interface for scanning user rows (single row or rows iteration)
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserRow(scanner rowScanner) (*models.User, error) {
	var user models.User
	var resetToken *string
	var resetExpiry *time.Time

	err := scanner.Scan(
		&user.ID, &user.Nombre, &user.Email, &user.PasswordHash,
		&user.Telefono, &user.Direccion, &user.Activo, &user.Estado,
		&resetToken, &resetExpiry,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, database.MapPostgresError(err)
	}

	user.ResetToken = resetToken
	user.ResetTokenExpiry = resetExpiry

	return &user, nil
}

// loadRoles populates the user's role set from the user_roles join table.
func (r *UserRepository) loadRoles(ctx context.Context, user *models.User) error {
	rows, err := r.pool.Query(ctx,
		`SELECT role_id FROM user_roles WHERE user_id = $1 ORDER BY role_id`, user.ID)
	if err != nil {
		return fmt.Errorf("failed to query user roles: %w", err)
	}
	defer rows.Close()

	roles := make(models.RoleSet, 0, 2)
	for rows.Next() {
		var role models.RoleID
		if err := rows.Scan(&role); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating roles: %w", err)
	}

	user.Roles = roles
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Create inserts the user and its initial role memberships as one unit.
func (r *UserRepository) Create(ctx context.Context, user *models.User, roles []models.RoleID) (*models.User, error) {
	user.ID = uuid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if user.Estado == "" {
		user.Estado = models.UserStateActivo
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		query := `
			INSERT INTO users (id, nombre, email, password_hash, telefono, direccion, activo, estado, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`
		_, err := tx.Exec(ctx, query,
			user.ID, user.Nombre, user.Email, user.PasswordHash,
			user.Telefono, user.Direccion, user.Activo, user.Estado,
			user.CreatedAt, user.UpdatedAt,
		)
		if err != nil {
			return database.MapPostgresError(err)
		}

		for _, role := range roles {
			if err := addRole(ctx, tx, user.ID, role); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	user.Roles = roles
	return user, nil
}

// addRole inserts a role membership; an existing membership is a no-op.
func addRole(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		userID, role,
	)
	if err != nil {
		return database.MapPostgresError(err)
	}
	return nil
}

// AddRoleTx grants a role inside a caller-owned transaction.
func (r *UserRepository) AddRoleTx(ctx context.Context, tx pgx.Tx, userID string, role models.RoleID) error {
	return addRole(ctx, tx, userID, role)
}

// SetResetToken stores the reset token and its expiry on the user.
func (r *UserRepository) SetResetToken(ctx context.Context, userID, token string, expiry time.Time) error {
	query := `UPDATE users SET reset_token = $1, reset_token_expiry = $2, updated_at = $3 WHERE id = $4`

	result, err := r.pool.Exec(ctx, query, token, expiry, time.Now(), userID)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetByResetToken finds the user holding an unexpired reset token.
func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE reset_token = $1 AND reset_token_expiry > $2`

	user, err := scanUserRow(r.pool.QueryRow(ctx, query, token, time.Now()))
	if err != nil {
		return nil, err
	}

	if err := r.loadRoles(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// UpdatePasswordAndClearResetToken stores the new password hash and clears
// both reset fields in a single statement so the token cannot be replayed.
func (r *UserRepository) UpdatePasswordAndClearResetToken(ctx context.Context, userID, passwordHash string) error {
	query := `
		UPDATE users
		SET password_hash = $1, reset_token = NULL, reset_token_expiry = NULL, updated_at = $2
		WHERE id = $3
	`

	result, err := r.pool.Exec(ctx, query, passwordHash, time.Now(), userID)
	if err != nil {
		return database.MapPostgresError(err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
