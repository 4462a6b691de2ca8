package integration

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/samuel890456/HogarPeludo-sub001/internal/database"
	"github.com/samuel890456/HogarPeludo-sub001/internal/models"
	"github.com/samuel890456/HogarPeludo-sub001/internal/repositories"
	"github.com/samuel890456/HogarPeludo-sub001/pkg/auth"
)

// TestDB manages the PostgreSQL testcontainer and database handles
type TestDB struct {
	Container  testcontainers.Container
	ConnString string
	Pool       *pgxpool.Pool
	DB         *database.DB
}

// SetupTestDatabase starts a PostgreSQL container, runs all migrations and
// returns the handles wrapped for the repository layer.
func SetupTestDatabase(ctx context.Context) (*TestDB, error) {
	container, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("hogar_peludo"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		container.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &TestDB{
		Container:  container,
		ConnString: connStr,
		Pool:       pool,
		DB:         database.NewFromPool(pool, logger),
	}, nil
}

// runMigrations executes all goose migrations against the container
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir, err := filepath.Abs("../../migrations")
	if err != nil {
		return fmt.Errorf("failed to get migrations path: %w", err)
	}

	goose.SetLogger(log.New(io.Discard, "", 0))

	// Goose needs a database/sql connection; use the pgx stdlib adapter
	sqlDB := stdlib.OpenDB(*pool.Config().ConnConfig)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, migrationsDir); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Teardown stops the container and closes the connection pool
func (db *TestDB) Teardown(ctx context.Context) error {
	if db.Pool != nil {
		db.Pool.Close()
	}
	if db.Container != nil {
		return db.Container.Terminate(ctx)
	}
	return nil
}

// CleanupTables truncates all mutable tables for test isolation. The seeded
// roles table is left alone.
func (db *TestDB) CleanupTables(ctx context.Context) error {
	tables := []string{
		"notificaciones",
		"solicitudes_rol",
		"solicitudes_adopcion",
		"mascotas",
		"user_roles",
		"users",
	}

	for _, table := range tables {
		if _, err := db.Pool.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return nil
}

// InitializeRepositories creates all repository instances from the wrapper
func InitializeRepositories(db *database.DB) (
	*repositories.UserRepository,
	*repositories.PetRepository,
	*repositories.AdoptionRequestRepository,
	*repositories.RoleRequestRepository,
	*repositories.NotificationRepository,
) {
	return repositories.NewUserRepository(db),
		repositories.NewPetRepository(db),
		repositories.NewAdoptionRequestRepository(db),
		repositories.NewRoleRequestRepository(db),
		repositories.NewNotificationRepository(db)
}

// SeedUser inserts a user with a hashed password and the given roles
func SeedUser(ctx context.Context, pool *pgxpool.Pool, nombre, email, password string, roles ...models.RoleID) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if len(roles) == 0 {
		roles = models.DefaultRoles()
	}

	id := uuid.New().String()
	query := `
		INSERT INTO users (id, nombre, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nombre, email, password_hash, activo, estado, created_at
	`

	var user models.User
	err = pool.QueryRow(ctx, query, id, nombre, email, hashedPassword).Scan(
		&user.ID,
		&user.Nombre,
		&user.Email,
		&user.PasswordHash,
		&user.Activo,
		&user.Estado,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	for _, role := range roles {
		if _, err := pool.Exec(ctx,
			`INSERT INTO user_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, role); err != nil {
			return nil, fmt.Errorf("failed to assign role %d: %w", role, err)
		}
	}
	user.Roles = roles

	return &user, nil
}

// BlockUser flips a seeded user to the bloqueado state
func BlockUser(ctx context.Context, pool *pgxpool.Pool, userID string) error {
	_, err := pool.Exec(ctx, `UPDATE users SET estado = 'bloqueado' WHERE id = $1`, userID)
	return err
}

// SeedPet inserts a pet owned by the given user
func SeedPet(ctx context.Context, pool *pgxpool.Pool, nombre, especie, ownerID string) (*models.Pet, error) {
	id := uuid.New().String()
	query := `
		INSERT INTO mascotas (id, nombre, especie, owner_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, nombre, especie, owner_user_id, created_at
	`

	var pet models.Pet
	err := pool.QueryRow(ctx, query, id, nombre, especie, ownerID).Scan(
		&pet.ID,
		&pet.Nombre,
		&pet.Especie,
		&pet.OwnerUserID,
		&pet.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert pet: %w", err)
	}

	return &pet, nil
}
