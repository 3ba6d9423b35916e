package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dan9191/emi-service/internal/models"
	"github.com/goccy/go-json"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when a requested record does not exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a unique key is taken
	ErrAlreadyExists = errors.New("already exists")
)

const uniqueViolation = "23505"

const schema = `
	CREATE SCHEMA IF NOT EXISTS emi;
	CREATE TABLE IF NOT EXISTS emi.users (
		id            BIGSERIAL PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS emi.calculations (
		id         UUID PRIMARY KEY,
		payload    JSON NOT NULL,
		signature  TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);`

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the schema if it does not exist yet
func (r *Repository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO emi.users (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("email %s %w", user.Email, ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findUser(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM emi.users
		WHERE email = $1`, email)
}

// FindUserByID retrieves a user by id
func (r *Repository) FindUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.findUser(ctx, `
		SELECT id, username, email, password_hash, created_at
		FROM emi.users
		WHERE id = $1`, id)
}

func (r *Repository) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// SaveCalculation stores a signed calculation snapshot
func (r *Repository) SaveCalculation(ctx context.Context, calc *models.Calculation) error {
	payload, err := json.Marshal(calc)
	if err != nil {
		return fmt.Errorf("failed to encode calculation: %w", err)
	}
	query := `
		INSERT INTO emi.calculations (id, payload, signature, created_at)
		VALUES ($1, $2, $3, $4)`
	if _, err := r.db.ExecContext(ctx, query, calc.ID, string(payload), calc.Signature, calc.CreatedAt); err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

// FindCalculation retrieves a calculation snapshot by id
func (r *Repository) FindCalculation(ctx context.Context, id string) (*models.Calculation, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM emi.calculations WHERE id = $1`, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("calculation %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find calculation: %w", err)
	}

	calc := &models.Calculation{}
	if err := json.Unmarshal(payload, calc); err != nil {
		return nil, fmt.Errorf("failed to decode calculation: %w", err)
	}
	return calc, nil
}

// DeleteCalculation discards a stored calculation snapshot
func (r *Repository) DeleteCalculation(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM emi.calculations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete calculation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("calculation %w", ErrNotFound)
	}
	return nil
}
