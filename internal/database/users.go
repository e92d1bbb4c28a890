package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/venturegrill/api/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// UpsertParams carries the profile fields refreshed on every login
type UpsertParams struct {
	Email      string
	Name       string
	ProviderID string
	Picture    *string
	Provider   string
}

// Upsert inserts a user or, when the (provider_id, provider) pair already
// exists, refreshes the mutable columns. last_login is always set to now.
// Returns the row id either way.
func (r *UserRepository) Upsert(ctx context.Context, p UpsertParams) (uuid.UUID, error) {
	query := `
		INSERT INTO users (id, provider_id, email, name, picture, provider, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider_id, provider) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    picture = EXCLUDED.picture,
		    last_login = EXCLUDED.last_login
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		p.ProviderID,
		p.Email,
		p.Name,
		p.Picture,
		p.Provider,
		time.Now().UTC(),
	).Scan(&id)

	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	return id, nil
}

// GetByEmail retrieves the first user matching an email address
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	var name, picture sql.NullString

	query := `
		SELECT id, provider_id, email, name, picture, provider, last_login
		FROM users
		WHERE email = $1
		LIMIT 1
	`

	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.ProviderID,
		&user.Email,
		&name,
		&picture,
		&user.Provider,
		&user.LastLogin,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	if name.Valid {
		user.Name = &name.String
	}
	if picture.Valid {
		user.Picture = &picture.String
	}

	return user, nil
}
