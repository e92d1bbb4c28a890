package database

import (
	"context"
	"fmt"

	"github.com/venturegrill/api/internal/models"
)

// LoginEventRepository appends login audit records
type LoginEventRepository struct {
	db *DB
}

// NewLoginEventRepository creates a new login event repository
func NewLoginEventRepository(db *DB) *LoginEventRepository {
	return &LoginEventRepository{db: db}
}

// Insert appends one audit row. login_events is append-only; there are no
// update or delete operations on this table.
func (r *LoginEventRepository) Insert(ctx context.Context, event *models.LoginEvent) error {
	query := `
		INSERT INTO login_events (user_id, provider, success, timestamp, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		event.UserID,
		event.Provider,
		event.Success,
		event.Timestamp,
		event.IPAddress,
		event.UserAgent,
	)

	if err != nil {
		return fmt.Errorf("failed to insert login event: %w", err)
	}

	return nil
}
