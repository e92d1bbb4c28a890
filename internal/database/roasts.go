package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/venturegrill/api/internal/models"
)

// RoastRepository handles roast database operations
type RoastRepository struct {
	db *DB
}

// NewRoastRepository creates a new roast repository
func NewRoastRepository(db *DB) *RoastRepository {
	return &RoastRepository{db: db}
}

// Insert stores one immutable roast row combining the request and the
// generated response. userID may be nil for anonymous roasts.
func (r *RoastRepository) Insert(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, error) {
	query := `
		INSERT INTO roasts (id, startup_name, idea_description, target_users, budget, roast_level,
			brutal_roast, honest_feedback, competitor_reality_check, survival_tips, pitch_rewrite,
			user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	tipsJSON, err := json.Marshal(resp.SurvivalTips)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal survival_tips: %w", err)
	}

	var owner uuid.NullUUID
	if userID != nil {
		owner = uuid.NullUUID{UUID: *userID, Valid: true}
	}

	roast := &models.Roast{
		RoastRequest:  *req,
		RoastResponse: *resp,
		UserID:        userID,
	}

	err = r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.StartupName,
		req.IdeaDescription,
		req.TargetUsers,
		req.Budget,
		req.RoastLevel,
		resp.BrutalRoast,
		resp.HonestFeedback,
		resp.CompetitorRealityCheck,
		tipsJSON,
		resp.PitchRewrite,
		owner,
		time.Now().UTC(),
	).Scan(&roast.ID, &roast.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to insert roast: %w", err)
	}

	return roast, nil
}

// CountAll returns the total number of stored roasts
func (r *RoastRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roasts`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roasts: %w", err)
	}
	return count, nil
}

// CountByLevel returns the number of stored roasts for one roast level
func (r *RoastRepository) CountByLevel(ctx context.Context, level models.RoastLevel) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM roasts WHERE roast_level = $1`, level).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count roasts for level %s: %w", level, err)
	}
	return count, nil
}

// ProbeOne issues a bounded single-row read against the roasts table.
// An empty table is healthy; only a store error counts as failure.
func (r *RoastRepository) ProbeOne(ctx context.Context) error {
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, `SELECT id FROM roasts LIMIT 1`).Scan(&id)
	if err != nil && err != sql.ErrNoRows {
		return fmt.Errorf("health probe failed: %w", err)
	}
	return nil
}
