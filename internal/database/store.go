package database

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/venturegrill/api/internal/models"
	"go.uber.org/zap"
)

// Gateway is the persistence boundary the rest of the application sees.
// No method returns an error: every fallible operation reports failure as a
// not-found result, so persistence can never block the caller's primary
// response. The one exception is construction, which fails fast at startup.
type Gateway interface {
	UpsertUser(ctx context.Context, p UpsertParams) (uuid.UUID, bool)
	LogLoginEvent(ctx context.Context, userID uuid.UUID, provider string, ipAddress, userAgent *string)
	GetUserByEmail(ctx context.Context, email string) (*models.User, bool)
	SaveRoast(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool)
	GetStats(ctx context.Context) (*models.RoastStats, bool)
	HealthCheck(ctx context.Context) bool
}

// Store implements Gateway over the table repositories. It converts every
// repository error into the fail-soft result after logging it with input
// context; errors never cross this boundary.
type Store struct {
	users  *UserRepository
	logins *LoginEventRepository
	roasts *RoastRepository
	logger *zap.Logger
}

var _ Gateway = (*Store)(nil)

// NewStore creates the gateway over a shared DB handle
func NewStore(db *DB, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		users:  NewUserRepository(db),
		logins: NewLoginEventRepository(db),
		roasts: NewRoastRepository(db),
		logger: logger,
	}
}

// UpsertUser creates or refreshes a user row keyed on (provider_id, provider)
// and returns its id. An empty provider defaults to google. Failure returns
// (uuid.Nil, false); callers treat that as "could not confirm identity".
func (s *Store) UpsertUser(ctx context.Context, p UpsertParams) (uuid.UUID, bool) {
	if p.Provider == "" {
		p.Provider = models.DefaultProvider
	}

	id, err := s.users.Upsert(ctx, p)
	if err != nil {
		s.logger.Error("failed_to_upsert_user",
			zap.String("email", p.Email),
			zap.String("provider", p.Provider),
			zap.String("provider_id", p.ProviderID),
			zap.Error(err),
		)
		return uuid.Nil, false
	}

	s.logger.Info("user_upserted",
		zap.String("user_id", id.String()),
		zap.String("provider", p.Provider),
	)
	return id, true
}

// LogLoginEvent appends a success audit row with the current timestamp.
// All errors are swallowed: audit writes must never fail a login.
func (s *Store) LogLoginEvent(ctx context.Context, userID uuid.UUID, provider string, ipAddress, userAgent *string) {
	event := &models.LoginEvent{
		UserID:    userID,
		Provider:  provider,
		Success:   true,
		Timestamp: time.Now().UTC(),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	if err := s.logins.Insert(ctx, event); err != nil {
		s.logger.Error("failed_to_log_login_event",
			zap.String("user_id", userID.String()),
			zap.String("provider", provider),
			zap.Error(err),
		)
	}
}

// GetUserByEmail is a point lookup. Zero matching rows and store errors both
// map to (nil, false); the caller cannot tell them apart.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, bool) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("failed_to_get_user_by_email",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, false
	}
	return user, true
}

// SaveRoast stores one immutable roast row. The generated response is still
// served to the end user when this fails; persistence is a side channel.
func (s *Store) SaveRoast(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool) {
	roast, err := s.roasts.Insert(ctx, req, resp, userID)
	if err != nil {
		s.logger.Error("failed_to_save_roast",
			zap.String("startup_name", req.StartupName),
			zap.String("roast_level", string(req.RoastLevel)),
			zap.Bool("anonymous", userID == nil),
			zap.Error(err),
		)
		return nil, false
	}
	return roast, true
}

// GetStats computes the total roast count plus one count per roast level.
// All-or-nothing: any failed count query drops the whole snapshot.
func (s *Store) GetStats(ctx context.Context) (*models.RoastStats, bool) {
	total, err := s.roasts.CountAll(ctx)
	if err != nil {
		s.logger.Error("failed_to_get_roast_stats", zap.Error(err))
		return nil, false
	}

	levels := make(map[models.RoastLevel]int64, len(models.RoastLevels()))
	for _, level := range models.RoastLevels() {
		count, err := s.roasts.CountByLevel(ctx, level)
		if err != nil {
			s.logger.Error("failed_to_get_roast_stats",
				zap.String("roast_level", string(level)),
				zap.Error(err),
			)
			return nil, false
		}
		levels[level] = count
	}

	return &models.RoastStats{
		TotalRoasts: total,
		RoastLevels: levels,
		LastUpdated: time.Now().UTC(),
	}, true
}

// HealthCheck reports whether a minimal read against the roasts table
// completes without error
func (s *Store) HealthCheck(ctx context.Context) bool {
	if err := s.roasts.ProbeOne(ctx); err != nil {
		s.logger.Error("database_health_check_failed", zap.Error(err))
		return false
	}
	return true
}
