package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/venturegrill/api/internal/database"
	"github.com/venturegrill/api/internal/models"
	"github.com/venturegrill/api/internal/queue"
	"github.com/venturegrill/api/internal/request"
)

// mockGateway implements database.Gateway with overridable functions
type mockGateway struct {
	upsertUserFunc     func(ctx context.Context, p database.UpsertParams) (uuid.UUID, bool)
	logLoginEventFunc  func(ctx context.Context, userID uuid.UUID, provider string, ipAddress, userAgent *string)
	getUserByEmailFunc func(ctx context.Context, email string) (*models.User, bool)
	saveRoastFunc      func(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool)
	getStatsFunc       func(ctx context.Context) (*models.RoastStats, bool)
	healthCheckFunc    func(ctx context.Context) bool
}

func (m *mockGateway) UpsertUser(ctx context.Context, p database.UpsertParams) (uuid.UUID, bool) {
	if m.upsertUserFunc != nil {
		return m.upsertUserFunc(ctx, p)
	}
	return uuid.Nil, false
}

func (m *mockGateway) LogLoginEvent(ctx context.Context, userID uuid.UUID, provider string, ipAddress, userAgent *string) {
	if m.logLoginEventFunc != nil {
		m.logLoginEventFunc(ctx, userID, provider, ipAddress, userAgent)
	}
}

func (m *mockGateway) GetUserByEmail(ctx context.Context, email string) (*models.User, bool) {
	if m.getUserByEmailFunc != nil {
		return m.getUserByEmailFunc(ctx, email)
	}
	return nil, false
}

func (m *mockGateway) SaveRoast(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool) {
	if m.saveRoastFunc != nil {
		return m.saveRoastFunc(ctx, req, resp, userID)
	}
	return nil, false
}

func (m *mockGateway) GetStats(ctx context.Context) (*models.RoastStats, bool) {
	if m.getStatsFunc != nil {
		return m.getStatsFunc(ctx)
	}
	return nil, false
}

func (m *mockGateway) HealthCheck(ctx context.Context) bool {
	if m.healthCheckFunc != nil {
		return m.healthCheckFunc(ctx)
	}
	return false
}

// mockRoaster implements ai.Provider
type mockRoaster struct {
	generateFunc func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error)
}

func (m *mockRoaster) GenerateRoast(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
	return m.generateFunc(ctx, req)
}

// mockPublisher implements queue.Publisher
type mockPublisher struct {
	published []*queue.RoastCreatedEvent
	err       error
}

func (m *mockPublisher) PublishRoastCreated(ctx context.Context, event *queue.RoastCreatedEvent) error {
	m.published = append(m.published, event)
	return m.err
}

func (m *mockPublisher) Close() error { return nil }

func sampleRoastRequest() models.RoastRequest {
	return models.RoastRequest{
		StartupName:     "Uber for Pigeons",
		IdeaDescription: "On-demand pigeon delivery for urban areas",
		TargetUsers:     "City dwellers who distrust drones",
		Budget:          "$50k",
		RoastLevel:      models.RoastLevelNuclear,
	}
}

func sampleRoastResponse() *models.RoastResponse {
	return &models.RoastResponse{
		BrutalRoast:            "Pigeons cannot carry packages.",
		HonestFeedback:         "Logistics is hard even without birds.",
		CompetitorRealityCheck: "Every courier company, plus gravity.",
		SurvivalTips:           []string{"Pivot to drones"},
		PitchRewrite:           "A last-mile delivery experiment.",
	}
}

func postRoast(t *testing.T, h *RoastHandler, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("Failed to encode body: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/roast", &buf)
	rec := httptest.NewRecorder()
	h.CreateRoast(rec, req)
	return rec
}

func TestCreateRoast_Success(t *testing.T) {
	t.Parallel()

	roastID := uuid.New()
	saved := false
	store := &mockGateway{
		saveRoastFunc: func(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool) {
			saved = true
			if userID != nil {
				t.Error("Expected anonymous roast, got user id")
			}
			return &models.Roast{
				ID:            roastID,
				RoastRequest:  *req,
				RoastResponse: *resp,
				CreatedAt:     time.Now().UTC(),
			}, true
		},
	}
	roaster := &mockRoaster{
		generateFunc: func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
			return sampleRoastResponse(), nil
		},
	}
	publisher := &mockPublisher{}

	h := NewRoastHandler(roaster, store, publisher, nil)
	rec := postRoast(t, h, sampleRoastRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !saved {
		t.Error("Expected roast to be saved")
	}
	if len(publisher.published) != 1 {
		t.Fatalf("Expected 1 published event, got %d", len(publisher.published))
	}
	if publisher.published[0].RoastID != roastID {
		t.Error("Published event carries wrong roast id")
	}
	if !strings.Contains(rec.Body.String(), `"persisted":true`) {
		t.Errorf("Expected persisted=true in body: %s", rec.Body.String())
	}
}

func TestCreateRoast_SaveFailureStillServesRoast(t *testing.T) {
	t.Parallel()

	store := &mockGateway{} // SaveRoast returns (nil, false)
	roaster := &mockRoaster{
		generateFunc: func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
			return sampleRoastResponse(), nil
		},
	}
	publisher := &mockPublisher{}

	h := NewRoastHandler(roaster, store, publisher, nil)
	rec := postRoast(t, h, sampleRoastRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200 despite save failure, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"persisted":false`) {
		t.Errorf("Expected persisted=false in body: %s", rec.Body.String())
	}
	if len(publisher.published) != 0 {
		t.Error("Expected no event when save fails")
	}
}

func TestCreateRoast_AttachesUserFromContext(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	var gotUserID *uuid.UUID
	store := &mockGateway{
		saveRoastFunc: func(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, uid *uuid.UUID) (*models.Roast, bool) {
			gotUserID = uid
			return &models.Roast{ID: uuid.New(), UserID: uid}, true
		},
	}
	roaster := &mockRoaster{
		generateFunc: func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
			return sampleRoastResponse(), nil
		},
	}

	h := NewRoastHandler(roaster, store, nil, nil)

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(sampleRoastRequest()); err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/roast", &buf)
	req = req.WithContext(request.WithUser(req.Context(), &models.User{ID: userID}))
	rec := httptest.NewRecorder()
	h.CreateRoast(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if gotUserID == nil || *gotUserID != userID {
		t.Errorf("Expected roast saved with user %s, got %v", userID, gotUserID)
	}
}

func TestCreateRoast_BadRequests(t *testing.T) {
	t.Parallel()

	invalid := sampleRoastRequest()
	invalid.RoastLevel = "Scorching"

	missing := sampleRoastRequest()
	missing.StartupName = ""

	tests := []struct {
		name string
		body any
	}{
		{name: "malformed json", body: "{not json"},
		{name: "unknown roast level", body: invalid},
		{name: "missing startup name", body: missing},
	}

	roaster := &mockRoaster{
		generateFunc: func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
			t.Error("Roaster should not be called for invalid input")
			return nil, nil
		},
	}
	h := NewRoastHandler(roaster, &mockGateway{}, nil, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRoast(t, h, tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", rec.Code)
			}
		})
	}
}

func TestCreateRoast_GenerationFailure(t *testing.T) {
	t.Parallel()

	store := &mockGateway{
		saveRoastFunc: func(ctx context.Context, req *models.RoastRequest, resp *models.RoastResponse, userID *uuid.UUID) (*models.Roast, bool) {
			t.Error("SaveRoast should not be called when generation fails")
			return nil, false
		},
	}
	roaster := &mockRoaster{
		generateFunc: func(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error) {
			return nil, errors.New("model overloaded")
		},
	}

	h := NewRoastHandler(roaster, store, nil, nil)
	rec := postRoast(t, h, sampleRoastRequest())

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "model overloaded") {
		t.Error("Internal error detail leaked to client")
	}
}

func TestGetStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		stats      *models.RoastStats
		ok         bool
		wantStatus int
	}{
		{
			name: "available",
			stats: &models.RoastStats{
				TotalRoasts: 42,
				RoastLevels: map[models.RoastLevel]int64{
					models.RoastLevelSoft:    10,
					models.RoastLevelMedium:  20,
					models.RoastLevelNuclear: 12,
				},
				LastUpdated: time.Now().UTC(),
			},
			ok:         true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "unavailable",
			ok:         false,
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := &mockGateway{
				getStatsFunc: func(ctx context.Context) (*models.RoastStats, bool) {
					return tt.stats, tt.ok
				},
			}
			h := NewStatsHandler(store)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
			rec := httptest.NewRecorder()
			h.GetStats(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if tt.ok && !strings.Contains(rec.Body.String(), `"total_roasts":42`) {
				t.Errorf("Expected total in body: %s", rec.Body.String())
			}
		})
	}
}

func TestHealthCheck_Basic(t *testing.T) {
	t.Parallel()

	// Basic mode never touches the store
	h := NewHealthChecker(&mockGateway{
		healthCheckFunc: func(ctx context.Context) bool {
			t.Error("Store should not be probed in basic mode")
			return false
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
}

func TestHealthCheck_Extended(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		healthy    bool
		wantStatus int
		wantCheck  string
	}{
		{name: "database healthy", healthy: true, wantStatus: http.StatusOK, wantCheck: `"database":"healthy"`},
		{name: "database unhealthy", healthy: false, wantStatus: http.StatusServiceUnavailable, wantCheck: `"database":"unhealthy"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := NewHealthChecker(&mockGateway{
				healthCheckFunc: func(ctx context.Context) bool { return tt.healthy },
			})

			req := httptest.NewRequest(http.MethodGet, "/healthz?mode=extended", nil)
			rec := httptest.NewRecorder()
			h.HealthCheck(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.wantCheck) {
				t.Errorf("Expected %s in body: %s", tt.wantCheck, rec.Body.String())
			}
		})
	}
}
