package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/venturegrill/api/internal/database"
	"github.com/venturegrill/api/internal/models"
	"github.com/venturegrill/api/internal/queue"
	"github.com/venturegrill/api/internal/request"
	"github.com/venturegrill/api/internal/services/ai"
	"github.com/venturegrill/api/internal/validation"
	"go.uber.org/zap"
)

// RoastHandler generates and stores roasts
type RoastHandler struct {
	roaster   ai.Provider
	store     database.Gateway
	publisher queue.Publisher
	logger    *zap.Logger
}

// NewRoastHandler creates a new roast handler. The publisher may be nil when
// eventing is not configured.
func NewRoastHandler(roaster ai.Provider, store database.Gateway, publisher queue.Publisher, logger *zap.Logger) *RoastHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoastHandler{
		roaster:   roaster,
		store:     store,
		publisher: publisher,
		logger:    logger,
	}
}

// RegisterRoutes registers roast routes on the given router.
// The router should already have the /api/v1 prefix.
func (h *RoastHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/roast", h.CreateRoast).Methods("POST")
}

// roastReply is the response body for a generated roast
type roastReply struct {
	*models.RoastResponse
	RoastID   *uuid.UUID        `json:"roast_id,omitempty"`
	Level     models.RoastLevel `json:"roast_level"`
	Persisted bool              `json:"persisted"`
}

// CreateRoast handles POST /api/v1/roast. The generated roast is always
// served once the AI call succeeds; storage is a side channel and its failure
// only shows up as persisted=false.
func (h *RoastHandler) CreateRoast(w http.ResponseWriter, r *http.Request) {
	var req models.RoastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	req.StartupName = validation.SanitizeText(req.StartupName)
	req.IdeaDescription = validation.SanitizeText(req.IdeaDescription)
	req.TargetUsers = validation.SanitizeText(req.TargetUsers)
	req.Budget = validation.SanitizeText(req.Budget)

	if err := validation.Validate.Struct(&req); err != nil {
		respondJSONError(w, http.StatusBadRequest, "Validation failed", err.Error())
		return
	}

	resp, err := h.roaster.GenerateRoast(r.Context(), &req)
	if err != nil {
		h.logger.Error("failed_to_generate_roast",
			zap.String("startup_name", req.StartupName),
			zap.String("roast_level", string(req.RoastLevel)),
			zap.Error(err),
		)
		respondJSONError(w, http.StatusBadGateway, "Roast generation failed", "The roast engine is unavailable")
		return
	}

	var userID *uuid.UUID
	if user := request.UserFromContext(r); user != nil {
		userID = &user.ID
	}

	reply := roastReply{
		RoastResponse: resp,
		Level:         req.RoastLevel,
	}

	if roast, ok := h.store.SaveRoast(r.Context(), &req, resp, userID); ok {
		reply.RoastID = &roast.ID
		reply.Persisted = true
		h.publishRoastCreated(r, roast)
	}

	respondJSON(w, http.StatusOK, reply)
}

// publishRoastCreated emits the analytics event for a stored roast.
// Publish failures are logged and dropped.
func (h *RoastHandler) publishRoastCreated(r *http.Request, roast *models.Roast) {
	if h.publisher == nil {
		return
	}

	event := &queue.RoastCreatedEvent{
		RoastID:     roast.ID,
		StartupName: roast.StartupName,
		RoastLevel:  roast.RoastLevel,
		UserID:      roast.UserID,
		CreatedAt:   roast.CreatedAt,
	}

	if err := h.publisher.PublishRoastCreated(r.Context(), event); err != nil {
		h.logger.Warn("failed_to_publish_roast_created",
			zap.String("roast_id", roast.ID.String()),
			zap.Error(err),
		)
	}
}
