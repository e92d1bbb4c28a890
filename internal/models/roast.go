package models

import (
	"time"

	"github.com/google/uuid"
)

// RoastLevel controls how harsh the generated critique is
type RoastLevel string

const (
	RoastLevelSoft    RoastLevel = "Soft"
	RoastLevelMedium  RoastLevel = "Medium"
	RoastLevelNuclear RoastLevel = "Nuclear"
)

// RoastLevels returns every known roast level, in severity order.
// Stats iterate this fixed set; add new levels here and nowhere else.
func RoastLevels() []RoastLevel {
	return []RoastLevel{RoastLevelSoft, RoastLevelMedium, RoastLevelNuclear}
}

// Valid reports whether the level is one of the known enum values
func (l RoastLevel) Valid() bool {
	switch l {
	case RoastLevelSoft, RoastLevelMedium, RoastLevelNuclear:
		return true
	default:
		return false
	}
}

// RoastRequest is the pitch a founder submits for roasting
type RoastRequest struct {
	StartupName     string     `json:"startup_name" validate:"required,max=200"`
	IdeaDescription string     `json:"idea_description" validate:"required,max=5000"`
	TargetUsers     string     `json:"target_users" validate:"required,max=1000"`
	Budget          string     `json:"budget" validate:"required,max=200"`
	RoastLevel      RoastLevel `json:"roast_level" validate:"required,roast_level"`
}

// RoastResponse is the generated critique returned to the founder
type RoastResponse struct {
	BrutalRoast            string   `json:"brutal_roast"`
	HonestFeedback         string   `json:"honest_feedback"`
	CompetitorRealityCheck string   `json:"competitor_reality_check"`
	SurvivalTips           []string `json:"survival_tips"`
	PitchRewrite           string   `json:"pitch_rewrite"`
}

// Roast is a stored roast record: the request, the generated response, and
// optionally the user who asked for it. UserID is nil for anonymous roasts.
type Roast struct {
	ID uuid.UUID `json:"id"`
	RoastRequest
	RoastResponse
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
