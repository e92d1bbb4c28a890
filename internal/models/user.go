package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultProvider is the OAuth provider assumed when none is given.
const DefaultProvider = "google"

// User represents an authenticated user. Identity is keyed by the
// (provider_id, provider) composite; repeated logins update the same row.
type User struct {
	ID         uuid.UUID `json:"id"`
	ProviderID string    `json:"provider_id"`
	Email      string    `json:"email"`
	Name       *string   `json:"name,omitempty"`
	Picture    *string   `json:"picture,omitempty"`
	Provider   string    `json:"provider"`
	LastLogin  time.Time `json:"last_login"`
}
