package models

import (
	"time"

	"github.com/google/uuid"
)

// LoginEvent is an append-only audit record of a login. Writing one is
// best-effort and never blocks the login flow.
type LoginEvent struct {
	UserID    uuid.UUID `json:"user_id"`
	Provider  string    `json:"provider"`
	Success   bool      `json:"success"`
	Timestamp time.Time `json:"timestamp"`
	IPAddress *string   `json:"ip_address,omitempty"`
	UserAgent *string   `json:"user_agent,omitempty"`
}
