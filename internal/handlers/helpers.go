package handlers

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"success":   true,
		"data":      data,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}

// Backend details that must not reach clients: connection URLs carrying
// credentials (postgres, amqp, redis), OpenAI API keys, and Postgres
// SQLSTATE codes that identify schema internals.
var (
	credentialURLPattern = regexp.MustCompile(`(?i)\b(?:postgres|postgresql|amqps?|rediss?)://\S+`)
	openAIKeyPattern     = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}`)
	sqlStatePattern      = regexp.MustCompile(`\s*\(SQLSTATE [0-9A-Z]{5}\)`)
)

// sanitizeErrorMessage strips backend details from error text before it is
// sent to a client
func sanitizeErrorMessage(message string) string {
	sanitized := credentialURLPattern.ReplaceAllString(message, "[redacted]")
	sanitized = openAIKeyPattern.ReplaceAllString(sanitized, "[redacted]")
	sanitized = sqlStatePattern.ReplaceAllString(sanitized, "")
	sanitized = strings.TrimPrefix(sanitized, "pq: ")
	sanitized = strings.TrimSpace(sanitized)

	if len(sanitized) > 200 {
		sanitized = sanitized[:200] + "..."
	}

	return sanitized
}

// respondJSONError sends an error JSON response with sanitized error messages
func respondJSONError(w http.ResponseWriter, status int, errorType, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	sanitizedMessage := sanitizeErrorMessage(message)

	response := map[string]any{
		"success":   false,
		"error":     errorType,
		"message":   sanitizedMessage,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
