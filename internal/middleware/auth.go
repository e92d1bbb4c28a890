package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/venturegrill/api/internal/database"
	"github.com/venturegrill/api/internal/models"
	"github.com/venturegrill/api/internal/request"
	"github.com/venturegrill/api/internal/services/auth"
	"go.uber.org/zap"
)

// TokenVerifier verifies a raw bearer token and returns identity claims
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Claims, error)
}

// Auth validates the Authorization header when one is present and attaches
// the resolved user to the request context. Requests without a header pass
// through anonymously; roasting does not require an account.
func Auth(verifier TokenVerifier, store database.Gateway, logger *zap.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondError(w, r, http.StatusUnauthorized, "Invalid Authorization header format")
				return
			}

			claims, err := verifier.Verify(r.Context(), parts[1])
			if err != nil {
				logger.Warn("token_verification_failed", zap.Error(err))
				respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			// Same get-or-create the login callback performs; repeated calls
			// resolve to the same (provider_id, provider) row.
			userID, ok := store.UpsertUser(r.Context(), database.UpsertParams{
				Email:      claims.Email,
				Name:       claims.Name,
				ProviderID: claims.Sub,
				Picture:    optionalString(claims.Picture),
			})
			if !ok {
				respondError(w, r, http.StatusServiceUnavailable, "Could not establish user session")
				return
			}

			user := &models.User{
				ID:         userID,
				ProviderID: claims.Sub,
				Email:      claims.Email,
				Name:       optionalString(claims.Name),
				Picture:    optionalString(claims.Picture),
				Provider:   models.DefaultProvider,
			}

			next.ServeHTTP(w, r.WithContext(request.WithUser(r.Context(), user)))
		})
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := ErrorResponse{
		Success:   false,
		Error:     http.StatusText(status),
		Message:   message,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		_ = err
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
