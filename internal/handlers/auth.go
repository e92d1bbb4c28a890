package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/venturegrill/api/internal/database"
	"github.com/venturegrill/api/internal/request"
	"github.com/venturegrill/api/internal/services/auth"
	"go.uber.org/zap"
)

const stateCookieName = "oauth_state"

// AuthHandler handles the Google login flow
type AuthHandler struct {
	google *auth.Google
	store  database.Gateway
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(google *auth.Google, store database.Gateway, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{google: google, store: store, logger: logger}
}

// RegisterRoutes registers auth routes on the given router.
// The router should already have the /api/v1/auth prefix.
func (h *AuthHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/google/login", h.GetGoogleLogin).Methods("GET")
	r.HandleFunc("/google/callback", h.GetGoogleCallback).Methods("GET")
	r.HandleFunc("/me", h.GetMe).Methods("GET")
}

// GetGoogleLogin returns the Google consent URL and sets the state cookie
func (h *AuthHandler) GetGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state, err := randomState()
	if err != nil {
		respondJSONError(w, http.StatusInternalServerError, "Failed to start login", "Could not generate state token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respondJSON(w, http.StatusOK, map[string]string{
		"auth_url": h.google.AuthCodeURL(state),
	})
}

// GetGoogleCallback exchanges the authorization code, verifies the ID token
// and records the login. Persistence problems surface as a service error; a
// bad code or state is the caller's fault.
func (h *AuthHandler) GetGoogleCallback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	cookie, err := r.Cookie(stateCookieName)
	if err != nil || state == "" || cookie.Value != state {
		respondJSONError(w, http.StatusBadRequest, "Invalid state", "State token missing or mismatched")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		respondJSONError(w, http.StatusBadRequest, "Missing code", "Authorization code is required")
		return
	}

	claims, err := h.google.Authenticate(r.Context(), code)
	if err != nil {
		h.logger.Warn("google_authentication_failed", zap.Error(err))
		respondJSONError(w, http.StatusUnauthorized, "Authentication failed", "Could not verify Google identity")
		return
	}

	userID, ok := h.store.UpsertUser(r.Context(), database.UpsertParams{
		Email:      claims.Email,
		Name:       claims.Name,
		ProviderID: claims.Sub,
		Picture:    optional(claims.Picture),
	})
	if !ok {
		respondJSONError(w, http.StatusServiceUnavailable, "Login unavailable", "Could not establish user session")
		return
	}

	// Audit write, best effort
	h.store.LogLoginEvent(r.Context(), userID, "google", optional(request.ClientIP(r)), request.UserAgent(r))

	respondJSON(w, http.StatusOK, map[string]any{
		"user_id": userID,
		"email":   claims.Email,
		"name":    claims.Name,
		"picture": claims.Picture,
	})
}

// GetMe returns the user row for the email in the verified session.
// Lookup failure and no-such-user produce the same 404.
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	sessionUser := request.UserFromContext(r)
	if sessionUser == nil {
		respondJSONError(w, http.StatusUnauthorized, "Unauthorized", "User not found in context")
		return
	}

	user, ok := h.store.GetUserByEmail(r.Context(), sessionUser.Email)
	if !ok {
		respondJSONError(w, http.StatusNotFound, "Not found", "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func randomState() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
