package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// GoogleJWKSURL is Google's published signing key endpoint
	GoogleJWKSURL = "https://www.googleapis.com/oauth2/v3/certs"
)

// googleIssuers lists both issuer forms Google emits in ID tokens
var googleIssuers = []string{"https://accounts.google.com", "accounts.google.com"}

// Google handles the Google OAuth login flow: building the consent URL,
// exchanging the authorization code and verifying the returned ID token.
type Google struct {
	oauth    *oauth2.Config
	verifier *Verifier
}

// NewGoogle creates the Google authenticator
func NewGoogle(clientID, clientSecret, redirectURL string) *Google {
	return &Google{
		oauth: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		verifier: NewVerifier(NewJWKSCache(GoogleJWKSURL), clientID, googleIssuers...),
	}
}

// Verifier exposes the ID token verifier so middleware can check bearer
// tokens against the same keys and audience as the login callback
func (g *Google) Verifier() *Verifier {
	return g.verifier
}

// AuthCodeURL returns the consent page URL for the given state token
func (g *Google) AuthCodeURL(state string) string {
	return g.oauth.AuthCodeURL(state)
}

// Authenticate exchanges an authorization code and verifies the ID token,
// returning the user's identity claims
func (g *Google) Authenticate(ctx context.Context, code string) (*Claims, error) {
	token, err := g.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, fmt.Errorf("token response missing id_token")
	}

	return g.verifier.Verify(ctx, rawIDToken)
}
