package auth

import (
	"context"
	"fmt"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims are the identity fields extracted from a verified ID token
type Claims struct {
	Sub     string
	Email   string
	Name    string
	Picture string
}

// Verifier verifies ID tokens against a key source, issuer and audience
type Verifier struct {
	keys     KeySource
	issuers  []string
	audience string
}

// NewVerifier creates an ID token verifier. Any of the given issuers is
// accepted; Google emits both the bare and https-prefixed form.
func NewVerifier(keys KeySource, audience string, issuers ...string) *Verifier {
	return &Verifier{
		keys:     keys,
		issuers:  issuers,
		audience: audience,
	}
}

// Verify checks the token signature, expiry, issuer and audience, and
// returns the identity claims
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Claims, error) {
	keys, err := v.keys.Keys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification keys: %w", err)
	}

	token, err := jwt.Parse([]byte(rawToken), jwt.WithKeySet(keys), jwt.WithValidate(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse/verify token: %w", err)
	}

	if !v.issuerAllowed(token.Issuer()) {
		return nil, fmt.Errorf("token issuer not allowed: %s", token.Issuer())
	}

	if v.audience != "" && !contains(token.Audience(), v.audience) {
		return nil, fmt.Errorf("token audience mismatch")
	}

	claims := &Claims{Sub: token.Subject()}
	if claims.Sub == "" {
		return nil, fmt.Errorf("token missing subject claim")
	}

	if email, ok := token.Get("email"); ok {
		if s, ok := email.(string); ok {
			claims.Email = s
		}
	}
	if name, ok := token.Get("name"); ok {
		if s, ok := name.(string); ok {
			claims.Name = s
		}
	}
	if picture, ok := token.Get("picture"); ok {
		if s, ok := picture.(string); ok {
			claims.Picture = s
		}
	}

	return claims, nil
}

func (v *Verifier) issuerAllowed(issuer string) bool {
	if len(v.issuers) == 0 {
		return true
	}
	return contains(v.issuers, issuer)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
