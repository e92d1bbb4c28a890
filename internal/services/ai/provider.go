package ai

import (
	"context"

	"github.com/venturegrill/api/internal/models"
)

// Provider generates roast responses from pitch requests. The HTTP layer
// depends on this interface so tests can swap in a canned generator.
type Provider interface {
	GenerateRoast(ctx context.Context, req *models.RoastRequest) (*models.RoastResponse, error)
}
