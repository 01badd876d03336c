package geocoding

import (
	"context"

	"github.com/UnknownOlympus/geotourist/internal/models"
)

// Provider is an interface that defines a method for reverse geocoding a position.
// ReverseGeocode takes a context and coordinates as input and returns
// a human-readable address for them, or an error if none could be resolved.
type Provider interface {
	ReverseGeocode(ctx context.Context, coords models.Coordinates) (string, error)
}
