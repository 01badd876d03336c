package geo

import (
	"errors"
	"fmt"
	"math"

	"github.com/UnknownOlympus/geotourist/internal/models"
)

// EarthRadiusMeters is the mean Earth radius used by the great-circle model.
const EarthRadiusMeters = 6_371_007.2

// ErrInvalidCoordinate is returned for a latitude outside [-90,90], a longitude outside
// [-180,180], or a NaN component. Coordinates are never clamped.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// ValidateCoordinates checks that both components of c are in range.
func ValidateCoordinates(c models.Coordinates) error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v", ErrInvalidCoordinate, c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v", ErrInvalidCoordinate, c.Longitude)
	}
	return nil
}

// Distance returns the great-circle distance in meters between a and b using the
// haversine formula on a sphere of radius EarthRadiusMeters.
func Distance(a, b models.Coordinates) (float64, error) {
	if err := ValidateCoordinates(a); err != nil {
		return 0, err
	}
	if err := ValidateCoordinates(b); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	// Squared terms keep the result symmetric in a and b.
	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h)), nil
}
