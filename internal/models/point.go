package models

// PointOfInterest is a single stored place the user can be shown.
// Records are created by the bootstrap script or by external data management
// and are never mutated by the query path.
type PointOfInterest struct {
	ID          int64   `json:"id"`                   // ID is the stable unique identifier of the point.
	Name        string  `json:"name"`                 // Name is the display name.
	Description string  `json:"description"`          // Description is free text shown with the point.
	Address     string  `json:"address,omitempty"`    // Address is empty for rows created before the address column existed.
	Latitude    float64 `json:"latitude"`             // Latitude of the point.
	Longitude   float64 `json:"longitude"`            // Longitude of the point.
	ImagePath   string  `json:"image_path,omitempty"` // ImagePath is an opaque image reference resolved by the presentation layer.
}

// Coordinates returns the position of the point.
func (p PointOfInterest) Coordinates() Coordinates {
	return Coordinates{Latitude: p.Latitude, Longitude: p.Longitude}
}

// NearbyResult pairs a point with its distance in meters from the fix it was computed against.
type NearbyResult struct {
	Point    PointOfInterest `json:"point"`
	Distance float64         `json:"distance"`
}

// Presentation is what the presentation layer should show.
// A nil Result means there are no nearby points.
type Presentation struct {
	Result *NearbyResult `json:"result"`
}

// HasPoint reports whether the presentation carries a point.
func (p Presentation) HasPoint() bool {
	return p.Result != nil
}

// NoNearbyPoints is the presentation emitted when the candidate set is empty.
func NoNearbyPoints() Presentation {
	return Presentation{}
}

// Present builds a presentation for the given result.
func Present(result NearbyResult) Presentation {
	return Presentation{Result: &result}
}
