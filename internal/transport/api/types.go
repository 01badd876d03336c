package api

import (
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/notify"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

// Candidate is a nearby point as shown in list-style displays.
type Candidate struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     string  `json:"address,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ImagePath   string  `json:"image_path,omitempty"`
	Distance    float64 `json:"distance"`
	DistanceM   int64   `json:"distance_m"`
}

type CandidateListResponse struct {
	Items []Candidate `json:"items"`
}

// PresentationResponse carries the presented point, or null when no point is nearby.
type PresentationResponse struct {
	Point *Candidate `json:"point"`
}

type SelectionRequest struct {
	ID *int64 `json:"id"`
}

type RadiusRequest struct {
	Meters *float64 `json:"meters"`
}

type RadiusResponse struct {
	Meters float64 `json:"meters"`
}

type FixRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type LocationErrorRequest struct {
	Kind string `json:"kind"`
}

func candidateToResponse(r models.NearbyResult) Candidate {
	return Candidate{
		ID:          r.Point.ID,
		Name:        r.Point.Name,
		Description: r.Point.Description,
		Address:     r.Point.Address,
		Latitude:    r.Point.Latitude,
		Longitude:   r.Point.Longitude,
		ImagePath:   r.Point.ImagePath,
		Distance:    r.Distance,
		DistanceM:   notify.WholeMeters(r.Distance),
	}
}

func presentationToResponse(p models.Presentation) PresentationResponse {
	if !p.HasPoint() {
		return PresentationResponse{}
	}
	c := candidateToResponse(*p.Result)
	return PresentationResponse{Point: &c}
}
