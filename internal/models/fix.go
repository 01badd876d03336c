package models

import "fmt"

// LocationFix is a single reported position. Only valid fixes can be queried against.
type LocationFix struct {
	Latitude  float64
	Longitude float64
	Valid     bool
}

// NewFix returns a valid fix for the given position.
func NewFix(lat, lng float64) LocationFix {
	return LocationFix{Latitude: lat, Longitude: lng, Valid: true}
}

// Coordinates returns the position of the fix.
func (f LocationFix) Coordinates() Coordinates {
	return Coordinates{Latitude: f.Latitude, Longitude: f.Longitude}
}

// LocationErrorKind classifies errors reported by a location source.
type LocationErrorKind string

const (
	// LocationErrorUnavailable means no position source exists on the device.
	LocationErrorUnavailable LocationErrorKind = "unavailable"
	// LocationErrorAccessDenied means the user denied access to positioning.
	LocationErrorAccessDenied LocationErrorKind = "access-denied"
	// LocationErrorClosed means the position source was closed.
	LocationErrorClosed LocationErrorKind = "closed"
	// LocationErrorUnknown covers every other positioning failure.
	LocationErrorUnknown LocationErrorKind = "unknown"
)

// ParseLocationErrorKind maps a wire value to a kind. Unrecognised values become LocationErrorUnknown.
func ParseLocationErrorKind(s string) LocationErrorKind {
	switch kind := LocationErrorKind(s); kind {
	case LocationErrorUnavailable, LocationErrorAccessDenied, LocationErrorClosed:
		return kind
	default:
		return LocationErrorUnknown
	}
}

// LocationError is an error notification emitted by a location source.
type LocationError struct {
	Kind LocationErrorKind
	Err  error
}

func (e LocationError) Error() string {
	msg := e.Kind.Message()
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e LocationError) Unwrap() error { return e.Err }

// Message returns the user-visible text for the kind.
func (k LocationErrorKind) Message() string {
	switch k {
	case LocationErrorUnavailable:
		return "Position source not available"
	case LocationErrorAccessDenied:
		return "Access to position information denied"
	case LocationErrorClosed:
		return "Position source closed"
	default:
		return "Unknown positioning error"
	}
}
