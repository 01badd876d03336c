// Package api exposes the engine to the presentation layer over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/UnknownOlympus/geotourist/internal/geo"
	"github.com/UnknownOlympus/geotourist/internal/location"
	"github.com/UnknownOlympus/geotourist/internal/models"
	"github.com/UnknownOlympus/geotourist/internal/service"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Controller is the engine surface used by the handlers. *service.Engine satisfies it.
type Controller interface {
	SetRadius(ctx context.Context, meters float64) (models.Presentation, error)
	SelectPoint(ctx context.Context, id int64) (models.Presentation, error)
	Candidates(ctx context.Context) ([]models.NearbyResult, error)
	Presented(ctx context.Context) (models.Presentation, error)
	Radius(ctx context.Context) (float64, error)
}

// FixSink accepts positions and location errors reported by the client. *location.PushSource satisfies it.
type FixSink interface {
	Push(coords models.Coordinates) error
	PushError(kind models.LocationErrorKind) error
}

// Pinger reports whether the point store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Error codes returned in ErrorResponse.Code.
const (
	CodeBadRequest         = "bad_request"
	CodeInvalidRadius      = "invalid_radius"
	CodeInvalidCoordinates = "invalid_coordinates"
	CodeStaleSelection     = "stale_selection"
	CodeUnavailable        = "unavailable"
	CodeQueryFailed        = "query_failed"
	CodeInternalError      = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error) bool

type Server struct {
	engine        Controller
	fixes         FixSink
	store         Pinger
	gatherer      prometheus.Gatherer
	log           *slog.Logger
	errorHandlers []errorHandler
}

func NewServer(engine Controller, fixes FixSink, store Pinger, gatherer prometheus.Gatherer, log *slog.Logger) *Server {
	s := &Server{
		engine:   engine,
		fixes:    fixes,
		store:    store,
		gatherer: gatherer,
		log:      log,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(models.ErrInvalidRadius, http.StatusBadRequest, CodeInvalidRadius),
		sentinelHandler(geo.ErrInvalidCoordinate, http.StatusBadRequest, CodeInvalidCoordinates),
		sentinelHandler(models.ErrStaleSelection, http.StatusConflict, CodeStaleSelection),
		sentinelHandler(models.ErrQueryFailed, http.StatusServiceUnavailable, CodeQueryFailed),
		sentinelHandler(models.ErrStorageUnavailable, http.StatusServiceUnavailable, CodeUnavailable),
		sentinelHandler(service.ErrEngineStopped, http.StatusServiceUnavailable, CodeUnavailable),
		sentinelHandler(location.ErrErrorQueueFull, http.StatusServiceUnavailable, CodeUnavailable),
	}
	return s
}

// Router builds the chi router with every route registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", s.Health)
	r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Get("/presented", s.GetPresented)
		r.Get("/candidates", s.ListCandidates)
		r.Post("/selection", s.SelectPoint)
		r.Get("/radius", s.GetRadius)
		r.Put("/radius", s.SetRadius)
		r.Post("/fixes", s.PushFix)
		r.Post("/fixes/errors", s.PushLocationError)
	})

	return r
}

// Health handles GET /healthz.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.WarnContext(r.Context(), "Health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// GetPresented handles GET /v1/presented.
func (s *Server) GetPresented(w http.ResponseWriter, r *http.Request) {
	presented, err := s.engine.Presented(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentationToResponse(presented))
}

// ListCandidates handles GET /v1/candidates.
func (s *Server) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.engine.Candidates(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	items := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, candidateToResponse(c))
	}
	writeJSON(w, http.StatusOK, CandidateListResponse{Items: items})
}

// SelectPoint handles POST /v1/selection.
func (s *Server) SelectPoint(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ID == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "id is required")
		return
	}

	presented, err := s.engine.SelectPoint(r.Context(), *req.ID)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentationToResponse(presented))
}

// GetRadius handles GET /v1/radius.
func (s *Server) GetRadius(w http.ResponseWriter, r *http.Request) {
	meters, err := s.engine.Radius(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, RadiusResponse{Meters: meters})
}

// SetRadius handles PUT /v1/radius.
func (s *Server) SetRadius(w http.ResponseWriter, r *http.Request) {
	var req RadiusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Meters == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "meters is required")
		return
	}

	presented, err := s.engine.SetRadius(r.Context(), *req.Meters)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, presentationToResponse(presented))
}

// PushFix handles POST /v1/fixes.
func (s *Server) PushFix(w http.ResponseWriter, r *http.Request) {
	var req FixRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "latitude and longitude are required")
		return
	}

	coords := models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	if err := s.fixes.Push(coords); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PushLocationError handles POST /v1/fixes/errors.
func (s *Server) PushLocationError(w http.ResponseWriter, r *http.Request) {
	var req LocationErrorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := s.fixes.PushError(models.ParseLocationErrorKind(req.Kind)); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Code: code, Message: message})
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, sentinel.Error())
		return true
	}
}

func (s *Server) handleError(w http.ResponseWriter, r *http.Request, err error) {
	for _, h := range s.errorHandlers {
		if h(w, err) {
			s.log.DebugContext(r.Context(), "Request rejected", "path", r.URL.Path, "error", err)
			return
		}
	}
	s.log.ErrorContext(r.Context(), "Internal error", "path", r.URL.Path, "error", err)
	writeError(w, http.StatusInternalServerError, CodeInternalError, "internal error")
}
