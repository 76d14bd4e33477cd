// Package handler implements the HTTP handlers for the trip planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, activity.go) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, in service.NewTrip) (service.CreateResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	Confirm(ctx context.Context, tripID uuid.UUID) error
	ConfirmParticipant(ctx context.Context, participantID uuid.UUID) error
	ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
}

// ActivityServicer defines the business operations the activity handlers
// depend on.
type ActivityServicer interface {
	Create(ctx context.Context, in service.NewActivity) (domain.Activity, error)
	ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.DayBucket, error)
}

// Server holds the dependencies shared by all HTTP handlers.
type Server struct {
	trips      TripServicer
	activities ActivityServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, activities ActivityServicer, log *slog.Logger) *Server {
	return &Server{trips: trips, activities: activities, log: log}
}

// Routes returns the router with every API endpoint mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Post("/trips", s.CreateTrip)
	r.Get("/trips/{tripID}", s.GetTrip)
	r.Get("/trips/{tripID}/confirm", s.ConfirmTrip)
	r.Get("/trips/{tripID}/participants", s.ListParticipants)
	r.Post("/trips/{tripID}/activities", s.CreateActivity)
	r.Get("/trips/{tripID}/activities", s.ListActivities)

	r.Get("/participants/{participantID}/confirm", s.ConfirmParticipant)

	return r
}

// pathUUID parses the named chi URL parameter as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, name))
}
