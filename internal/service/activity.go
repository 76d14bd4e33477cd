package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// NewActivity carries the request fields for scheduling an activity.
type NewActivity struct {
	TripID   uuid.UUID
	Title    string
	OccursAt time.Time
}

// ActivityService implements business logic for activities: scheduling them
// on a trip and assembling the day-by-day itinerary view.
// It holds the trip repo because both operations must verify the trip exists.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create schedules an activity on a trip.
// Returns domain.ErrNotFound if the trip does not exist, and
// domain.ErrValidation if the occurrence instant lies outside the trip's
// date range. The itinerary view tolerates out-of-range rows from older
// data, but new ones are rejected at the door.
func (s *ActivityService) Create(ctx context.Context, in NewActivity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, in.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	if in.OccursAt.Before(trip.StartsAt) || in.OccursAt.After(trip.EndsAt) {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: occurs_at is outside the trip dates", domain.ErrValidation)
	}

	activity, err := s.activities.Create(ctx, domain.Activity{
		TripID:   in.TripID,
		Title:    in.Title,
		OccursAt: in.OccursAt,
	})
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	return activity, nil
}

// ListByDay returns the trip's itinerary: one bucket per calendar day of the
// trip's inclusive range, each holding that day's activities in stored
// (occurrence-ascending) order.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *ActivityService) ListByDay(ctx context.Context, tripID uuid.UUID) ([]domain.DayBucket, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDay: %w", err)
	}

	return domain.BuildItinerary(trip.StartsAt, trip.EndsAt, activities), nil
}
