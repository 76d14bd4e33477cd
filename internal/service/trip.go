// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// mail calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/mail"
	"github.com/plannerhq/planner-api/internal/repo"
)

// DateFormatter renders an instant as a human-readable date for outbound
// mail. It is injected so the core never depends on a specific calendar or
// locale library.
type DateFormatter interface {
	FormatLong(t time.Time) string
}

// NewTrip carries the validated request fields for trip creation.
type NewTrip struct {
	Destination    string
	StartsAt       time.Time
	EndsAt         time.Time
	OwnerName      string
	OwnerEmail     string
	EmailsToInvite []string
}

// CreateResult is the outcome of a successful trip creation. NotifyErr is
// non-nil when the confirmation mail could not be sent; the trip is
// committed regardless, so callers must treat it as a warning, never as a
// failure of the creation itself.
type CreateResult struct {
	Trip      domain.Trip
	NotifyErr error
}

// TripService implements business logic for the trip lifecycle: creation
// with its participant batch, confirmation, and participant listing.
type TripService struct {
	trips        repo.TripRepo
	participants repo.ParticipantRepo
	mailer       mail.Mailer
	dates        DateFormatter
	baseURL      string
	log          *slog.Logger
}

// NewTripService constructs a TripService. baseURL is the externally
// reachable API base used to build confirmation links.
func NewTripService(trips repo.TripRepo, participants repo.ParticipantRepo, mailer mail.Mailer, dates DateFormatter, baseURL string, log *slog.Logger) *TripService {
	return &TripService{
		trips:        trips,
		participants: participants,
		mailer:       mailer,
		dates:        dates,
		baseURL:      strings.TrimRight(baseURL, "/"),
		log:          log,
	}
}

// Create validates the date range, persists the trip together with its full
// participant batch (owner pre-confirmed, invitees unconfirmed, input order,
// duplicates preserved), then dispatches the confirmation mail to the owner.
//
// A dispatch failure does not fail the call: the trip is already committed,
// so it is returned in CreateResult.NotifyErr instead.
func (s *TripService) Create(ctx context.Context, in NewTrip) (CreateResult, error) {
	if err := validateDateRange(in.StartsAt, in.EndsAt); err != nil {
		return CreateResult{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	participants := make([]domain.Participant, 0, len(in.EmailsToInvite)+1)
	participants = append(participants, domain.NewOwner(in.OwnerEmail, in.OwnerName))
	for _, email := range in.EmailsToInvite {
		participants = append(participants, domain.NewInvitee(email))
	}

	trip, err := s.trips.Create(ctx, domain.Trip{
		Destination: in.Destination,
		StartsAt:    in.StartsAt,
		EndsAt:      in.EndsAt,
	}, participants)
	if err != nil {
		return CreateResult{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	result := CreateResult{Trip: trip}
	result.NotifyErr = s.notifyOwner(ctx, trip, in.OwnerName, in.OwnerEmail)
	return result, nil
}

// notifyOwner renders and sends the confirmation mail. Any failure is
// wrapped in domain.ErrNotification.
func (s *TripService) notifyOwner(ctx context.Context, trip domain.Trip, ownerName, ownerEmail string) error {
	msg, err := mail.NewTripConfirmation(
		mail.Address{Name: ownerName, Email: ownerEmail},
		trip.Destination,
		s.dates.FormatLong(trip.StartsAt),
		s.dates.FormatLong(trip.EndsAt),
		s.tripConfirmLink(trip.ID),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	return nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// Confirm transitions the trip's owner participant to confirmed and invites
// the unconfirmed guests by mail. Confirming an already-confirmed trip is a
// no-op and sends nothing.
//
// Invitation dispatch failures are logged per invitee and never fail the
// confirmation: by the time mail runs, the owner's confirmed state is
// already committed.
func (s *TripService) Confirm(ctx context.Context, tripID uuid.UUID) error {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	for _, p := range participants {
		if p.IsOwner() && p.Confirmed {
			return nil
		}
	}

	if err := s.participants.ConfirmOwner(ctx, tripID); err != nil {
		return fmt.Errorf("service.TripService.Confirm: %w", err)
	}

	for _, p := range participants {
		if p.IsOwner() || p.Confirmed {
			continue
		}
		if err := s.invite(ctx, trip, p); err != nil {
			s.log.WarnContext(ctx, "invitation mail failed",
				"trip_id", tripID, "participant_id", p.ID, "error", err)
		}
	}
	return nil
}

// invite renders and sends one invitation mail.
func (s *TripService) invite(ctx context.Context, trip domain.Trip, p domain.Participant) error {
	msg, err := mail.NewInvitation(
		mail.Address{Email: p.Email},
		trip.Destination,
		s.dates.FormatLong(trip.StartsAt),
		s.dates.FormatLong(trip.EndsAt),
		s.participantConfirmLink(p.ID),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNotification, err)
	}
	return nil
}

// ConfirmParticipant marks a single participant as confirmed, from the link
// in their invitation mail.
// Returns domain.ErrNotFound if the participant does not exist.
func (s *TripService) ConfirmParticipant(ctx context.Context, participantID uuid.UUID) error {
	if err := s.participants.Confirm(ctx, participantID); err != nil {
		return fmt.Errorf("service.TripService.ConfirmParticipant: %w", err)
	}
	return nil
}

// ListParticipants returns the trip's participants, owner first.
// Returns domain.ErrNotFound if the trip does not exist.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) ListParticipants(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	participants, err := s.participants.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.ListParticipants: %w", err)
	}
	if participants == nil {
		return []domain.Participant{}, nil
	}
	return participants, nil
}

// tripConfirmLink builds the owner's confirmation URL for a trip.
func (s *TripService) tripConfirmLink(tripID uuid.UUID) string {
	return fmt.Sprintf("%s/trips/%s/confirm", s.baseURL, tripID)
}

// participantConfirmLink builds a guest's attendance-confirmation URL.
func (s *TripService) participantConfirmLink(participantID uuid.UUID) string {
	return fmt.Sprintf("%s/participants/%s/confirm", s.baseURL, participantID)
}

// validateDateRange enforces the trip's temporal rules.
//   - The start instant must not be in the past. Checked first, so a request
//     breaking both rules reports domain.ErrStartInPast.
//   - The end instant must not be before the start.
func validateDateRange(startsAt, endsAt time.Time) error {
	if startsAt.Before(time.Now()) {
		return domain.ErrStartInPast
	}
	if endsAt.Before(startsAt) {
		return domain.ErrEndBeforeStart
	}
	return nil
}
