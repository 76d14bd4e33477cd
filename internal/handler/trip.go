package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

// createTripRequest mirrors the POST /trips body. Email fields use the
// oapi-codegen runtime Email type, which rejects malformed addresses during
// JSON decoding, so format validation never reaches the service layer.
type createTripRequest struct {
	Destination    string                `json:"destination"`
	StartsAt       time.Time             `json:"startsAt"`
	EndsAt         time.Time             `json:"endsAt"`
	OwnerName      string                `json:"ownerName"`
	OwnerEmail     openapi_types.Email   `json:"ownerEmail"`
	EmailsToInvite []openapi_types.Email `json:"emailsToInvite"`
}

// validate checks field presence and shape. Returns an empty string when the
// request is well-formed.
func (req createTripRequest) validate() string {
	if len(strings.TrimSpace(req.Destination)) < domain.MinDestinationLen {
		return fmt.Sprintf("destination must be at least %d characters", domain.MinDestinationLen)
	}
	if req.StartsAt.IsZero() {
		return "startsAt is required"
	}
	if req.EndsAt.IsZero() {
		return "endsAt is required"
	}
	if strings.TrimSpace(req.OwnerName) == "" {
		return "ownerName is required"
	}
	if req.OwnerEmail == "" {
		return "ownerEmail is required"
	}
	return ""
}

// tripCreatedResponse is the POST /trips success body.
type tripCreatedResponse struct {
	TripID uuid.UUID `json:"tripId"`
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req createTripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, decodeMessage(err))
		return
	}
	if msg := req.validate(); msg != "" {
		writeRequestError(w, msg)
		return
	}

	invites := make([]string, len(req.EmailsToInvite))
	for i, email := range req.EmailsToInvite {
		invites[i] = string(email)
	}

	result, err := s.trips.Create(r.Context(), service.NewTrip{
		Destination:    req.Destination,
		StartsAt:       req.StartsAt,
		EndsAt:         req.EndsAt,
		OwnerName:      req.OwnerName,
		OwnerEmail:     string(req.OwnerEmail),
		EmailsToInvite: invites,
	})
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeValidation(w, err)
			return
		}
		s.serverError(w, r, err)
		return
	}

	// The trip is committed even when the confirmation mail failed; report
	// the dispatch problem as a warning and return success regardless.
	if result.NotifyErr != nil {
		s.log.WarnContext(r.Context(), "confirmation mail not sent",
			"trip_id", result.Trip.ID, "error", result.NotifyErr)
	}

	writeJSON(w, http.StatusCreated, tripCreatedResponse{TripID: result.Trip.ID})
}

// GetTrip handles GET /trips/{tripID}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeRequestError(w, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, trip)
}

// ConfirmTrip handles GET /trips/{tripID}/confirm, the link from the owner's
// confirmation mail. Confirming twice is a no-op.
func (s *Server) ConfirmTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeRequestError(w, "invalid trip id")
		return
	}

	if err := s.trips.Confirm(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ConfirmParticipant handles GET /participants/{participantID}/confirm, the
// link from an invitation mail.
func (s *Server) ConfirmParticipant(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "participantID")
	if err != nil {
		writeRequestError(w, "invalid participant id")
		return
	}

	if err := s.trips.ConfirmParticipant(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "participant not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants handles GET /trips/{tripID}/participants.
func (s *Server) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tripID")
	if err != nil {
		writeRequestError(w, "invalid trip id")
		return
	}

	participants, err := s.trips.ListParticipants(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, participants)
}

// decodeMessage translates a JSON decoding error into a client-facing
// message. Email format failures from the oapi-codegen runtime surface here.
func decodeMessage(err error) string {
	if errors.Is(err, openapi_types.ErrValidationEmail) {
		return "invalid email address"
	}
	return "invalid request body"
}
