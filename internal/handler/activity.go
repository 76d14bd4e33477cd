package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/service"
)

// createActivityRequest mirrors the POST /trips/{tripID}/activities body.
type createActivityRequest struct {
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occursAt"`
}

func (req createActivityRequest) validate() string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if req.OccursAt.IsZero() {
		return "occursAt is required"
	}
	return ""
}

// itineraryResponse is the GET /trips/{tripID}/activities body: one entry
// per calendar day of the trip, in order.
type itineraryResponse struct {
	Activities []domain.DayBucket `json:"activities"`
}

// CreateActivity handles POST /trips/{tripID}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeRequestError(w, "invalid trip id")
		return
	}

	var req createActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeRequestError(w, msg)
		return
	}

	activity, err := s.activities.Create(r.Context(), service.NewActivity{
		TripID:   tripID,
		Title:    req.Title,
		OccursAt: req.OccursAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			writeNotFound(w, "trip not found")
		case errors.Is(err, domain.ErrValidation):
			writeValidation(w, err)
		default:
			s.serverError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, activity)
}

// ListActivities handles GET /trips/{tripID}/activities.
// It returns the trip's activities grouped by calendar day over the trip's
// inclusive date range; days without activities appear with an empty list.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		writeRequestError(w, "invalid trip id")
		return
	}

	buckets, err := s.activities.ListByDay(r.Context(), tripID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeNotFound(w, "trip not found")
			return
		}
		s.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, itineraryResponse{Activities: buckets})
}
