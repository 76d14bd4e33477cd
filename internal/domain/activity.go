package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity is a single scheduled item tied to a trip and an occurrence
// instant. Activities are stored and listed ascending by OccursAt; the
// itinerary view groups them by calendar day.
type Activity struct {
	ID       uuid.UUID `json:"id"`
	TripID   uuid.UUID `json:"trip_id"`
	Title    string    `json:"title"`
	OccursAt time.Time `json:"occurs_at"`
}
