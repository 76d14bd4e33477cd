// Package domain contains the core data types for the trip planner API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip represents a planned journey to a destination over an inclusive date
// range. A trip is the top-level aggregate; participants and activities
// belong to a trip.
//
// A trip carries no confirmation flag of its own: its confirmed state is
// derived from the owner participant's Confirmed field.
type Trip struct {
	ID          uuid.UUID `json:"id"`
	Destination string    `json:"destination"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// MinDestinationLen is the shortest destination the API accepts.
const MinDestinationLen = 4
