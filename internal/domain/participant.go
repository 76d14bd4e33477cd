package domain

import "github.com/google/uuid"

// Role distinguishes the trip owner from invited guests. Modeling the
// distinction as a variant rather than a loose boolean keeps the
// "exactly one owner per trip" rule visible at construction sites: the only
// way to get an owner record is NewOwner, and the creation workflow calls it
// exactly once per trip.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleInvitee Role = "invitee"
)

// Participant is a person associated with a trip. The owner is created
// pre-confirmed; invitees start unconfirmed and have no name until they
// identify themselves through the confirmation flow.
type Participant struct {
	ID        uuid.UUID `json:"id"`
	TripID    uuid.UUID `json:"trip_id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"` // nil until the invitee self-identifies
	Role      Role      `json:"role"`
	Confirmed bool      `json:"confirmed"`
}

// IsOwner reports whether this participant owns the trip.
func (p Participant) IsOwner() bool { return p.Role == RoleOwner }

// NewOwner builds the owner participant record for a trip.
// Owners are confirmed from the moment the trip is created.
func NewOwner(email, name string) Participant {
	return Participant{
		Email:     email,
		Name:      &name,
		Role:      RoleOwner,
		Confirmed: true,
	}
}

// NewInvitee builds an unconfirmed invitee record carrying only an email.
func NewInvitee(email string) Participant {
	return Participant{
		Email:     email,
		Role:      RoleInvitee,
		Confirmed: false,
	}
}
