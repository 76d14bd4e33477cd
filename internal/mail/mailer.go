// Package mail renders and delivers the transactional email the trip planner
// sends: the owner's confirmation request and the invitee invitations.
// Delivery is behind the Mailer interface so services can be unit-tested
// without a mail server and so a log-only mailer can stand in during
// development.
package mail

import "context"

// Address pairs a display name with an email address.
type Address struct {
	Name  string
	Email string
}

// Message is a fully rendered email ready for transport.
type Message struct {
	From    Address
	To      Address
	Subject string
	HTML    string
}

// Mailer delivers a rendered message. Implementations must not retry;
// the caller decides whether a delivery failure matters.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Sender is the fixed identity all planner mail is sent from.
var Sender = Address{Name: "Planner team", Email: "hi@planner.app"}
