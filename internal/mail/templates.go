package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// confirmationData feeds both the owner-confirmation and the invitation
// templates. Dates arrive pre-formatted so the templates stay free of any
// calendar logic.
type confirmationData struct {
	Destination string
	StartDate   string
	EndDate     string
	Link        string
}

var confirmationTpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>You requested a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong>.</p>
  <p>To confirm your trip, click the link below:</p>
  <p><a href="{{.Link}}">Confirm trip</a></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))

var invitationTpl = template.Must(template.New("invitation").Parse(`
<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>You have been invited on a trip to <strong>{{.Destination}}</strong> from <strong>{{.StartDate}}</strong> to <strong>{{.EndDate}}</strong>.</p>
  <p>To confirm your attendance, click the link below:</p>
  <p><a href="{{.Link}}">Confirm attendance</a></p>
  <p>If you don't know what this email is about, just ignore it.</p>
</div>`))

// NewTripConfirmation renders the message asking the trip owner to confirm
// the trip they just created.
func NewTripConfirmation(owner Address, destination, startDate, endDate, link string) (Message, error) {
	body, err := render(confirmationTpl, confirmationData{
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Link:        link,
	})
	if err != nil {
		return Message{}, fmt.Errorf("mail.NewTripConfirmation: %w", err)
	}
	return Message{
		From:    Sender,
		To:      owner,
		Subject: fmt.Sprintf("Confirm your trip to %s on %s", destination, startDate),
		HTML:    body,
	}, nil
}

// NewInvitation renders the message inviting a guest to join a confirmed trip.
func NewInvitation(invitee Address, destination, startDate, endDate, link string) (Message, error) {
	body, err := render(invitationTpl, confirmationData{
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Link:        link,
	})
	if err != nil {
		return Message{}, fmt.Errorf("mail.NewInvitation: %w", err)
	}
	return Message{
		From:    Sender,
		To:      invitee,
		Subject: fmt.Sprintf("Join a trip to %s on %s", destination, startDate),
		HTML:    body,
	}, nil
}

func render(tpl *template.Template, data confirmationData) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
