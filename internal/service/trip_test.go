package service_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/mail"
	"github.com/plannerhq/planner-api/internal/repo"
	"github.com/plannerhq/planner-api/internal/service"
)

// mockTripRepo is a hand-written test double for repo.TripRepo.
// Each method is a function field — set only the ones your test needs.
type mockTripRepo struct {
	create  func(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
	return m.create(ctx, trip, participants)
}
func (m *mockTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}

// compile-time check: mockTripRepo must satisfy repo.TripRepo.
var _ repo.TripRepo = (*mockTripRepo)(nil)

// mockParticipantRepo is a test double for repo.ParticipantRepo.
type mockParticipantRepo struct {
	listByTripID func(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)
	confirmOwner func(ctx context.Context, tripID uuid.UUID) error
	confirm      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	return m.listByTripID(ctx, tripID)
}
func (m *mockParticipantRepo) ConfirmOwner(ctx context.Context, tripID uuid.UUID) error {
	return m.confirmOwner(ctx, tripID)
}
func (m *mockParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	return m.confirm(ctx, id)
}

var _ repo.ParticipantRepo = (*mockParticipantRepo)(nil)

// mockMailer records every message it is asked to send.
type mockMailer struct {
	sent []mail.Message
	err  error
}

func (m *mockMailer) Send(_ context.Context, msg mail.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

var _ mail.Mailer = (*mockMailer)(nil)

// isoDates formats dates compactly so assertions are easy to read.
type isoDates struct{}

func (isoDates) FormatLong(t time.Time) string { return t.Format("2006-01-02") }

// ---- helpers ---------------------------------------------------------------

func validNewTrip() service.NewTrip {
	return service.NewTrip{
		Destination:    "Florianópolis",
		StartsAt:       time.Now().Add(24 * time.Hour),
		EndsAt:         time.Now().Add(72 * time.Hour),
		OwnerName:      "Ana",
		OwnerEmail:     "ana@x.com",
		EmailsToInvite: []string{"bob@x.com", "carol@x.com"},
	}
}

// echoTripRepo echoes the trip back with a fresh ID — useful for Create
// tests that care about validation and the participant batch, not the DB.
func echoTripRepo(captured *[]domain.Participant) *mockTripRepo {
	return &mockTripRepo{
		create: func(_ context.Context, trip domain.Trip, participants []domain.Participant) (domain.Trip, error) {
			if captured != nil {
				*captured = participants
			}
			trip.ID = uuid.New()
			return trip, nil
		},
	}
}

func newService(trips repo.TripRepo, participants repo.ParticipantRepo, mailer mail.Mailer) *service.TripService {
	return service.NewTripService(trips, participants, mailer, isoDates{}, "http://localhost:3333", slog.Default())
}

// ---- Create tests ----------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	var batch []domain.Participant
	mailer := &mockMailer{}
	svc := newService(echoTripRepo(&batch), nil, mailer)

	in := validNewTrip()
	result, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	require.NoError(t, result.NotifyErr)
	assert.Equal(t, in.Destination, result.Trip.Destination)

	// Owner first, then invitees in input order.
	require.Len(t, batch, 3)
	assert.True(t, batch[0].IsOwner())
	assert.True(t, batch[0].Confirmed)
	assert.Equal(t, "ana@x.com", batch[0].Email)
	assert.Equal(t, "bob@x.com", batch[1].Email)
	assert.Equal(t, "carol@x.com", batch[2].Email)
	for _, p := range batch[1:] {
		assert.False(t, p.IsOwner())
		assert.False(t, p.Confirmed)
		assert.Nil(t, p.Name)
	}

	// One confirmation mail to the owner, carrying the confirm link.
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "ana@x.com", mailer.sent[0].To.Email)
	assert.Contains(t, mailer.sent[0].HTML, fmt.Sprintf("http://localhost:3333/trips/%s/confirm", result.Trip.ID))
	assert.Contains(t, mailer.sent[0].Subject, "Florianópolis")
}

func TestTripService_Create_DuplicateInviteesPreserved(t *testing.T) {
	var batch []domain.Participant
	svc := newService(echoTripRepo(&batch), nil, &mockMailer{})

	in := validNewTrip()
	in.EmailsToInvite = []string{"bob@x.com", "bob@x.com"}

	_, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	// No dedup: the duplicate email yields two unconfirmed rows.
	require.Len(t, batch, 3)
	assert.Equal(t, "bob@x.com", batch[1].Email)
	assert.Equal(t, "bob@x.com", batch[2].Email)
}

func TestTripService_Create_NoInvitees(t *testing.T) {
	var batch []domain.Participant
	svc := newService(echoTripRepo(&batch), nil, &mockMailer{})

	in := validNewTrip()
	in.EmailsToInvite = nil

	_, err := svc.Create(context.Background(), in)

	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.True(t, batch[0].IsOwner())
}

func TestTripService_Create_StartInPast(t *testing.T) {
	svc := newService(&mockTripRepo{}, nil, &mockMailer{})

	in := validNewTrip()
	in.StartsAt = time.Now().Add(-time.Hour)

	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrStartInPast)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_StartInPastWinsOverEndBeforeStart(t *testing.T) {
	svc := newService(&mockTripRepo{}, nil, &mockMailer{})

	// Both rules broken: the start-in-past check runs first.
	in := validNewTrip()
	in.StartsAt = time.Now().Add(-time.Hour)
	in.EndsAt = time.Now().Add(-2 * time.Hour)

	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrStartInPast)
	assert.NotErrorIs(t, err, domain.ErrEndBeforeStart)
}

func TestTripService_Create_EndBeforeStart(t *testing.T) {
	svc := newService(&mockTripRepo{}, nil, &mockMailer{})

	in := validNewTrip()
	in.EndsAt = in.StartsAt.Add(-time.Hour)

	_, err := svc.Create(context.Background(), in)

	assert.ErrorIs(t, err, domain.ErrEndBeforeStart)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTripService_Create_RepoError(t *testing.T) {
	repoErr := errors.New("db exploded")
	mailer := &mockMailer{}
	trips := &mockTripRepo{
		create: func(_ context.Context, _ domain.Trip, _ []domain.Participant) (domain.Trip, error) {
			return domain.Trip{}, repoErr
		},
	}
	svc := newService(trips, nil, mailer)

	_, err := svc.Create(context.Background(), validNewTrip())

	// The service propagates repo errors unchanged and sends no mail.
	assert.ErrorIs(t, err, repoErr)
	assert.Empty(t, mailer.sent)
}

func TestTripService_Create_MailFailureIsNotFatal(t *testing.T) {
	mailer := &mockMailer{err: errors.New("smtp down")}
	svc := newService(echoTripRepo(nil), nil, mailer)

	result, err := svc.Create(context.Background(), validNewTrip())

	// The trip is committed; the dispatch failure rides along as a warning.
	require.NoError(t, err)
	require.Error(t, result.NotifyErr)
	assert.ErrorIs(t, result.NotifyErr, domain.ErrNotification)
	assert.NotEqual(t, uuid.Nil, result.Trip.ID)
}

// ---- Confirm tests ---------------------------------------------------------

func confirmFixture(tripID uuid.UUID, ownerConfirmed bool) []domain.Participant {
	name := "Ana"
	return []domain.Participant{
		{ID: uuid.New(), TripID: tripID, Email: "ana@x.com", Name: &name, Role: domain.RoleOwner, Confirmed: ownerConfirmed},
		{ID: uuid.New(), TripID: tripID, Email: "bob@x.com", Role: domain.RoleInvitee, Confirmed: false},
		{ID: uuid.New(), TripID: tripID, Email: "carol@x.com", Role: domain.RoleInvitee, Confirmed: true},
	}
}

func TestTripService_Confirm_SendsInvitationsToUnconfirmed(t *testing.T) {
	tripID := uuid.New()
	trip := domain.Trip{ID: tripID, Destination: "Recife",
		StartsAt: time.Now().Add(24 * time.Hour), EndsAt: time.Now().Add(48 * time.Hour)}

	var ownerConfirmed bool
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) { return trip, nil },
	}
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return confirmFixture(tripID, false), nil
		},
		confirmOwner: func(_ context.Context, _ uuid.UUID) error {
			ownerConfirmed = true
			return nil
		},
	}
	mailer := &mockMailer{}
	svc := newService(trips, participants, mailer)

	err := svc.Confirm(context.Background(), tripID)

	require.NoError(t, err)
	assert.True(t, ownerConfirmed)

	// Only bob is unconfirmed and not the owner.
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "bob@x.com", mailer.sent[0].To.Email)
	assert.Contains(t, mailer.sent[0].Subject, "Recife")
}

func TestTripService_Confirm_AlreadyConfirmedIsNoOp(t *testing.T) {
	tripID := uuid.New()
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID}, nil
		},
	}
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return confirmFixture(tripID, true), nil
		},
		// confirmOwner deliberately nil: calling it would panic the test.
	}
	mailer := &mockMailer{}
	svc := newService(trips, participants, mailer)

	err := svc.Confirm(context.Background(), tripID)

	require.NoError(t, err)
	assert.Empty(t, mailer.sent, "a second confirmation must not re-send invitations")
}

func TestTripService_Confirm_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := newService(trips, &mockParticipantRepo{}, &mockMailer{})

	err := svc.Confirm(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_Confirm_InvitationFailureIsNotFatal(t *testing.T) {
	tripID := uuid.New()
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID, Destination: "Recife"}, nil
		},
	}
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return confirmFixture(tripID, false), nil
		},
		confirmOwner: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
	svc := newService(trips, participants, &mockMailer{err: errors.New("smtp down")})

	err := svc.Confirm(context.Background(), tripID)

	// The owner's confirmation is committed; mail trouble is only logged.
	assert.NoError(t, err)
}

// ---- ConfirmParticipant tests ----------------------------------------------

func TestTripService_ConfirmParticipant(t *testing.T) {
	var confirmed uuid.UUID
	participants := &mockParticipantRepo{
		confirm: func(_ context.Context, id uuid.UUID) error {
			confirmed = id
			return nil
		},
	}
	svc := newService(&mockTripRepo{}, participants, &mockMailer{})

	id := uuid.New()
	err := svc.ConfirmParticipant(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, id, confirmed)
}

func TestTripService_ConfirmParticipant_NotFound(t *testing.T) {
	participants := &mockParticipantRepo{
		confirm: func(_ context.Context, _ uuid.UUID) error {
			return fmt.Errorf("repo: %w", domain.ErrNotFound)
		},
	}
	svc := newService(&mockTripRepo{}, participants, &mockMailer{})

	err := svc.ConfirmParticipant(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- ListParticipants tests ------------------------------------------------

func TestTripService_ListParticipants(t *testing.T) {
	tripID := uuid.New()
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{ID: tripID}, nil
		},
	}
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return confirmFixture(tripID, false), nil
		},
	}
	svc := newService(trips, participants, &mockMailer{})

	got, err := svc.ListParticipants(context.Background(), tripID)

	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].IsOwner())
}

func TestTripService_ListParticipants_TripNotFound(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := newService(trips, &mockParticipantRepo{}, &mockMailer{})

	_, err := svc.ListParticipants(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripService_ListParticipants_NeverNil(t *testing.T) {
	trips := &mockTripRepo{
		getByID: func(_ context.Context, _ uuid.UUID) (domain.Trip, error) {
			return domain.Trip{}, nil
		},
	}
	participants := &mockParticipantRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Participant, error) {
			return nil, nil
		},
	}
	svc := newService(trips, participants, &mockMailer{})

	got, err := svc.ListParticipants(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
