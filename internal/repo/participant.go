package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/plannerhq/planner-api/internal/domain"
)

// ParticipantRepo defines the persistence operations for Participants.
// Participant rows are written only as part of TripRepo.Create; this
// interface covers the read and confirmation paths.
type ParticipantRepo interface {
	// ListByTripID returns all participants of a trip, owner first, then
	// invitees in insertion order.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error)

	// ConfirmOwner marks the trip's owner participant as confirmed.
	// Confirming an already-confirmed owner is a no-op that still succeeds.
	// Returns domain.ErrNotFound if the trip has no owner row.
	ConfirmOwner(ctx context.Context, tripID uuid.UUID) error

	// Confirm marks a single participant as confirmed by primary key.
	// Returns domain.ErrNotFound if no participant with that ID exists.
	Confirm(ctx context.Context, id uuid.UUID) error
}

// pgParticipantRepo is the Postgres implementation of ParticipantRepo.
type pgParticipantRepo struct {
	db db
}

// NewParticipantRepo constructs a ParticipantRepo backed by the provided db
// connection.
func NewParticipantRepo(db db) ParticipantRepo {
	return &pgParticipantRepo{db: db}
}

// ListByTripID returns the trip's participants, owner first.
// Insertion order is preserved within invitees because ctid reflects the
// batch insert order and ids are random.
func (r *pgParticipantRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Participant, error) {
	const q = `
		SELECT id, trip_id, email, name, is_owner, is_confirmed
		FROM participants
		WHERE trip_id = @trip_id
		ORDER BY is_owner DESC, ctid`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var participants []domain.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: scan: %w", err)
		}
		participants = append(participants, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ParticipantRepo.ListByTripID: rows: %w", err)
	}

	return participants, nil
}

// ConfirmOwner sets is_confirmed on the owner row of the trip.
func (r *pgParticipantRepo) ConfirmOwner(ctx context.Context, tripID uuid.UUID) error {
	const q = `
		UPDATE participants
		SET is_confirmed = TRUE
		WHERE trip_id = @trip_id AND is_owner`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.ConfirmOwner: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.ConfirmOwner: %w", domain.ErrNotFound)
	}
	return nil
}

// Confirm sets is_confirmed on one participant row.
func (r *pgParticipantRepo) Confirm(ctx context.Context, id uuid.UUID) error {
	const q = `
		UPDATE participants
		SET is_confirmed = TRUE
		WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.ParticipantRepo.Confirm: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ParticipantRepo.Confirm: %w", domain.ErrNotFound)
	}
	return nil
}

// scanParticipant maps a single database row into a domain.Participant.
// The is_owner column is folded back into the Role variant.
func scanParticipant(s scanner) (domain.Participant, error) {
	var (
		p       domain.Participant
		id      pgtype.UUID
		tripID  pgtype.UUID
		isOwner bool
	)

	err := s.Scan(&id, &tripID, &p.Email, &p.Name, &isOwner, &p.Confirmed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Participant{}, domain.ErrNotFound
		}
		return domain.Participant{}, err
	}

	p.ID = uuid.UUID(id.Bytes)
	p.TripID = uuid.UUID(tripID.Bytes)
	p.Role = domain.RoleInvitee
	if isOwner {
		p.Role = domain.RoleOwner
	}

	return p, nil
}
