package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/giftcycle/internal/domain"
)

// LoadGroup returns a group by id, or a NOT_FOUND error.
func (s *Store) LoadGroup(ctx context.Context, groupID string) (domain.Group, error) {
	return loadGroup(ctx, s.db, groupID)
}

// LoadParticipants returns the participants of a group in insertion order.
// Ordering is deterministic: ORDER BY seq ASC, id ASC.
//
// Returns an empty slice (not nil) for an unknown or empty group.
func (s *Store) LoadParticipants(ctx context.Context, groupID string) ([]domain.Participant, error) {
	return loadParticipants(ctx, s.db, groupID)
}

// LoadParticipant returns one participant by id, or a NOT_FOUND error.
func (s *Store) LoadParticipant(ctx context.Context, participantID string) (domain.Participant, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, group_id, user_id, name, is_proxy, receiver_id
		FROM participants
		WHERE id = ?
	`, participantID)

	p, err := scanParticipant(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Participant{}, domain.NewNotFound("", "participant not found")
	}
	if err != nil {
		return domain.Participant{}, fmt.Errorf("load participant: %w", err)
	}
	return p, nil
}

// LoadExclusions returns every exclusion of a group ordered by (who, whom).
//
// Returns an empty slice (not nil) when there are none.
func (s *Store) LoadExclusions(ctx context.Context, groupID string) ([]domain.Exclusion, error) {
	return loadExclusions(ctx, s.db, groupID)
}

// LoadExclusion returns one exclusion by id, or a NOT_FOUND error.
func (s *Store) LoadExclusion(ctx context.Context, exclusionID string) (domain.Exclusion, error) {
	var ex domain.Exclusion
	err := s.db.QueryRowContext(ctx, `
		SELECT id, group_id, who_id, whom_id
		FROM exclusions
		WHERE id = ?
	`, exclusionID).Scan(&ex.ID, &ex.GroupID, &ex.Who, &ex.Whom)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Exclusion{}, domain.NewNotFound("", "exclusion not found")
	}
	if err != nil {
		return domain.Exclusion{}, fmt.Errorf("load exclusion: %w", err)
	}
	return ex, nil
}

// ReadReceiver returns the participant that participantID gives to.
// The bool is false while no receiver is assigned.
//
// This is a storage primitive with no access control. Callers that expose it
// must go through the reveal policy first.
func (s *Store) ReadReceiver(ctx context.Context, participantID string) (domain.Participant, bool, error) {
	var receiverID sql.NullString
	err := s.db.QueryRowContext(ctx, `
		SELECT receiver_id FROM participants WHERE id = ?
	`, participantID).Scan(&receiverID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Participant{}, false, domain.NewNotFound("", "participant not found")
	}
	if err != nil {
		return domain.Participant{}, false, fmt.Errorf("read receiver: %w", err)
	}
	if !receiverID.Valid {
		return domain.Participant{}, false, nil
	}

	receiver, err := s.LoadParticipant(ctx, receiverID.String)
	if err != nil {
		return domain.Participant{}, false, fmt.Errorf("read receiver: %w", err)
	}
	return receiver, true, nil
}

func loadGroup(ctx context.Context, q querier, groupID string) (domain.Group, error) {
	var (
		g         domain.Group
		status    string
		createdAt int64
		drawnAt   sql.NullInt64
	)
	err := q.QueryRowContext(ctx, `
		SELECT id, title, owner_id, status, created_at, drawn_at
		FROM groups
		WHERE id = ?
	`, groupID).Scan(&g.ID, &g.Title, &g.OwnerID, &status, &createdAt, &drawnAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Group{}, domain.NewNotFound(groupID, "group not found")
	}
	if err != nil {
		return domain.Group{}, fmt.Errorf("load group: %w", err)
	}

	g.Status = domain.Status(status)
	g.CreatedAt = time.Unix(createdAt, 0).UTC()
	if drawnAt.Valid {
		t := time.Unix(drawnAt.Int64, 0).UTC()
		g.DrawnAt = &t
	}
	return g, nil
}

func loadParticipants(ctx context.Context, q querier, groupID string) ([]domain.Participant, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, group_id, user_id, name, is_proxy, receiver_id
		FROM participants
		WHERE group_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query participants: %w", err)
	}
	defer rows.Close()

	participants := []domain.Participant{}
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		participants = append(participants, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate participants: %w", err)
	}

	return participants, nil
}

func loadExclusions(ctx context.Context, q querier, groupID string) ([]domain.Exclusion, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, group_id, who_id, whom_id
		FROM exclusions
		WHERE group_id = ?
		ORDER BY who_id COLLATE BINARY ASC, whom_id COLLATE BINARY ASC
	`, groupID)
	if err != nil {
		return nil, fmt.Errorf("query exclusions: %w", err)
	}
	defer rows.Close()

	exclusions := []domain.Exclusion{}
	for rows.Next() {
		var ex domain.Exclusion
		if err := rows.Scan(&ex.ID, &ex.GroupID, &ex.Who, &ex.Whom); err != nil {
			return nil, fmt.Errorf("scan exclusion: %w", err)
		}
		exclusions = append(exclusions, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate exclusions: %w", err)
	}

	return exclusions, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(sc scanner) (domain.Participant, error) {
	var (
		p          domain.Participant
		userID     sql.NullString
		isProxy    int
		receiverID sql.NullString
	)
	if err := sc.Scan(&p.ID, &p.GroupID, &userID, &p.Name, &isProxy, &receiverID); err != nil {
		return domain.Participant{}, err
	}
	p.UserID = userID.String
	p.Proxy = isProxy == 1
	p.ReceiverID = receiverID.String
	return p, nil
}
