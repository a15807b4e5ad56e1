package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/roach88/giftcycle/internal/domain"
)

// Seed inserts a group with its participants and exclusions in one
// transaction. Missing ids are generated, names are normalized and the group
// starts in StatusDraft. Returns the seed as stored.
//
// Seed is tooling for materializing a group from a definition file. It does
// not validate membership rules beyond what the schema enforces.
func (s *Store) Seed(ctx context.Context, seed domain.Seed) (domain.Seed, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Seed{}, fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	now := s.now().UTC()
	g := seed.Group
	if g.ID == "" {
		g.ID = s.ids.Generate()
	}
	g.Status = domain.StatusDraft
	g.CreatedAt = now
	g.DrawnAt = nil

	_, err = tx.ExecContext(ctx, `
		INSERT INTO groups (id, title, owner_id, status, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, g.ID, g.Title, g.OwnerID, string(g.Status), now.Unix())
	if isConstraintViolation(err) {
		return domain.Seed{}, domain.NewInvalidArgument(fmt.Sprintf("group %q already exists", g.ID))
	}
	if err != nil {
		return domain.Seed{}, fmt.Errorf("seed: insert group: %w", err)
	}

	participants := make([]domain.Participant, 0, len(seed.Participants))
	for i, p := range seed.Participants {
		if p.ID == "" {
			p.ID = s.ids.Generate()
		}
		p.GroupID = g.ID
		p.Name = domain.NormalizeName(p.Name)
		p.ReceiverID = ""

		_, err = tx.ExecContext(ctx, `
			INSERT INTO participants (id, group_id, user_id, name, is_proxy, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.GroupID, nullString(p.UserID), p.Name, boolInt(p.Proxy), i+1)
		if isConstraintViolation(err) {
			return domain.Seed{}, domain.NewInvalidArgument(fmt.Sprintf("participant %q rejected: %v", p.Name, err))
		}
		if err != nil {
			return domain.Seed{}, fmt.Errorf("seed: insert participant: %w", err)
		}
		participants = append(participants, p)
	}

	exclusions := make([]domain.Exclusion, 0, len(seed.Exclusions))
	for _, ex := range seed.Exclusions {
		if ex.ID == "" {
			ex.ID = s.ids.Generate()
		}
		ex.GroupID = g.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO exclusions (id, group_id, who_id, whom_id, created_at)
			VALUES (?, ?, ?, ?, ?)
		`, ex.ID, ex.GroupID, ex.Who, ex.Whom, now.Unix())
		if isConstraintViolation(err) {
			return domain.Seed{}, domain.NewInvalidArgument(fmt.Sprintf("exclusion %s->%s rejected: %v", ex.Who, ex.Whom, err))
		}
		if err != nil {
			return domain.Seed{}, fmt.Errorf("seed: insert exclusion: %w", err)
		}
		exclusions = append(exclusions, ex)
	}

	if err := tx.Commit(); err != nil {
		return domain.Seed{}, fmt.Errorf("seed: commit: %w", err)
	}

	return domain.Seed{Group: g, Participants: participants, Exclusions: exclusions}, nil
}

// InsertExclusion adds who→whom, and whom→who when req.Mutual is set, in one
// transaction that re-checks the group is still in StatusDraft.
//
// A duplicate forward pair fails with DUPLICATE. An existing reverse pair is
// skipped silently and reported as a nil Reverse.
func (s *Store) InsertExclusion(ctx context.Context, req domain.ExclusionRequest) (domain.ExclusionResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.ExclusionResult{}, fmt.Errorf("insert exclusion: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := requireDraft(ctx, tx, req.GroupID); err != nil {
		return domain.ExclusionResult{}, err
	}
	for _, id := range []string{req.Who, req.Whom} {
		if err := requireMember(ctx, tx, req.GroupID, id); err != nil {
			return domain.ExclusionResult{}, err
		}
	}

	now := s.now().Unix()
	forward := domain.Exclusion{ID: s.ids.Generate(), GroupID: req.GroupID, Who: req.Who, Whom: req.Whom}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO exclusions (id, group_id, who_id, whom_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, forward.ID, forward.GroupID, forward.Who, forward.Whom, now)
	if isUniqueViolation(err) {
		return domain.ExclusionResult{}, domain.NewDuplicate(req.GroupID, req.Who, req.Whom)
	}
	if err != nil {
		return domain.ExclusionResult{}, fmt.Errorf("insert exclusion: %w", err)
	}

	result := domain.ExclusionResult{Exclusion: forward}

	if req.Mutual {
		reverse := domain.Exclusion{ID: s.ids.Generate(), GroupID: req.GroupID, Who: req.Whom, Whom: req.Who}
		res, err := tx.ExecContext(ctx, `
			INSERT INTO exclusions (id, group_id, who_id, whom_id, created_at)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(group_id, who_id, whom_id) DO NOTHING
		`, reverse.ID, reverse.GroupID, reverse.Who, reverse.Whom, now)
		if err != nil {
			return domain.ExclusionResult{}, fmt.Errorf("insert exclusion: reverse: %w", err)
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return domain.ExclusionResult{}, fmt.Errorf("insert exclusion: rows affected: %w", err)
		}
		if inserted > 0 {
			result.Reverse = &reverse
		}
	}

	if err := tx.Commit(); err != nil {
		return domain.ExclusionResult{}, fmt.Errorf("insert exclusion: commit: %w", err)
	}

	return result, nil
}

// DeleteExclusion removes an exclusion of groupID, re-checking in the same
// transaction that the group is still in StatusDraft.
func (s *Store) DeleteExclusion(ctx context.Context, groupID, exclusionID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete exclusion: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := requireDraft(ctx, tx, groupID); err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM exclusions WHERE id = ? AND group_id = ?
	`, exclusionID, groupID)
	if err != nil {
		return fmt.Errorf("delete exclusion: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete exclusion: rows affected: %w", err)
	}
	if n == 0 {
		return domain.NewNotFound(groupID, "exclusion not found")
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete exclusion: commit: %w", err)
	}
	return nil
}

// requireDraft loads the group inside q and fails unless it is in StatusDraft.
func requireDraft(ctx context.Context, q querier, groupID string) error {
	g, err := loadGroup(ctx, q, groupID)
	if err != nil {
		return err
	}
	if g.Status != domain.StatusDraft {
		return domain.NewWrongState(groupID, g.Status, "group draw already completed")
	}
	return nil
}

// requireMember fails with NOT_FOUND unless participantID belongs to groupID.
func requireMember(ctx context.Context, q querier, groupID, participantID string) error {
	var one int
	err := q.QueryRowContext(ctx, `
		SELECT 1 FROM participants WHERE id = ? AND group_id = ?
	`, participantID, groupID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFound(groupID, "participant not found in this group")
	}
	if err != nil {
		return fmt.Errorf("check membership: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var se sqlite3.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.ExtendedCode == sqlite3.ErrConstraintUnique || se.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}

func isConstraintViolation(err error) bool {
	var se sqlite3.Error
	return errors.As(err, &se) && se.Code == sqlite3.ErrConstraint
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
