package store

import (
	"context"
	"fmt"

	"github.com/roach88/giftcycle/internal/access"
	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/exclusion"
)

// CommitCycle durably records an accepted cycle and completes the group.
//
// Every precondition is re-read inside the transaction rather than trusted
// from the caller's earlier reads: the group exists, the requester owns it,
// it is still in StatusDraft, it still has enough participants, the cycle is
// exactly a permutation of its current participants, and the cycle still
// admits its current exclusions. Any failure rolls everything back.
//
// The receiver writes and the status transition are one atomic unit. Readers
// see either no receivers and StatusDraft, or all receivers and
// StatusCompleted. Once completed, every later commit fails with WRONG_STATE
// and writes nothing.
func (s *Store) CommitCycle(ctx context.Context, req domain.CommitRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.NewCommitFailed(req.GroupID, "failed to save results", fmt.Errorf("begin tx: %w", err))
	}
	defer tx.Rollback() // No-op if committed

	g, err := loadGroup(ctx, tx, req.GroupID)
	if err != nil {
		if domain.CodeOf(err) != "" {
			return err
		}
		return domain.NewCommitFailed(req.GroupID, "failed to save results", err)
	}
	if err := access.CanDraw(g, req.RequesterID); err != nil {
		return err
	}
	if g.Status != domain.StatusDraft {
		return domain.NewWrongState(g.ID, g.Status, "group is not in DRAFT status")
	}

	participants, err := loadParticipants(ctx, tx, g.ID)
	if err != nil {
		return domain.NewCommitFailed(g.ID, "failed to save results", err)
	}
	minimum := max(req.MinParticipants, domain.MinCycleLength)
	if len(participants) < minimum {
		return domain.NewTooFewParticipants(g.ID, len(participants), minimum)
	}

	ids := make([]string, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ID)
	}
	if !req.Cycle.SameMembers(ids) {
		return domain.NewCommitFailed(g.ID, "participants changed since the draw started", nil)
	}

	exclusions, err := loadExclusions(ctx, tx, g.ID)
	if err != nil {
		return domain.NewCommitFailed(g.ID, "failed to save results", err)
	}
	if !exclusion.New(exclusions).Admits(req.Cycle) {
		return domain.NewCommitFailed(g.ID, "exclusions changed since the draw started", nil)
	}

	for _, pair := range req.Cycle.Pairs() {
		res, err := tx.ExecContext(ctx, `
			UPDATE participants SET receiver_id = ?
			WHERE id = ? AND group_id = ? AND receiver_id IS NULL
		`, pair.Receiver, pair.Giver, g.ID)
		if err != nil {
			return domain.NewCommitFailed(g.ID, "failed to save results", fmt.Errorf("assign receiver: %w", err))
		}
		n, err := res.RowsAffected()
		if err != nil {
			return domain.NewCommitFailed(g.ID, "failed to save results", fmt.Errorf("rows affected: %w", err))
		}
		if n != 1 {
			return domain.NewCommitFailed(g.ID, "participant already has a receiver", nil)
		}
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE groups SET status = ?, drawn_at = ?
		WHERE id = ? AND status = ?
	`, string(domain.StatusCompleted), s.now().Unix(), g.ID, string(domain.StatusDraft))
	if err != nil {
		return domain.NewCommitFailed(g.ID, "failed to save results", fmt.Errorf("complete group: %w", err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewCommitFailed(g.ID, "failed to save results", fmt.Errorf("rows affected: %w", err))
	}
	if n == 0 {
		return domain.NewWrongState(g.ID, domain.StatusCompleted, "group is not in DRAFT status")
	}

	if err := tx.Commit(); err != nil {
		return domain.NewCommitFailed(g.ID, "failed to save results", fmt.Errorf("commit: %w", err))
	}
	return nil
}
