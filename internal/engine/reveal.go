package engine

import (
	"context"

	"github.com/roach88/giftcycle/internal/access"
	"github.com/roach88/giftcycle/internal/domain"
)

// GetAssignment returns the receiver's display name for participantID.
//
// Errors, in order of checking: NOT_FOUND for the group, WRONG_STATE before
// the draw has completed, NOT_FOUND for a participant outside the group,
// UNAUTHORIZED unless access.CanReveal allows requesterID, and NOT_FOUND when
// no receiver was recorded.
func (e *Engine) GetAssignment(ctx context.Context, groupID, requesterID, participantID string) (a domain.Assignment, err error) {
	defer func() {
		assignmentReads.WithLabelValues(resultLabel(err)).Inc()
	}()

	g, err := e.store.LoadGroup(ctx, groupID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if g.Status != domain.StatusCompleted {
		return domain.Assignment{}, domain.NewWrongState(g.ID, g.Status, "draw has not completed yet")
	}

	target, err := e.loadMember(ctx, g.ID, participantID)
	if err != nil {
		return domain.Assignment{}, err
	}
	if err := access.CanReveal(g, target, requesterID); err != nil {
		return domain.Assignment{}, err
	}

	receiver, ok, err := e.store.ReadReceiver(ctx, target.ID)
	if err != nil {
		return domain.Assignment{}, domain.WithGroup(err, g.ID)
	}
	if !ok {
		return domain.Assignment{}, domain.NewNotFound(g.ID, "no receiver assigned")
	}

	e.logger.Debug("assignment revealed",
		"group", g.ID,
		"participant", target.ID,
		"by_owner", g.IsOwner(requesterID) && !target.Is(requesterID),
	)

	return domain.Assignment{GiverID: target.ID, ReceiverName: receiver.Name}, nil
}
