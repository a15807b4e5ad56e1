package engine

import (
	"context"

	"github.com/samber/lo"

	"github.com/roach88/giftcycle/internal/access"
	"github.com/roach88/giftcycle/internal/domain"
)

// AddExclusion forbids req.Who from giving to req.Whom, and the reverse when
// req.Mutual is set.
//
// Errors, in order of checking: SELF_EXCLUSION, NOT_FOUND for the group,
// WRONG_STATE once drawn, NOT_FOUND for either participant, UNAUTHORIZED
// unless the requester owns the group or is req.Who, DUPLICATE for an
// existing forward pair. An existing reverse pair is not an error; the
// result's Reverse is nil then.
func (e *Engine) AddExclusion(ctx context.Context, req domain.ExclusionRequest) (res domain.ExclusionResult, err error) {
	defer func() {
		exclusionChanges.WithLabelValues("add", resultLabel(err)).Inc()
	}()

	if req.Who == req.Whom {
		return domain.ExclusionResult{}, domain.NewSelfExclusion(req.GroupID, req.Who)
	}

	g, err := e.store.LoadGroup(ctx, req.GroupID)
	if err != nil {
		return domain.ExclusionResult{}, err
	}
	if g.Status != domain.StatusDraft {
		return domain.ExclusionResult{}, domain.NewWrongState(g.ID, g.Status, "group draw already completed")
	}

	who, err := e.loadMember(ctx, g.ID, req.Who)
	if err != nil {
		return domain.ExclusionResult{}, err
	}
	if _, err := e.loadMember(ctx, g.ID, req.Whom); err != nil {
		return domain.ExclusionResult{}, err
	}
	if err := access.CanManageExclusions(g, who, req.RequesterID); err != nil {
		return domain.ExclusionResult{}, err
	}

	res, err = e.store.InsertExclusion(ctx, req)
	if err != nil {
		return domain.ExclusionResult{}, domain.WithGroup(err, g.ID)
	}

	e.logger.Info("exclusion added",
		"group", g.ID,
		"exclusion", res.Exclusion.ID,
		"mutual", res.Reverse != nil,
	)
	return res, nil
}

// RemoveExclusion deletes one exclusion of groupID.
//
// Errors: NOT_FOUND for the group or the exclusion (an exclusion of another
// group counts as missing), WRONG_STATE once drawn, UNAUTHORIZED unless the
// requester owns the group or is the exclusion's giving side.
func (e *Engine) RemoveExclusion(ctx context.Context, groupID, requesterID, exclusionID string) (err error) {
	defer func() {
		exclusionChanges.WithLabelValues("remove", resultLabel(err)).Inc()
	}()

	g, err := e.store.LoadGroup(ctx, groupID)
	if err != nil {
		return err
	}

	ex, err := e.store.LoadExclusion(ctx, exclusionID)
	if err != nil {
		return domain.WithGroup(err, g.ID)
	}
	if ex.GroupID != g.ID {
		return domain.NewNotFound(g.ID, "exclusion not found")
	}
	if g.Status != domain.StatusDraft {
		return domain.NewWrongState(g.ID, g.Status, "group draw already completed")
	}

	who, err := e.loadMember(ctx, g.ID, ex.Who)
	if err != nil {
		return err
	}
	if err := access.CanManageExclusions(g, who, requesterID); err != nil {
		return err
	}

	if err := e.store.DeleteExclusion(ctx, g.ID, ex.ID); err != nil {
		return domain.WithGroup(err, g.ID)
	}

	e.logger.Info("exclusion removed", "group", g.ID, "exclusion", ex.ID)
	return nil
}

// ListExclusions returns the exclusions participantID has as the giving side,
// each with the display name of the excluded receiver. Visible to the group
// owner and to the participant.
func (e *Engine) ListExclusions(ctx context.Context, groupID, requesterID, participantID string) ([]domain.ExclusionView, error) {
	g, err := e.store.LoadGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	p, err := e.loadMember(ctx, g.ID, participantID)
	if err != nil {
		return nil, err
	}
	if err := access.CanViewExclusions(g, p, requesterID); err != nil {
		return nil, err
	}

	participants, err := e.store.LoadParticipants(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	exclusions, err := e.store.LoadExclusions(ctx, g.ID)
	if err != nil {
		return nil, err
	}

	names := lo.SliceToMap(participants, func(p domain.Participant) (string, string) {
		return p.ID, p.Name
	})
	own := lo.Filter(exclusions, func(ex domain.Exclusion, _ int) bool {
		return ex.Who == p.ID
	})
	return lo.Map(own, func(ex domain.Exclusion, _ int) domain.ExclusionView {
		return domain.ExclusionView{Exclusion: ex, WhomName: names[ex.Whom]}
	}), nil
}
