package engine

import (
	"context"
	"log/slog"

	"github.com/samber/lo"

	"github.com/roach88/giftcycle/internal/access"
	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/exclusion"
	"github.com/roach88/giftcycle/internal/sampler"
)

// DrawResult summarizes a completed draw. It never carries assignments.
type DrawResult struct {
	GroupID      string           `json:"group_id"`
	Participants int              `json:"participants"`
	Attempts     int              `json:"attempts"`
	Strategy     sampler.Strategy `json:"strategy"`
}

// RunDraw samples a gift cycle for the group and commits it.
//
// Checks, in order: the group exists, requesterID owns it, it is in
// StatusDraft, and it has enough participants (before any sampling). The
// sampled cycle is then committed by Storage.CommitCycle, which re-checks
// all of the above. On any error nothing is written.
func (e *Engine) RunDraw(ctx context.Context, groupID, requesterID string) (result DrawResult, err error) {
	defer func() {
		drawTotal.WithLabelValues(resultLabel(err)).Inc()
	}()

	g, err := e.store.LoadGroup(ctx, groupID)
	if err != nil {
		return DrawResult{}, err
	}
	if err := access.CanDraw(g, requesterID); err != nil {
		return DrawResult{}, err
	}
	if g.Status != domain.StatusDraft {
		return DrawResult{}, domain.NewWrongState(g.ID, g.Status, "group draw already completed")
	}

	participants, err := e.store.LoadParticipants(ctx, g.ID)
	if err != nil {
		return DrawResult{}, err
	}
	exclusions, err := e.store.LoadExclusions(ctx, g.ID)
	if err != nil {
		return DrawResult{}, err
	}

	ids := lo.Map(participants, func(p domain.Participant, _ int) string { return p.ID })
	graph := exclusion.New(exclusions)

	sampled, err := e.sampler.Sample(ids, graph)
	if err != nil {
		e.logger.Warn("draw failed",
			slog.String("group", g.ID),
			slog.Int("participants", len(ids)),
			slog.Int("exclusions", graph.Len()),
			slog.Float64("density", graph.Density(len(ids))),
			slog.String("code", string(domain.CodeOf(err))),
		)
		return DrawResult{}, domain.WithGroup(err, g.ID)
	}

	err = e.store.CommitCycle(ctx, domain.CommitRequest{
		GroupID:         g.ID,
		RequesterID:     requesterID,
		Cycle:           sampled.Cycle,
		MinParticipants: e.sampler.Options().MinParticipants,
	})
	if err != nil {
		e.logger.Warn("draw commit rejected",
			slog.String("group", g.ID),
			slog.String("code", string(domain.CodeOf(err))),
		)
		return DrawResult{}, err
	}

	drawAttempts.Observe(float64(sampled.Attempts))
	e.logger.Info("draw completed",
		slog.String("group", g.ID),
		slog.Int("participants", len(ids)),
		slog.Int("exclusions", graph.Len()),
		slog.Float64("density", graph.Density(len(ids))),
		slog.Int("attempts", sampled.Attempts),
		slog.String("strategy", string(sampled.Strategy)),
	)

	return DrawResult{
		GroupID:      g.ID,
		Participants: len(ids),
		Attempts:     sampled.Attempts,
		Strategy:     sampled.Strategy,
	}, nil
}
