package engine

import (
	"context"
	"log/slog"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/sampler"
)

// Engine runs giftcycle operations against a Storage.
//
// Thread-safety: all methods are safe for concurrent use provided the
// configured sampler.Source is. The default source is.
type Engine struct {
	store   Storage
	sampler *sampler.Sampler
	logger  *slog.Logger

	samplerOpts sampler.Options
	source      sampler.Source
}

// Option configures an Engine.
type Option func(*Engine)

// WithSamplerOptions sets the draw strategy and its bounds.
//
// Default: sampler.DefaultOptions() (retry, 5000 attempts, minimum 3).
func WithSamplerOptions(opts sampler.Options) Option {
	return func(e *Engine) {
		e.samplerOpts = opts
	}
}

// WithSource sets the randomness source for draws.
// Tests pass a seeded *rand.Rand for reproducible cycles.
func WithSource(src sampler.Source) Option {
	return func(e *Engine) {
		e.source = src
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// New creates an Engine over s.
func New(s Storage, opts ...Option) *Engine {
	e := &Engine{
		store:       s,
		logger:      slog.Default(),
		samplerOpts: sampler.DefaultOptions(),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.sampler = sampler.New(e.samplerOpts, e.source)
	return e
}

// SamplerOptions returns the effective sampler configuration.
func (e *Engine) SamplerOptions() sampler.Options {
	return e.sampler.Options()
}

// loadMember loads participantID and checks it belongs to groupID. A
// participant of another group is reported as NOT_FOUND, same as a missing one.
func (e *Engine) loadMember(ctx context.Context, groupID, participantID string) (domain.Participant, error) {
	p, err := e.store.LoadParticipant(ctx, participantID)
	if err != nil {
		return domain.Participant{}, domain.WithGroup(err, groupID)
	}
	if p.GroupID != groupID {
		return domain.Participant{}, domain.NewNotFound(groupID, "participant not found in this group")
	}
	return p, nil
}

// resultLabel is the metrics label for an operation outcome.
func resultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if code := domain.CodeOf(err); code != "" {
		return string(code)
	}
	return "error"
}
