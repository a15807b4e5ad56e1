package sampler

import (
	"fmt"

	"github.com/roach88/giftcycle/internal/domain"
)

// Strategy selects the search algorithm.
type Strategy string

const (
	StrategyRetry     Strategy = "retry"
	StrategyBacktrack Strategy = "backtrack"
)

const (
	// DefaultMaxAttempts bounds the retry strategy.
	DefaultMaxAttempts = 5000

	// DefaultMinParticipants is the smallest group a draw accepts.
	DefaultMinParticipants = domain.MinCycleLength

	// DefaultMaxSteps bounds node expansions of the backtracking strategy.
	DefaultMaxSteps = 1_000_000
)

// Constraints answers whether a directed gift edge is excluded.
// *exclusion.Graph satisfies it.
type Constraints interface {
	Forbidden(giver, receiver string) bool
}

// Options tunes a Sampler. Zero fields take the defaults.
type Options struct {
	MaxAttempts     int
	MinParticipants int
	Strategy        Strategy
	MaxSteps        int
}

// DefaultOptions returns the retry strategy with its reference bounds.
func DefaultOptions() Options {
	return Options{
		MaxAttempts:     DefaultMaxAttempts,
		MinParticipants: DefaultMinParticipants,
		Strategy:        StrategyRetry,
		MaxSteps:        DefaultMaxSteps,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = d.MaxAttempts
	}
	if o.MinParticipants <= 0 {
		o.MinParticipants = d.MinParticipants
	}
	if o.Strategy == "" {
		o.Strategy = d.Strategy
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	return o
}

// Result is an accepted cycle plus how much work it took.
type Result struct {
	Cycle domain.Cycle

	// Attempts counts permutations tried (retry) or node expansions (backtrack).
	Attempts int

	Strategy Strategy
}

// Sampler finds conforming cycles.
//
// Thread-safety: a Sampler is safe for concurrent use when its Source is.
// DefaultSource is; a *rand.Rand is not.
type Sampler struct {
	opts Options
	src  Source
}

// New creates a Sampler. A nil src uses DefaultSource.
func New(opts Options, src Source) *Sampler {
	if src == nil {
		src = DefaultSource
	}
	return &Sampler{opts: opts.withDefaults(), src: src}
}

// Options returns the effective options.
func (s *Sampler) Options() Options {
	return s.opts
}

// Sample searches for a cycle over ids that c admits.
//
// Errors carry domain codes: TOO_FEW_PARTICIPANTS before any search,
// INVALID_ARGUMENT for duplicate ids or an unknown strategy, INFEASIBLE when
// the bound is exhausted.
func (s *Sampler) Sample(ids []string, c Constraints) (Result, error) {
	if len(ids) < s.opts.MinParticipants {
		return Result{}, domain.NewTooFewParticipants("", len(ids), s.opts.MinParticipants)
	}
	if !domain.Cycle(ids).Distinct() {
		return Result{}, domain.NewInvalidArgument("participant ids must be distinct")
	}

	switch s.opts.Strategy {
	case StrategyRetry:
		return s.retry(ids, c)
	case StrategyBacktrack:
		return s.backtrack(ids, c)
	default:
		return Result{}, domain.NewInvalidArgument(fmt.Sprintf("unknown strategy %q", s.opts.Strategy))
	}
}

func (s *Sampler) retry(ids []string, c Constraints) (Result, error) {
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		candidate := domain.Cycle(Shuffle(s.src, ids))
		if conforms(candidate, c) {
			return Result{Cycle: candidate, Attempts: attempt, Strategy: StrategyRetry}, nil
		}
	}
	return Result{}, domain.NewInfeasible("", s.opts.MaxAttempts, false)
}

// conforms walks the cycle, wrap-around included, and stops at the first
// forbidden or self edge.
func conforms(cycle domain.Cycle, c Constraints) bool {
	n := len(cycle)
	for i, giver := range cycle {
		receiver := cycle[(i+1)%n]
		if giver == receiver || c.Forbidden(giver, receiver) {
			return false
		}
	}
	return true
}
