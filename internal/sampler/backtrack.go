package sampler

import "github.com/roach88/giftcycle/internal/domain"

// search holds the state of one backtracking run.
type search struct {
	ids      []string
	c        Constraints
	src      Source
	maxSteps int

	start      string
	path       []string
	used       map[string]bool
	steps      int
	outOfSteps bool
}

func (s *Sampler) backtrack(ids []string, c Constraints) (Result, error) {
	st := &search{
		ids:      ids,
		c:        c,
		src:      s.src,
		maxSteps: s.opts.MaxSteps,
		used:     make(map[string]bool, len(ids)),
		path:     make([]string, 0, len(ids)),
	}

	// Every Hamiltonian cycle passes through every vertex, so fixing the start
	// loses no solutions.
	st.start = ids[s.src.IntN(len(ids))]
	st.path = append(st.path, st.start)
	st.used[st.start] = true

	if st.extend() {
		cycle := make(domain.Cycle, len(st.path))
		copy(cycle, st.path)
		return Result{Cycle: cycle, Attempts: st.steps, Strategy: StrategyBacktrack}, nil
	}
	return Result{}, domain.NewInfeasible("", st.steps, !st.outOfSteps)
}

// extend tries to grow path to a full cycle. It returns true on success and
// leaves path holding the cycle.
func (st *search) extend() bool {
	last := st.path[len(st.path)-1]
	if len(st.path) == len(st.ids) {
		return !st.c.Forbidden(last, st.start)
	}

	for _, next := range Shuffle(st.src, st.ids) {
		if st.used[next] || st.c.Forbidden(last, next) {
			continue
		}
		if st.steps >= st.maxSteps {
			st.outOfSteps = true
			return false
		}
		st.steps++

		st.used[next] = true
		st.path = append(st.path, next)
		if st.extend() {
			return true
		}
		if st.outOfSteps {
			return false
		}
		st.path = st.path[:len(st.path)-1]
		st.used[next] = false
	}
	return false
}
