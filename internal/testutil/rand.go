package testutil

import "math/rand/v2"

// NewSource returns a deterministic PCG-backed random source.
//
// The same seed always yields the same sequence, so a sampler driven by it
// produces the same cycles on every run.
//
// Thread-safety: the returned *rand.Rand is NOT safe for concurrent use.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// ScriptedSource replays fixed IntN results, then panics.
//
// Each value is reduced modulo n, so a script written for one participant
// count stays in range for smaller calls. Negative values wrap around.
type ScriptedSource struct {
	values []int
	idx    int
}

// NewScriptedSource creates a source that returns values in order.
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// IntN returns the next scripted value modulo n.
//
// Panics if all values have been consumed: the test drew more randomness than
// it declared.
func (s *ScriptedSource) IntN(n int) int {
	if s.idx >= len(s.values) {
		panic("ScriptedSource: all values exhausted")
	}
	v := ((s.values[s.idx] % n) + n) % n
	s.idx++
	return v
}

// Calls returns how many values have been consumed.
func (s *ScriptedSource) Calls() int {
	return s.idx
}
