package sampler

import "math/rand/v2"

// Source is the randomness a Sampler draws from. *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniform value in [0, n). Panics if n <= 0.
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultSource uses the math/rand/v2 global generator, which is randomly
// seeded and safe for concurrent use.
var DefaultSource Source = globalSource{}

// Shuffle returns a uniformly shuffled copy of in. The input is not modified.
func Shuffle[T any](src Source, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
