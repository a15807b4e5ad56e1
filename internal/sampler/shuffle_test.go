package sampler

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/testutil"
)

func TestShuffle_DoesNotModifyInput(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	out := Shuffle(testutil.NewSource(1), in)

	assert.Equal(t, []string{"a", "b", "c", "d"}, in)
	assert.ElementsMatch(t, in, out)
}

func TestShuffle_Scripted(t *testing.T) {
	// i=2 swaps with 0, i=1 swaps with 1: [a b c] -> [c b a] -> [c b a]
	src := testutil.NewScriptedSource(0, 1)
	out := Shuffle(src, []string{"a", "b", "c"})

	assert.Equal(t, []string{"c", "b", "a"}, out)
	assert.Equal(t, 2, src.Calls())
}

func TestShuffle_Empty(t *testing.T) {
	assert.Empty(t, Shuffle(testutil.NewSource(1), []int{}))
	assert.Equal(t, []int{7}, Shuffle(testutil.NewSource(1), []int{7}))
}

func TestShuffle_Deterministic(t *testing.T) {
	in := testutil.IDs(20)

	a := Shuffle(testutil.NewSource(99), in)
	b := Shuffle(testutil.NewSource(99), in)

	assert.Equal(t, a, b)
}

func TestShuffle_Unbiased(t *testing.T) {
	// Every one of the 3! orderings should come up about equally often.
	src := testutil.NewSource(7)
	counts := map[string]int{}
	const draws = 60000

	for i := 0; i < draws; i++ {
		out := Shuffle(src, []string{"a", "b", "c"})
		counts[out[0]+out[1]+out[2]]++
	}

	require.Len(t, counts, 6)
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		assert.InDelta(t, draws/6, counts[k], 500, "ordering %s", k)
	}
}
