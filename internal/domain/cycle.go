package domain

import "slices"

// Cycle is an ordering of participant ids. Element i gives to element
// (i+1) mod len. The wrap-around pair closes the cycle.
type Cycle []string

// Pair is one directed gift edge.
type Pair struct {
	Giver    string
	Receiver string
}

// Pairs returns the len(c) directed edges of the cycle, wrap-around last.
func (c Cycle) Pairs() []Pair {
	n := len(c)
	pairs := make([]Pair, 0, n)
	for i, giver := range c {
		pairs = append(pairs, Pair{Giver: giver, Receiver: c[(i+1)%n]})
	}
	return pairs
}

// Receivers maps every giver to its receiver.
func (c Cycle) Receivers() map[string]string {
	out := make(map[string]string, len(c))
	for _, p := range c.Pairs() {
		out[p.Giver] = p.Receiver
	}
	return out
}

// Distinct reports whether every id in c appears once.
func (c Cycle) Distinct() bool {
	seen := make(map[string]struct{}, len(c))
	for _, id := range c {
		if _, ok := seen[id]; ok {
			return false
		}
		seen[id] = struct{}{}
	}
	return true
}

// Canonical rotates c so that its smallest id comes first. Two orderings
// describing the same cycle have equal canonical forms.
func (c Cycle) Canonical() Cycle {
	if len(c) == 0 {
		return Cycle{}
	}
	start := 0
	for i, id := range c {
		if id < c[start] {
			start = i
		}
	}
	out := make(Cycle, 0, len(c))
	out = append(out, c[start:]...)
	out = append(out, c[:start]...)
	return out
}

// SameMembers reports whether c is a permutation of ids.
func (c Cycle) SameMembers(ids []string) bool {
	if len(c) != len(ids) || !c.Distinct() {
		return false
	}
	a := slices.Clone([]string(c))
	b := slices.Clone(ids)
	slices.Sort(a)
	slices.Sort(b)
	return slices.Equal(a, b)
}

// IsSingleCycle reports whether receivers describes one cycle covering every
// key: following receivers from any giver visits all others exactly once
// before returning, and nobody receives from themselves.
func IsSingleCycle(receivers map[string]string) bool {
	n := len(receivers)
	if n == 0 {
		return false
	}
	var start string
	for giver := range receivers {
		start = giver
		break
	}
	visited := make(map[string]struct{}, n)
	cur := start
	for i := 0; i < n; i++ {
		if _, ok := visited[cur]; ok {
			return false
		}
		visited[cur] = struct{}{}
		next, ok := receivers[cur]
		if !ok || next == cur {
			return false
		}
		cur = next
	}
	return cur == start && len(visited) == n
}
