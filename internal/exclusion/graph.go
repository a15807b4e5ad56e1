// Package exclusion answers "may A give to B?" for one group.
//
// A Graph is built once per draw from the authoritative exclusion list and is
// read-only afterwards, so it is safe to share between goroutines.
package exclusion

import "github.com/roach88/giftcycle/internal/domain"

// Graph maps each giver to the set of receivers it must not give to.
type Graph struct {
	forbidden map[string]map[string]struct{}
	pairs     int
}

// New builds a Graph from directed exclusions. Duplicate pairs count once.
func New(exclusions []domain.Exclusion) *Graph {
	g := &Graph{forbidden: make(map[string]map[string]struct{}, len(exclusions))}
	for _, ex := range exclusions {
		set, ok := g.forbidden[ex.Who]
		if !ok {
			set = make(map[string]struct{})
			g.forbidden[ex.Who] = set
		}
		if _, dup := set[ex.Whom]; dup {
			continue
		}
		set[ex.Whom] = struct{}{}
		g.pairs++
	}
	return g
}

// Forbidden reports whether an exclusion (giver, receiver) exists.
func (g *Graph) Forbidden(giver, receiver string) bool {
	_, ok := g.forbidden[giver][receiver]
	return ok
}

// Allowed reports whether giver may give to receiver: distinct and not excluded.
func (g *Graph) Allowed(giver, receiver string) bool {
	return giver != receiver && !g.Forbidden(giver, receiver)
}

// Admits reports whether every edge of c, wrap-around included, is allowed.
func (g *Graph) Admits(c domain.Cycle) bool {
	if len(c) == 0 {
		return false
	}
	for _, p := range c.Pairs() {
		if !g.Allowed(p.Giver, p.Receiver) {
			return false
		}
	}
	return true
}

// Len returns the number of distinct forbidden pairs.
func (g *Graph) Len() int {
	return g.pairs
}

// Density returns the share of the n(n-1) possible directed edges that are
// forbidden. Exclusions naming ids outside the group still count.
func (g *Graph) Density(n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(g.pairs) / float64(n*(n-1))
}
