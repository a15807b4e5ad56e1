package testutil

import (
	"fmt"

	"github.com/roach88/giftcycle/internal/domain"
)

// Participants builds linked participants of groupID named after ids.
// Participant "a" gets user id "user-a".
func Participants(groupID string, ids ...string) []domain.Participant {
	out := make([]domain.Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Participant{
			ID:      id,
			GroupID: groupID,
			UserID:  "user-" + id,
			Name:    id,
		})
	}
	return out
}

// ProxyParticipant builds a participant with no linked account.
func ProxyParticipant(groupID, id string) domain.Participant {
	return domain.Participant{ID: id, GroupID: groupID, Name: id, Proxy: true}
}

// Exclusions builds exclusions from who/whom pairs: Exclusions("g", "a", "b", "b", "c")
// forbids a→b and b→c. Ids are "ex-<who>-<whom>".
func Exclusions(groupID string, pairs ...string) []domain.Exclusion {
	if len(pairs)%2 != 0 {
		panic("Exclusions: odd number of ids")
	}
	out := make([]domain.Exclusion, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, domain.Exclusion{
			ID:      fmt.Sprintf("ex-%s-%s", pairs[i], pairs[i+1]),
			GroupID: groupID,
			Who:     pairs[i],
			Whom:    pairs[i+1],
		})
	}
	return out
}

// IDs returns n ids "p000", "p001", ...
func IDs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%03d", i)
	}
	return out
}
