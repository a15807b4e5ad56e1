// Package access is the one place that decides who may do what to a group.
//
// Every engine operation asks this package instead of comparing ids itself.
// The reveal rule: a receiver is shown only to the giver, or to the group
// owner when the giver has no account of their own.
package access

import "github.com/roach88/giftcycle/internal/domain"

// CanDraw allows only the group owner to start the draw.
func CanDraw(g domain.Group, requesterID string) error {
	if !g.IsOwner(requesterID) {
		return domain.NewUnauthorized(g.ID, "only the group owner can run the draw")
	}
	return nil
}

// CanReveal decides whether requesterID may read target's receiver.
//
// Allowed: the target's own linked account; the group owner when the target
// is proxy-managed. Everyone else is denied, the owner included for
// participants who have their own account.
func CanReveal(g domain.Group, target domain.Participant, requesterID string) error {
	if target.Is(requesterID) {
		return nil
	}
	if g.IsOwner(requesterID) && target.Proxy {
		return nil
	}
	return domain.NewUnauthorized(g.ID, "permission denied")
}

// CanManageExclusions allows the owner, or the giving side of the exclusion,
// to add or remove it.
func CanManageExclusions(g domain.Group, who domain.Participant, requesterID string) error {
	if g.IsOwner(requesterID) || who.Is(requesterID) {
		return nil
	}
	return domain.NewUnauthorized(g.ID, "permission denied")
}

// CanViewExclusions allows the owner, or the participant themselves, to list
// the participant's exclusions.
func CanViewExclusions(g domain.Group, p domain.Participant, requesterID string) error {
	return CanManageExclusions(g, p, requesterID)
}
