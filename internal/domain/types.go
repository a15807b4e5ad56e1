package domain

import "time"

// MinCycleLength is the smallest group a draw may ever commit. With two
// participants each would know who gives to them.
const MinCycleLength = 3

// Status is the draw state of a group.
type Status string

const (
	// StatusDraft is the pre-draw state. Exclusions may change and a draw may run.
	StatusDraft Status = "DRAFT"

	// StatusCompleted is terminal. Receivers are written and readable.
	StatusCompleted Status = "COMPLETED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusCompleted
}

// Group is the aggregate that owns participants and exclusions.
type Group struct {
	ID        string
	Title     string
	OwnerID   string
	Status    Status
	CreatedAt time.Time
	DrawnAt   *time.Time
}

// IsOwner reports whether requesterID owns the group.
func (g Group) IsOwner(requesterID string) bool {
	return requesterID != "" && g.OwnerID == requesterID
}

// Participant is a member of a group.
//
// UserID is empty for proxy-managed participants: they have no linked account
// and the group owner acts on their behalf.
type Participant struct {
	ID         string
	GroupID    string
	UserID     string
	Name       string
	Proxy      bool
	ReceiverID string
}

// Is reports whether requesterID is the linked account of p.
func (p Participant) Is(requesterID string) bool {
	return requesterID != "" && p.UserID == requesterID
}

// Exclusion forbids Who from giving to Whom within a group. Directed.
type Exclusion struct {
	ID      string `json:"id"`
	GroupID string `json:"group_id"`
	Who     string `json:"who"`
	Whom    string `json:"whom"`
}

// ExclusionRequest asks for a new exclusion, and its reverse when Mutual is set.
type ExclusionRequest struct {
	GroupID     string
	RequesterID string
	Who         string
	Whom        string
	Mutual      bool
}

// ExclusionResult reports what an exclusion request created.
// Reverse is nil when no mutual pair was requested or it already existed.
type ExclusionResult struct {
	Exclusion Exclusion  `json:"exclusion"`
	Reverse   *Exclusion `json:"reverse,omitempty"`
}

// ExclusionView is an exclusion with the display name of its target.
type ExclusionView struct {
	Exclusion
	WhomName string `json:"whom_name"`
}

// CommitRequest carries an accepted cycle to storage.
type CommitRequest struct {
	GroupID         string
	RequesterID     string
	Cycle           Cycle
	MinParticipants int
}

// Assignment is the single fact revealed to an authorized reader.
type Assignment struct {
	GiverID      string `json:"giver_id"`
	ReceiverName string `json:"receiver_name"`
}

// Seed describes a complete group to insert in one transaction.
type Seed struct {
	Group        Group
	Participants []Participant
	Exclusions   []Exclusion
}
