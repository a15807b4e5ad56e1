//go:generate go run go.uber.org/mock/mockgen -source=storage.go -destination=../mocks/mock_storage.go -package=mocks
package engine

import (
	"context"

	"github.com/roach88/giftcycle/internal/domain"
)

// Storage is the persistence contract the engine depends on.
// *store.Store implements it.
//
// Missing rows are reported as domain NOT_FOUND errors.
type Storage interface {
	LoadGroup(ctx context.Context, groupID string) (domain.Group, error)
	LoadParticipants(ctx context.Context, groupID string) ([]domain.Participant, error)
	LoadParticipant(ctx context.Context, participantID string) (domain.Participant, error)
	LoadExclusions(ctx context.Context, groupID string) ([]domain.Exclusion, error)
	LoadExclusion(ctx context.Context, exclusionID string) (domain.Exclusion, error)

	// CommitCycle writes every receiver and completes the group atomically,
	// re-checking all draw preconditions inside its transaction.
	CommitCycle(ctx context.Context, req domain.CommitRequest) error

	// ReadReceiver returns the participant that participantID gives to, with
	// false while none is assigned. It does no access control.
	ReadReceiver(ctx context.Context, participantID string) (domain.Participant, bool, error)

	InsertExclusion(ctx context.Context, req domain.ExclusionRequest) (domain.ExclusionResult, error)
	DeleteExclusion(ctx context.Context, groupID, exclusionID string) error
}
