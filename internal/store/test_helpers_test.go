package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/testutil"
)

var fixedNow = time.Date(2026, 12, 1, 18, 0, 0, 0, time.UTC)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// seedGroup stores group "g1" owned by "user-a" with linked participants
// named after ids and the given who/whom exclusion pairs.
func seedGroup(t *testing.T, s *Store, ids []string, pairs ...string) domain.Seed {
	t.Helper()
	seeded, err := s.Seed(context.Background(), domain.Seed{
		Group:        domain.Group{ID: "g1", Title: "Office party", OwnerID: "user-a"},
		Participants: testutil.Participants("g1", ids...),
		Exclusions:   testutil.Exclusions("g1", pairs...),
	})
	require.NoError(t, err)
	return seeded
}

// receivers reads every participant's receiver_id directly.
func receivers(t *testing.T, s *Store, groupID string) map[string]string {
	t.Helper()
	ps, err := s.LoadParticipants(context.Background(), groupID)
	require.NoError(t, err)
	out := make(map[string]string, len(ps))
	for _, p := range ps {
		out[p.ID] = p.ReceiverID
	}
	return out
}
