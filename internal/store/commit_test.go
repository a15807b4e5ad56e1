package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/domain"
)

func commitReq(cycle ...string) domain.CommitRequest {
	return domain.CommitRequest{
		GroupID:     "g1",
		RequesterID: "user-a",
		Cycle:       domain.Cycle(cycle),
	}
}

func TestCommitCycle(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c", "d"})
	ctx := context.Background()

	require.NoError(t, s.CommitCycle(ctx, commitReq("a", "c", "b", "d")))

	assert.Equal(t, map[string]string{"a": "c", "c": "b", "b": "d", "d": "a"}, receivers(t, s, "g1"))
	assert.True(t, domain.IsSingleCycle(receivers(t, s, "g1")))

	g, err := s.LoadGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, g.Status)
	require.NotNil(t, g.DrawnAt)
	assert.Equal(t, fixedNow, *g.DrawnAt)
}

func TestCommitCycle_OnlyOnce(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c"})
	ctx := context.Background()

	require.NoError(t, s.CommitCycle(ctx, commitReq("a", "b", "c")))
	before := receivers(t, s, "g1")

	err := s.CommitCycle(ctx, commitReq("a", "c", "b"))

	assert.True(t, domain.IsCode(err, domain.CodeWrongState))
	assert.Equal(t, before, receivers(t, s, "g1"))
}

func TestCommitCycle_Preconditions(t *testing.T) {
	tests := []struct {
		name  string
		ids   []string
		pairs []string
		req   domain.CommitRequest
		code  domain.Code
	}{
		{
			name: "unknown group",
			ids:  []string{"a", "b", "c"},
			req:  domain.CommitRequest{GroupID: "nope", RequesterID: "user-a", Cycle: domain.Cycle{"a", "b", "c"}},
			code: domain.CodeNotFound,
		},
		{
			name: "not the owner",
			ids:  []string{"a", "b", "c"},
			req:  domain.CommitRequest{GroupID: "g1", RequesterID: "user-b", Cycle: domain.Cycle{"a", "b", "c"}},
			code: domain.CodeUnauthorized,
		},
		{
			name: "too few participants",
			ids:  []string{"a", "b"},
			req:  commitReq("a", "b"),
			code: domain.CodeTooFewParticipants,
		},
		{
			name: "configured minimum above the group size",
			ids:  []string{"a", "b", "c"},
			req:  domain.CommitRequest{GroupID: "g1", RequesterID: "user-a", Cycle: domain.Cycle{"a", "b", "c"}, MinParticipants: 4},
			code: domain.CodeTooFewParticipants,
		},
		{
			name: "participant joined after sampling",
			ids:  []string{"a", "b", "c", "d"},
			req:  commitReq("a", "b", "c"),
			code: domain.CodeCommitFailed,
		},
		{
			name:  "exclusion added after sampling",
			ids:   []string{"a", "b", "c"},
			pairs: []string{"a", "b"},
			req:   commitReq("a", "b", "c"),
			code:  domain.CodeCommitFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := createTestStore(t)
			seedGroup(t, s, tt.ids, tt.pairs...)

			err := s.CommitCycle(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.code, domain.CodeOf(err))
			for id, r := range receivers(t, s, "g1") {
				assert.Empty(t, r, "participant %s must have no receiver", id)
			}
			g, err := s.LoadGroup(context.Background(), "g1")
			require.NoError(t, err)
			assert.Equal(t, domain.StatusDraft, g.Status)
		})
	}
}

func TestCommitCycle_RollsBackPartialWrites(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"p1", "p2", "p3", "p4"})
	ctx := context.Background()

	// Fail the third receiver write after two have already succeeded.
	_, err := s.db.Exec(`
		CREATE TRIGGER fail_p3 BEFORE UPDATE OF receiver_id ON participants
		WHEN NEW.id = 'p3'
		BEGIN
			SELECT RAISE(ABORT, 'boom');
		END
	`)
	require.NoError(t, err)

	err = s.CommitCycle(ctx, domain.CommitRequest{
		GroupID:     "g1",
		RequesterID: "user-a",
		Cycle:       domain.Cycle{"p1", "p2", "p3", "p4"},
	})

	assert.True(t, domain.IsCode(err, domain.CodeCommitFailed))
	for id, r := range receivers(t, s, "g1") {
		assert.Empty(t, r, "participant %s must have no receiver", id)
	}
	g, err := s.LoadGroup(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDraft, g.Status)
	assert.Nil(t, g.DrawnAt)
}

func TestCommitCycle_GroupReadFailureIsCommitFailed(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"p1", "p2", "p3"})

	_, err := s.db.Exec(`ALTER TABLE groups RENAME TO groups_moved`)
	require.NoError(t, err)

	err = s.CommitCycle(context.Background(), commitReq("p1", "p2", "p3"))
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.CodeCommitFailed), "got %v", err)

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "g1", de.GroupID)
	assert.Contains(t, err.Error(), "load group")
}

func TestCommitCycle_ConcurrentCommitsExactlyOneWins(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c", "d", "e"})
	ctx := context.Background()

	cycles := []domain.Cycle{
		{"a", "b", "c", "d", "e"},
		{"a", "c", "e", "b", "d"},
		{"a", "e", "d", "c", "b"},
		{"a", "d", "b", "e", "c"},
	}

	var wg sync.WaitGroup
	errs := make([]error, len(cycles)*4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.CommitCycle(ctx, domain.CommitRequest{
				GroupID:     "g1",
				RequesterID: "user-a",
				Cycle:       cycles[i%len(cycles)],
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.True(t, domain.IsCode(err, domain.CodeWrongState), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, wins)
	assert.True(t, domain.IsSingleCycle(receivers(t, s, "g1")))
}
