package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/domain"
)

func TestLoadGroup(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c"})

	g, err := s.LoadGroup(context.Background(), "g1")
	require.NoError(t, err)

	assert.Equal(t, "Office party", g.Title)
	assert.Equal(t, "user-a", g.OwnerID)
	assert.Equal(t, domain.StatusDraft, g.Status)
	assert.Equal(t, fixedNow, g.CreatedAt)
	assert.Nil(t, g.DrawnAt)
}

func TestLoadGroup_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LoadGroup(context.Background(), "missing")

	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestLoadParticipants_InsertionOrder(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"c", "a", "b"})

	ps, err := s.LoadParticipants(context.Background(), "g1")
	require.NoError(t, err)

	require.Len(t, ps, 3)
	assert.Equal(t, "c", ps[0].ID)
	assert.Equal(t, "a", ps[1].ID)
	assert.Equal(t, "b", ps[2].ID)
	assert.Equal(t, "user-c", ps[0].UserID)
	assert.Empty(t, ps[0].ReceiverID)
}

func TestLoadParticipants_EmptyNotNil(t *testing.T) {
	s := createTestStore(t)

	ps, err := s.LoadParticipants(context.Background(), "missing")
	require.NoError(t, err)

	assert.NotNil(t, ps)
	assert.Empty(t, ps)
}

func TestLoadParticipant_Proxy(t *testing.T) {
	s := createTestStore(t)
	_, err := s.Seed(context.Background(), domain.Seed{
		Group: domain.Group{ID: "g1", Title: "Family", OwnerID: "mum"},
		Participants: []domain.Participant{
			{ID: "p-mum", UserID: "mum", Name: "Mum"},
			{ID: "p-gran", Name: "  Gran  ", Proxy: true},
		},
	})
	require.NoError(t, err)

	p, err := s.LoadParticipant(context.Background(), "p-gran")
	require.NoError(t, err)

	assert.True(t, p.Proxy)
	assert.Empty(t, p.UserID)
	assert.Equal(t, "Gran", p.Name)
	assert.Equal(t, "g1", p.GroupID)
}

func TestLoadParticipant_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.LoadParticipant(context.Background(), "nobody")

	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestLoadExclusions_Ordered(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c"}, "c", "a", "a", "c", "a", "b")

	exs, err := s.LoadExclusions(context.Background(), "g1")
	require.NoError(t, err)

	require.Len(t, exs, 3)
	assert.Equal(t, [2]string{"a", "b"}, [2]string{exs[0].Who, exs[0].Whom})
	assert.Equal(t, [2]string{"a", "c"}, [2]string{exs[1].Who, exs[1].Whom})
	assert.Equal(t, [2]string{"c", "a"}, [2]string{exs[2].Who, exs[2].Whom})
}

func TestLoadExclusion(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c"}, "a", "b")

	ex, err := s.LoadExclusion(context.Background(), "ex-a-b")
	require.NoError(t, err)
	assert.Equal(t, domain.Exclusion{ID: "ex-a-b", GroupID: "g1", Who: "a", Whom: "b"}, ex)

	_, err = s.LoadExclusion(context.Background(), "ex-missing")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}

func TestReadReceiver(t *testing.T) {
	s := createTestStore(t)
	seedGroup(t, s, []string{"a", "b", "c"})
	ctx := context.Background()

	_, ok, err := s.ReadReceiver(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok, "unset before the draw")

	require.NoError(t, s.CommitCycle(ctx, domain.CommitRequest{
		GroupID:     "g1",
		RequesterID: "user-a",
		Cycle:       domain.Cycle{"a", "c", "b"},
	}))

	r, ok, err := s.ReadReceiver(ctx, "a")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "c", r.ID)
	assert.Equal(t, "c", r.Name)

	_, _, err = s.ReadReceiver(ctx, "nobody")
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))
}
