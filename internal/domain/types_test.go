package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroup_IsOwner(t *testing.T) {
	g := Group{OwnerID: "u1"}

	assert.True(t, g.IsOwner("u1"))
	assert.False(t, g.IsOwner("u2"))
	assert.False(t, Group{}.IsOwner(""))
}

func TestParticipant_Is(t *testing.T) {
	linked := Participant{UserID: "u1"}
	proxy := Participant{Proxy: true}

	assert.True(t, linked.Is("u1"))
	assert.False(t, linked.Is("u2"))
	assert.False(t, proxy.Is(""))
}

func TestStatus_Valid(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusCompleted.Valid())
	assert.False(t, Status("STARTED").Valid())
}
