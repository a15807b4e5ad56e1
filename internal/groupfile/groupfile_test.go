package groupfile

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/giftcycle/internal/domain"
)

func familyGenerator() domain.IDGenerator {
	return domain.NewFixedGenerator("p-dad", "p-sam", "p-gran", "x1", "x2", "x3")
}

func assertFamilySeed(t *testing.T, seed domain.Seed) {
	t.Helper()

	assert.Equal(t, "xmas-2026", seed.Group.ID)
	assert.Equal(t, "Family Christmas", seed.Group.Title)
	assert.Equal(t, "u-mum", seed.Group.OwnerID)
	assert.Equal(t, domain.StatusDraft, seed.Group.Status)

	require.Len(t, seed.Participants, 4)
	assert.Equal(t, domain.Participant{ID: "p-mum", GroupID: "xmas-2026", UserID: "u-mum", Name: "Mum"}, seed.Participants[0])
	assert.Equal(t, "p-dad", seed.Participants[1].ID)
	assert.Equal(t, domain.Participant{ID: "p-gran", GroupID: "xmas-2026", Name: "Gran", Proxy: true}, seed.Participants[3])

	assert.Equal(t, []domain.Exclusion{
		{ID: "x1", GroupID: "xmas-2026", Who: "p-mum", Whom: "p-dad"},
		{ID: "x2", GroupID: "xmas-2026", Who: "p-dad", Whom: "p-mum"},
		{ID: "x3", GroupID: "xmas-2026", Who: "p-sam", Whom: "p-gran"},
	}, seed.Exclusions)
}

func TestLoad_YAML(t *testing.T) {
	f, err := Load("testdata/family.yaml")
	require.NoError(t, err)

	seed, err := f.Seed(familyGenerator())
	require.NoError(t, err)

	assertFamilySeed(t, seed)
}

func TestLoad_CUE(t *testing.T) {
	f, err := Load("testdata/family.cue")
	require.NoError(t, err)

	seed, err := f.Seed(familyGenerator())
	require.NoError(t, err)

	assertFamilySeed(t, seed)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{name: "unknown YAML field", path: "testdata/unknown_field.yaml", wantErr: "failed to parse YAML"},
		{name: "unknown CUE field", path: "testdata/unknown_field.cue", wantErr: "does not match schema"},
		{name: "missing CUE title", path: "testdata/missing_title.cue", wantErr: "does not match schema"},
		{name: "missing file", path: "testdata/nope.yaml", wantErr: "failed to read group file"},
		{name: "unsupported extension", path: "testdata/family.json", wantErr: "unsupported group file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeed_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "missing owner",
			yaml: `
group: {title: t}
participants: []
`,
			wantErr: "Owner",
		},
		{
			name: "whitespace name",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1}
  - {name: " \t ", user: u2}
`,
			wantErr: "participants[1]: name is empty",
		},
		{
			name: "linked participant without user",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann}
`,
			wantErr: "user is required",
		},
		{
			name: "proxy with a user",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1, proxy: true}
`,
			wantErr: "proxy participants have no user",
		},
		{
			name: "user twice",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1}
  - {name: Ben, user: u1}
`,
			wantErr: `user "u1" appears more than once`,
		},
		{
			name: "self exclusion",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1}
exclusions:
  - {who: Ann, whom: Ann}
`,
			wantErr: "cannot exclude themselves",
		},
		{
			name: "unknown reference",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1}
exclusions:
  - {who: Ann, whom: Zed}
`,
			wantErr: `unknown participant "Zed"`,
		},
		{
			name: "ambiguous name",
			yaml: `
group: {title: t, owner: u1}
participants:
  - {name: Ann, user: u1}
  - {name: Ann, user: u2}
  - {name: Ben, user: u3}
exclusions:
  - {who: Ann, whom: Ben}
`,
			wantErr: "ambiguous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := DecodeYAML(strings.NewReader(tt.yaml))
			require.NoError(t, err)

			_, err = f.Seed(domain.NewFixedGenerator("g", "p1", "p2", "p3", "x1"))

			require.Error(t, err)
			assert.True(t, domain.IsCode(err, domain.CodeInvalidArgument))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSeed_NameReferencesAreNormalized(t *testing.T) {
	f, err := DecodeYAML(strings.NewReader(`
group: {title: t, owner: u1}
participants:
  - {id: a, name: "José  Luis", user: u1}
  - {id: b, name: Ben, user: u2}
exclusions:
  - {who: " José Luis ", whom: b}
`))
	require.NoError(t, err)

	seed, err := f.Seed(domain.NewFixedGenerator("g", "x1"))
	require.NoError(t, err)

	assert.Equal(t, "José Luis", seed.Participants[0].Name)
	require.Len(t, seed.Exclusions, 1)
	assert.Equal(t, "a", seed.Exclusions[0].Who)
}
