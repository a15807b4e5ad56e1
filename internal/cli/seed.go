package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/giftcycle/internal/domain"
	"github.com/roach88/giftcycle/internal/groupfile"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
}

// SeedResult is the JSON payload of a successful seed.
type SeedResult struct {
	GroupID      string `json:"group_id"`
	Participants int    `json:"participants"`
	Exclusions   int    `json:"exclusions"`
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed <group-file>",
		Short: "Create a group from a YAML or CUE file",
		Long: `Create a group, its participants and exclusions from a definition file.

Files ending in .yaml or .yml are read as YAML; files ending in .cue are
validated against the built-in #Group schema. Exclusions may name
participants by id or by display name.

Example:
  giftcycle seed ./family.yaml
  giftcycle seed ./family.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	f, err := groupfile.Load(path)
	if err != nil {
		return out.Fail("failed to load group file", err)
	}

	ids := opts.IDs
	if ids == nil {
		ids = domain.UUIDv7Generator{}
	}
	seed, err := f.Seed(ids)
	if err != nil {
		return out.Fail("invalid group file", err)
	}

	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	stored, err := a.store.Seed(cmd.Context(), seed)
	if err != nil {
		return a.out.Fail("failed to store group", err)
	}

	res := SeedResult{
		GroupID:      stored.Group.ID,
		Participants: len(stored.Participants),
		Exclusions:   len(stored.Exclusions),
	}
	if a.out.Format == "json" {
		return a.out.Success(res)
	}
	fmt.Fprintf(a.out.Writer, "✓ Created group %s (%s)\n", res.GroupID, stored.Group.Title)
	for _, p := range stored.Participants {
		kind := "user " + p.UserID
		if p.Proxy {
			kind = "proxy"
		}
		fmt.Fprintf(a.out.Writer, "  %s: %s [%s]\n", p.ID, p.Name, kind)
	}
	fmt.Fprintf(a.out.Writer, "  %d exclusion(s)\n", res.Exclusions)
	return nil
}
