package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// DrawOptions holds flags for the draw command.
type DrawOptions struct {
	*RootOptions
	As string
}

// NewDrawCommand creates the draw command.
func NewDrawCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DrawOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "draw <group-id>",
		Short: "Run the draw for a group",
		Long: `Run the draw for a group.

Only the group owner may run the draw, and only once. The output reports
how many participants were drawn, never who gives to whom.

Example:
  giftcycle draw xmas-2026 --as u-mum
  giftcycle draw xmas-2026 --as u-mum --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDraw(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "user id of the requester (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runDraw(opts *DrawOptions, groupID string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.engine.RunDraw(cmd.Context(), groupID, opts.As)
	if err != nil {
		return a.out.Fail("draw failed", err)
	}

	if a.out.Format == "json" {
		return a.out.Success(res)
	}
	fmt.Fprintf(a.out.Writer, "✓ Drew group %s: %d participants\n", res.GroupID, res.Participants)
	a.out.VerboseLog("strategy=%s attempts=%d", res.Strategy, res.Attempts)
	return nil
}
