package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RevealOptions holds flags for the reveal command.
type RevealOptions struct {
	*RootOptions
	As string
}

// NewRevealCommand creates the reveal command.
func NewRevealCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RevealOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "reveal <group-id> <participant-id>",
		Short: "Show who a participant gives to",
		Long: `Show the receiver of one participant after the draw.

A participant can reveal only their own receiver. The group owner can
also reveal receivers for proxy participants who have no account.

Example:
  giftcycle reveal xmas-2026 p-sam --as u-sam`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReveal(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "user id of the requester (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runReveal(opts *RevealOptions, groupID, participantID string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	assignment, err := a.engine.GetAssignment(cmd.Context(), groupID, opts.As, participantID)
	if err != nil {
		return a.out.Fail("reveal failed", err)
	}

	if a.out.Format == "json" {
		return a.out.Success(assignment)
	}
	fmt.Fprintf(a.out.Writer, "%s gives to %s\n", assignment.GiverID, assignment.ReceiverName)
	return nil
}
