package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/giftcycle/internal/domain"
)

// ExcludeOptions holds flags shared by the exclude subcommands.
type ExcludeOptions struct {
	*RootOptions
	As     string
	Mutual bool
}

// NewExcludeCommand creates the exclude command and its subcommands.
func NewExcludeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exclude",
		Short: "Manage who may not give to whom",
		Long: `Manage exclusions of a group before its draw.

An exclusion forbids one participant from giving to another. The group
owner manages exclusions for everyone; a participant manages their own.`,
	}

	cmd.AddCommand(newExcludeAddCommand(&ExcludeOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newExcludeRemoveCommand(&ExcludeOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newExcludeListCommand(&ExcludeOptions{RootOptions: rootOpts}))

	return cmd
}

func newExcludeAddCommand(opts *ExcludeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <group-id> <who> <whom>",
		Short: "Forbid who from giving to whom",
		Example: `  giftcycle exclude add xmas-2026 p-mum p-dad --mutual --as u-mum`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcludeAdd(opts, args[0], args[1], args[2], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "user id of the requester (required)")
	_ = cmd.MarkFlagRequired("as")
	cmd.Flags().BoolVar(&opts.Mutual, "mutual", false, "also forbid whom from giving to who")

	return cmd
}

func runExcludeAdd(opts *ExcludeOptions, groupID, who, whom string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.engine.AddExclusion(cmd.Context(), domain.ExclusionRequest{
		GroupID:     groupID,
		RequesterID: opts.As,
		Who:         who,
		Whom:        whom,
		Mutual:      opts.Mutual,
	})
	if err != nil {
		return a.out.Fail("add exclusion failed", err)
	}

	if a.out.Format == "json" {
		return a.out.Success(res)
	}
	fmt.Fprintf(a.out.Writer, "✓ Added %s: %s → %s\n", res.Exclusion.ID, res.Exclusion.Who, res.Exclusion.Whom)
	if res.Reverse != nil {
		fmt.Fprintf(a.out.Writer, "✓ Added %s: %s → %s\n", res.Reverse.ID, res.Reverse.Who, res.Reverse.Whom)
	}
	return nil
}

func newExcludeRemoveCommand(opts *ExcludeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "remove <group-id> <exclusion-id>",
		Short:         "Remove an exclusion",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcludeRemove(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "user id of the requester (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runExcludeRemove(opts *ExcludeOptions, groupID, exclusionID string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.engine.RemoveExclusion(cmd.Context(), groupID, opts.As, exclusionID); err != nil {
		return a.out.Fail("remove exclusion failed", err)
	}

	if a.out.Format == "json" {
		return a.out.Success(map[string]string{"removed": exclusionID})
	}
	fmt.Fprintf(a.out.Writer, "✓ Removed %s\n", exclusionID)
	return nil
}

func newExcludeListCommand(opts *ExcludeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list <group-id> <participant-id>",
		Short:         "List who a participant may not give to",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExcludeList(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.As, "as", "", "user id of the requester (required)")
	_ = cmd.MarkFlagRequired("as")

	return cmd
}

func runExcludeList(opts *ExcludeOptions, groupID, participantID string, cmd *cobra.Command) error {
	a, err := openApp(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	views, err := a.engine.ListExclusions(cmd.Context(), groupID, opts.As, participantID)
	if err != nil {
		return a.out.Fail("list exclusions failed", err)
	}

	if a.out.Format == "json" {
		return a.out.Success(views)
	}
	if len(views) == 0 {
		fmt.Fprintf(a.out.Writer, "No exclusions for %s\n", participantID)
		return nil
	}
	for _, v := range views {
		fmt.Fprintf(a.out.Writer, "  %s: not %s (%s)\n", v.ID, v.WhomName, v.Whom)
	}
	return nil
}
