package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// ClearOptions holds flags for the clear command.
type ClearOptions struct {
	*RootOptions
	Yes bool
}

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ClearOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored entry",
		Long: `Remove every entry from the history store. Requires --yes; there is
no way to recover cleared history.

Examples:
  websnap clear --db ./websnap.db --user u1 --yes`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClear(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "confirm clearing all history")

	return cmd
}

func runClear(opts *ClearOptions, cmd *cobra.Command) error {
	if !opts.Yes {
		return NewExitError(ExitCommandError, "refusing to clear without --yes")
	}

	ctx := context.Background()

	snap, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	if err := snap.ClearAllHistory(ctx); err != nil {
		return WrapExitError(ExitCommandError, "failed to clear history", err)
	}

	out := formatter(opts.RootOptions, cmd)
	return out.SuccessText("history cleared\n", map[string]string{"cleared": "all"})
}
