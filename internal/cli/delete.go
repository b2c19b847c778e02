package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <route@element>",
		Short: "Delete an element's records on a route",
		Long: `Delete every record for one element on a route. If the element held
the entry's last records, the entry itself is removed.

Examples:
  websnap delete --db ./websnap.db --user u1 "#/home@username"`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runDelete(opts *RootOptions, cmd *cobra.Command, param string) error {
	ctx := context.Background()

	snap, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	if err := snap.DeleteElementHistory(ctx, param); err != nil {
		return WrapExitError(ExitCommandError, "failed to delete history", err)
	}

	out := formatter(opts, cmd)
	return out.SuccessText(fmt.Sprintf("deleted records for %s\n", param),
		map[string]string{"deleted": param})
}
