package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bennent-g/websnap/internal/history"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <route@element>",
		Short: "Show the records captured for one element",
		Long: `Show every record captured for an element on a route, in capture order.

The argument uses the "{route}@{element}" form, e.g. "#/checkout@address".

Examples:
  websnap history --db ./websnap.db --user u1 "#/home@username"
  websnap history --db ./websnap.db --user u1 "#/home@agree" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(rootOpts, cmd, args[0])
		},
	}

	return cmd
}

func runHistory(opts *RootOptions, cmd *cobra.Command, param string) error {
	ctx := context.Background()

	snap, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	records, err := snap.GetElementHistory(ctx, param)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	out := formatter(opts, cmd)
	return out.SuccessText(renderRecords(records), records)
}

// renderRecords renders a record list as aligned text lines.
func renderRecords(records []history.Record) string {
	if len(records) == 0 {
		return "no records\n"
	}

	var b strings.Builder
	for _, r := range records {
		ts := time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339)
		fmt.Fprintf(&b, "%s  %-7s %s = %q\n", ts, r.Kind, r.Element, r.Value)
	}
	return b.String()
}
