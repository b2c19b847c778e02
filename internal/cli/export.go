package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bennent-g/websnap/internal/history"
)

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump the full history snapshot",
		Long: `Dump every stored entry as a key-to-records mapping.

Text output renders one section per key; JSON output is the raw snapshot.

Examples:
  websnap export --db ./websnap.db --user u1
  websnap export --db ./websnap.db --user u1 --format json > snapshot.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(rootOpts, cmd)
		},
	}

	return cmd
}

func runExport(opts *RootOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	snap, err := openSession(opts, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	snapshot, err := snap.GetAllHistory(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read history", err)
	}

	if opts.Format == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot)
	}

	var b strings.Builder
	for _, key := range history.SortedKeys(snapshot) {
		fmt.Fprintf(&b, "%s:\n", key)
		b.WriteString(indent(renderRecords(snapshot[key])))
	}
	if len(snapshot) == 0 {
		b.WriteString("store is empty\n")
	}
	fmt.Fprint(cmd.OutOrStdout(), b.String())
	return nil
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n") + "\n"
}
