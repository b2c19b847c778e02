package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// KeysOptions holds flags for the keys command.
type KeysOptions struct {
	*RootOptions
	Info   bool
	ByUser bool
}

// NewKeysCommand creates the keys command.
func NewKeysCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &KeysOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List stored composite keys",
		Long: `List every "{user}@{route}" composite key present in the store.

Examples:
  websnap keys --db ./websnap.db --user u1
  websnap keys --db ./websnap.db --user u1 --info
  websnap keys --db ./websnap.db --user u1 --by-user --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(opts, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Info, "info", false, "split keys into user and route")
	cmd.Flags().BoolVar(&opts.ByUser, "by-user", false, "group routes by user")

	return cmd
}

func runKeys(opts *KeysOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	snap, err := openSession(opts.RootOptions, cmd)
	if err != nil {
		return err
	}
	defer snap.Close()

	out := formatter(opts.RootOptions, cmd)

	switch {
	case opts.ByUser:
		grouped, err := snap.GetStoreKeysGroupedByUser(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list keys", err)
		}
		var b strings.Builder
		users := make([]string, 0, len(grouped))
		for user := range grouped {
			users = append(users, user)
		}
		sort.Strings(users)
		for _, user := range users {
			fmt.Fprintf(&b, "%s:\n", user)
			for _, routePath := range grouped[user] {
				fmt.Fprintf(&b, "  %s\n", routePath)
			}
		}
		return out.SuccessText(b.String(), grouped)

	case opts.Info:
		infos, err := snap.GetStoreKeysInfo(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list keys", err)
		}
		var b strings.Builder
		for _, info := range infos {
			fmt.Fprintf(&b, "user=%s route=%s\n", info.User, info.Route)
		}
		return out.SuccessText(b.String(), infos)

	default:
		keys, err := snap.GetStoreKeys(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list keys", err)
		}
		var b strings.Builder
		for _, key := range keys {
			fmt.Fprintln(&b, key)
		}
		return out.SuccessText(b.String(), keys)
	}
}
