package cli

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/bennent-g/websnap/internal/websnap"
)

// openSession builds and activates a websnap session from the global
// flags. Every subcommand goes through here so user/database handling
// stays uniform.
func openSession(opts *RootOptions, cmd *cobra.Command) (*websnap.Snap, error) {
	if opts.User == "" {
		return nil, NewExitError(ExitCommandError, "--user is required")
	}

	var sessionOpts []websnap.Option
	if opts.Verbose {
		sessionOpts = append(sessionOpts, websnap.WithLogger(log.New(cmd.ErrOrStderr(), "", 0)))
	}

	snap, err := websnap.New(websnap.Config{
		User:   opts.User,
		DBPath: opts.Database,
	}, sessionOpts...)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	if err := snap.Activate(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return snap, nil
}

// formatter builds the output formatter for a command.
func formatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}
}
