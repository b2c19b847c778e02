// Command websnap inspects and maintains form interaction histories
// captured to a SQLite store.
package main

import (
	"fmt"
	"os"

	"github.com/bennent-g/websnap/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}
