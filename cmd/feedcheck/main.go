// ABOUTME: feedcheck runs the feed reader's behavioural checks from the command line
// ABOUTME: Exits non-zero when any check fails, for use in CI

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(os.Stderr, "feedcheck:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "feedcheck",
		Short:         "Check a feed reader configuration against live feeds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("feeds", "", "YAML feed collection (defaults to FEEDS_FILE or the built-in feeds)")
	root.AddCommand(newRunCmd(), newListCmd())
	return root
}
