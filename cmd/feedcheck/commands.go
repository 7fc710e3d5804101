package main

import (
	"errors"
	"fmt"
	"time"

	"feedreader/core/suite"
	"feedreader/infrastructure/logger/structured"
	"feedreader/internal/app"
	"feedreader/pkg/config"
	"github.com/spf13/cobra"
)

// errChecksFailed makes the process exit non-zero without repeating the report
var errChecksFailed = errors.New("one or more checks failed")

func newRunCmd() *cobra.Command {
	var (
		timeout time.Duration
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every check and print one line per case",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, verbose)
			if err != nil {
				return err
			}
			defer a.Close()

			if timeout > 0 {
				a.Config.Reader.LoadTimeout = timeout
			}

			report, err := a.RunChecks(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, report.Summary())
			if !report.OK() {
				return errChecksFailed
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&timeout, "timeout", suite.DefaultTimeout, "per-step timeout, including waits for feed loads")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log page activity to stderr")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the configured feed collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp(cmd, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			for i, f := range a.Feeds {
				fmt.Fprintf(out, "%d\t%s\t%s\n", i, f.Name, f.URL)
			}
			if err := a.Feeds.Validate(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return nil
		},
	}
}

// buildApp reads the environment configuration and applies command flags over it
func buildApp(cmd *cobra.Command, verbose bool) (*app.App, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if feeds, _ := cmd.Flags().GetString("feeds"); feeds != "" {
		cfg.Reader.FeedsFile = feeds
	}

	level := "error"
	if verbose {
		level = "debug"
	}

	return app.New(cfg, structured.New(structured.Options{Level: level, Output: cmd.ErrOrStderr()}))
}
