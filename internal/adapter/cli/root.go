// Package cli wires the cobra command surface of the bot.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Graylog2/reviewbot/internal/domain"
	"github.com/Graylog2/reviewbot/internal/usecase/lint"
)

// ErrVersionRequested indicates the user requested the CLI version and
// no further work should be done.
var ErrVersionRequested = errors.New("version requested")

// PipelineRunner runs the lint pipeline for one pull-request event.
type PipelineRunner interface {
	Run(ctx context.Context, rc domain.RunContext) (lint.Result, error)
}

// HistoryLister reads back recorded runs.
type HistoryLister interface {
	RecentRuns(ctx context.Context, limit int) ([]lint.RunRecord, error)
}

// ServeFunc starts the webhook server on the given address.
type ServeFunc func(ctx context.Context, addr string) error

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Runner  PipelineRunner
	History HistoryLister // nil when the run store is disabled
	Serve   ServeFunc
	Args    Arguments

	DefaultPrefix           string
	DefaultWorkingDirectory string
	DefaultServerAddr       string
	Version                 string
}

// NewRootCommand constructs the root cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:   "reviewbot",
		Short: "ESLint review bot for GitHub pull requests",
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	outWriter := deps.Args.OutWriter
	if outWriter == nil {
		outWriter = os.Stdout
	}
	errWriter := deps.Args.ErrWriter
	if errWriter == nil {
		errWriter = os.Stderr
	}
	root.SetOut(outWriter)
	root.SetErr(errWriter)

	root.AddCommand(runCommand(deps))
	root.AddCommand(checkSkipCommand())
	root.AddCommand(serveCommand(deps))
	root.AddCommand(historyCommand(deps))

	var showVersion bool
	root.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "Show version and exit")
	versionHandler := func(cmd *cobra.Command, args []string) error {
		if showVersion {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), versionString)
			return ErrVersionRequested
		}
		return nil
	}
	root.PersistentPreRunE = versionHandler
	root.RunE = func(cmd *cobra.Command, args []string) error {
		if err := versionHandler(cmd, args); err != nil {
			return err
		}
		return cmd.Help()
	}

	return root
}

func runCommand(deps Dependencies) *cobra.Command {
	var baseSHA string
	var headSHA string
	var prBody string
	var prefix string
	var workingDirectory string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Lint the files changed between two commits",
		Long: `Run the lint pipeline for one pull-request event.

Changed files under the configured prefix are linted with ESLint;
each hint becomes a warning annotation, and a summary is appended to
the job summary. The command exits non-zero when hints were found.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := domain.RunContext{
				BaseSHA:          baseSHA,
				HeadSHA:          headSHA,
				Prefix:           prefix,
				WorkingDirectory: workingDirectory,
				PullRequestBody:  prBody,
			}

			res, err := deps.Runner.Run(cmd.Context(), rc)
			if err != nil {
				return err
			}

			if res.Skipped {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "skip marker found, lint run skipped")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "linted %d changed files, no hints found\n", res.Files)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseSHA, "base", "", "Base commit SHA of the pull request")
	cmd.Flags().StringVar(&headSHA, "head", "", "Head commit SHA of the pull request")
	cmd.Flags().StringVar(&prBody, "pr-body", "", "Pull request body, checked for skip markers")
	cmd.Flags().StringVar(&prefix, "prefix", deps.DefaultPrefix, "Subdirectory to scope linting to")
	cmd.Flags().StringVar(&workingDirectory, "working-directory", deps.DefaultWorkingDirectory, "Root relative to which paths are normalized")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("head")

	return cmd
}

func serveCommand(deps Dependencies) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run as a webhook server receiving pull-request events",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Serve == nil {
				return errors.New("server mode is not available")
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", addr)
			return deps.Serve(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", deps.DefaultServerAddr, "Address to listen on")

	return cmd
}

func historyCommand(deps Dependencies) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently recorded lint runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.History == nil {
				return errors.New("run history store is not enabled")
			}

			records, err := deps.History.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				_, _ = fmt.Fprintln(out, "no recorded runs")
				return nil
			}
			for _, rec := range records {
				_, _ = fmt.Fprintf(out, "%s  %s..%s  files=%d hints=%d  %s\n",
					rec.CreatedAt.Format("2006-01-02 15:04:05"),
					shortSHA(rec.BaseSHA), shortSHA(rec.HeadSHA),
					rec.Files, rec.Hints, rec.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum number of runs to show")

	return cmd
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}
