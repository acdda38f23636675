package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Graylog2/reviewbot/internal/usecase/skip"
)

// ErrShouldReview is returned when no skip marker is found, indicating
// the lint run should proceed. Use this as a sentinel error in workflow
// scripts.
var ErrShouldReview = errors.New("should review")

// checkSkipCommand creates the check-skip subcommand.
//
// Exit codes:
//   - 0: Skip marker found, lint run should be skipped
//   - 1: No skip marker, lint run should proceed
func checkSkipCommand() *cobra.Command {
	var prBody string

	cmd := &cobra.Command{
		Use:   "check-skip",
		Short: "Check if the lint run should be skipped",
		Long: fmt.Sprintf(`Check a pull-request body for skip markers.

Recognized markers (literal, case-sensitive):
  %s

Exit codes:
  0 - Skip marker found, lint run should be skipped
  1 - No skip marker, lint run should proceed`, strings.Join(skip.Markers(), "\n  ")),
		RunE: func(cmd *cobra.Command, args []string) error {
			result := skip.Check(prBody)

			if result.ShouldSkip {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "skip: marker %q found\n", result.Marker)
				return nil // Exit 0
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "review: no skip marker found")
			return ErrShouldReview // Exit 1
		},
	}

	cmd.Flags().StringVar(&prBody, "pr-body", "", "Pull request body to check")

	return cmd
}
