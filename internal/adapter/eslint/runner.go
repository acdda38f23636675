// Package eslint invokes the external ESLint process and converts its
// JSON report into typed lint results at the parse boundary.
package eslint

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// DefaultTimeout is the wall-clock budget for one lint invocation.
const DefaultTimeout = 10 * time.Minute

// ErrTimeout indicates the linter exceeded its wall-clock budget.
// A timeout is a fatal failure for the run, never an empty result.
var ErrTimeout = errors.New("eslint timed out")

// Runner implements the Linter port by shelling out to ESLint.
type Runner struct {
	binary  string
	dir     string
	timeout time.Duration
}

// NewRunner constructs a runner. binary is the ESLint executable, dir is
// the directory to run it in (the lintable subtree), and timeout bounds
// the invocation (DefaultTimeout when zero).
func NewRunner(binary, dir string, timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Runner{binary: binary, dir: dir, timeout: timeout}
}

// Lint runs ESLint over exactly the given files, requesting the JSON
// report. An empty file list skips the invocation and returns an empty
// result. Exit status 1 is ESLint's "ran, found problems" signal and is
// treated as clean as long as the report parses; any other non-zero
// status is fatal with stderr attached.
func (r *Runner) Lint(ctx context.Context, files []string) ([]domain.FileResult, error) {
	if len(files) == 0 {
		return []domain.FileResult{}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	args := append([]string{"--format", "json"}, files...)
	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = r.dir

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%w after %s", ErrTimeout, r.timeout)
	}
	if runErr != nil && !hintsExit(runErr) {
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("eslint: %w: %s", runErr, strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("eslint: %w", runErr)
	}

	return ParseReport(stdout.Bytes())
}

// hintsExit reports whether err is the exit status ESLint uses when the
// run succeeded but produced lint problems.
func hintsExit(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == 1
}
