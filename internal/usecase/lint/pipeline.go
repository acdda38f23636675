// Package lint orchestrates the per-event pipeline: trigger filter,
// diff resolution, lint run, formatting, and reporting. Data flows
// strictly forward; a fatal error at any stage aborts the run with no
// partial output.
package lint

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Graylog2/reviewbot/internal/domain"
	"github.com/Graylog2/reviewbot/internal/usecase/annotate"
	"github.com/Graylog2/reviewbot/internal/usecase/skip"
)

// DiffResolver lists the lintable files changed between two commits.
type DiffResolver interface {
	ChangedFiles(ctx context.Context, baseSHA, headSHA, prefix string) ([]string, error)
}

// Linter runs the external linter over a file list.
type Linter interface {
	Lint(ctx context.Context, files []string) ([]domain.FileResult, error)
}

// Reporter emits annotations and the run summary to the review surface.
type Reporter interface {
	Report(ctx context.Context, results []domain.FileResult, annotations []domain.Annotation) error
}

// RunRecorder persists a record of a completed run.
type RunRecorder interface {
	RecordRun(ctx context.Context, rec RunRecord) error
}

// RunRecord describes one completed pipeline run.
type RunRecord struct {
	CreatedAt time.Time
	BaseSHA   string
	HeadSHA   string
	Files     int
	Hints     int
	Status    string // passed, failed, or skipped
}

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result summarizes a finished run for the caller.
type Result struct {
	Skipped bool
	Files   int
	Hints   int
}

// HintsError marks a run that completed but produced linter hints.
// The annotations and summary have already been emitted when it is
// returned.
type HintsError struct {
	Count int
}

func (e *HintsError) Error() string {
	return fmt.Sprintf("Found %d linter hints", e.Count)
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRecorder attaches a run-history recorder. Recording failures are
// logged, never fatal.
func WithRecorder(recorder RunRecorder) Option {
	return func(p *Pipeline) { p.recorder = recorder }
}

// WithStyle selects the annotation formatting style.
func WithStyle(style annotate.Style) Option {
	return func(p *Pipeline) { p.style = style }
}

// Pipeline wires the pipeline stages together.
type Pipeline struct {
	diffs    DiffResolver
	linter   Linter
	reporter Reporter
	recorder RunRecorder
	style    annotate.Style
}

// NewPipeline constructs a pipeline over the given collaborators.
func NewPipeline(diffs DiffResolver, linter Linter, reporter Reporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		diffs:    diffs,
		linter:   linter,
		reporter: reporter,
		style:    annotate.StyleDocsMessage,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline for one pull-request event. It returns a
// HintsError when the run completed with findings, so callers can
// surface a failed status after annotations and summary have been
// written. Any other error is a fatal abort with no reported output.
func (p *Pipeline) Run(ctx context.Context, rc domain.RunContext) (Result, error) {
	if skip.ShouldSkip(rc.PullRequestBody) {
		res := Result{Skipped: true}
		p.record(ctx, rc, res)
		return res, nil
	}

	files, err := p.diffs.ChangedFiles(ctx, rc.BaseSHA, rc.HeadSHA, rc.Prefix)
	if err != nil {
		return Result{}, fmt.Errorf("resolve changed files: %w", err)
	}

	results, err := p.linter.Lint(ctx, files)
	if err != nil {
		return Result{}, fmt.Errorf("lint: %w", err)
	}

	annotations := annotate.Format(results, rc.WorkingDirectory, p.style)

	if err := p.reporter.Report(ctx, results, annotations); err != nil {
		return Result{}, fmt.Errorf("report: %w", err)
	}

	res := Result{Files: len(files), Hints: len(annotations)}
	p.record(ctx, rc, res)

	if res.Hints > 0 {
		return res, &HintsError{Count: res.Hints}
	}
	return res, nil
}

func (p *Pipeline) record(ctx context.Context, rc domain.RunContext, res Result) {
	if p.recorder == nil {
		return
	}
	status := StatusPassed
	switch {
	case res.Skipped:
		status = StatusSkipped
	case res.Hints > 0:
		status = StatusFailed
	}
	rec := RunRecord{
		CreatedAt: time.Now().UTC(),
		BaseSHA:   rc.BaseSHA,
		HeadSHA:   rc.HeadSHA,
		Files:     res.Files,
		Hints:     res.Hints,
		Status:    status,
	}
	if err := p.recorder.RecordRun(ctx, rec); err != nil {
		log.Printf("warning: failed to record run: %v", err)
	}
}
