package lint_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Graylog2/reviewbot/internal/domain"
	"github.com/Graylog2/reviewbot/internal/usecase/lint"
)

type diffStub struct {
	files  []string
	err    error
	called bool
	base   string
	head   string
	prefix string
}

func (d *diffStub) ChangedFiles(ctx context.Context, baseSHA, headSHA, prefix string) ([]string, error) {
	d.called = true
	d.base, d.head, d.prefix = baseSHA, headSHA, prefix
	return d.files, d.err
}

type linterStub struct {
	results []domain.FileResult
	err     error
	called  bool
	files   []string
}

func (l *linterStub) Lint(ctx context.Context, files []string) ([]domain.FileResult, error) {
	l.called = true
	l.files = files
	return l.results, l.err
}

type reporterStub struct {
	err         error
	called      bool
	results     []domain.FileResult
	annotations []domain.Annotation
}

func (r *reporterStub) Report(ctx context.Context, results []domain.FileResult, annotations []domain.Annotation) error {
	r.called = true
	r.results = results
	r.annotations = annotations
	return r.err
}

type recorderStub struct {
	records []lint.RunRecord
	err     error
}

func (r *recorderStub) RecordRun(ctx context.Context, rec lint.RunRecord) error {
	r.records = append(r.records, rec)
	return r.err
}

func runContext(body string) domain.RunContext {
	return domain.RunContext{
		BaseSHA:          "A",
		HeadSHA:          "B",
		Prefix:           "pkg",
		WorkingDirectory: "/repo",
		PullRequestBody:  body,
	}
}

func TestRunSkipsOnMarkerWithoutResolvingDiff(t *testing.T) {
	diffs := &diffStub{}
	linter := &linterStub{}
	reporter := &reporterStub{}
	pipeline := lint.NewPipeline(diffs, linter, reporter)

	res, err := pipeline.Run(context.Background(), runContext("please review [skip review] thanks"))

	require.NoError(t, err)
	assert.True(t, res.Skipped)
	assert.False(t, diffs.called, "diff resolution must not be attempted after a skip")
	assert.False(t, linter.called)
	assert.False(t, reporter.called)
}

func TestRunEmitsOneAnnotationPerFinding(t *testing.T) {
	diffs := &diffStub{files: []string{"a.ts", "b.ts"}}
	linter := &linterStub{results: []domain.FileResult{
		{
			FilePath: "/repo/pkg/a.ts",
			Findings: []domain.Finding{
				{RuleID: "semi", Message: "Missing semicolon.", Line: 4, Column: 2, EndLine: 4, EndColumn: 3},
			},
		},
		{FilePath: "/repo/pkg/b.ts", Findings: []domain.Finding{}},
	}}
	reporter := &reporterStub{}
	pipeline := lint.NewPipeline(diffs, linter, reporter)

	res, err := pipeline.Run(context.Background(), runContext(""))

	var hintsErr *lint.HintsError
	require.ErrorAs(t, err, &hintsErr)
	assert.Equal(t, 1, hintsErr.Count)
	assert.Equal(t, "Found 1 linter hints", hintsErr.Error())

	assert.Equal(t, 2, res.Files)
	assert.Equal(t, 1, res.Hints)

	require.Len(t, reporter.annotations, 1)
	assert.Equal(t, "pkg/a.ts", reporter.annotations[0].File)
	assert.Equal(t, []string{"a.ts", "b.ts"}, linter.files)
	assert.Equal(t, "A", diffs.base)
	assert.Equal(t, "B", diffs.head)
	assert.Equal(t, "pkg", diffs.prefix)
}

func TestRunPassesWhenNoFilesChanged(t *testing.T) {
	diffs := &diffStub{files: []string{}}
	linter := &linterStub{results: []domain.FileResult{}}
	reporter := &reporterStub{}
	pipeline := lint.NewPipeline(diffs, linter, reporter)

	res, err := pipeline.Run(context.Background(), runContext(""))

	require.NoError(t, err)
	assert.False(t, res.Skipped)
	assert.Equal(t, 0, res.Hints)
	assert.True(t, reporter.called, "a clean run still writes the summary")
	assert.Empty(t, reporter.annotations)
}

func TestRunPropagatesDiffErrors(t *testing.T) {
	diffs := &diffStub{err: errors.New("bad sha")}
	linter := &linterStub{}
	reporter := &reporterStub{}
	pipeline := lint.NewPipeline(diffs, linter, reporter)

	_, err := pipeline.Run(context.Background(), runContext(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve changed files")
	assert.False(t, linter.called)
	assert.False(t, reporter.called, "no partial output after a fatal error")
}

func TestRunPropagatesLinterErrors(t *testing.T) {
	diffs := &diffStub{files: []string{"a.ts"}}
	linter := &linterStub{err: errors.New("timed out")}
	reporter := &reporterStub{}
	pipeline := lint.NewPipeline(diffs, linter, reporter)

	_, err := pipeline.Run(context.Background(), runContext(""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
	assert.False(t, reporter.called, "a linter crash must not report a clean result")
}

func TestRunRecordsCompletedRuns(t *testing.T) {
	recorder := &recorderStub{}
	diffs := &diffStub{files: []string{"a.ts"}}
	linter := &linterStub{results: []domain.FileResult{
		{FilePath: "a.ts", Findings: []domain.Finding{{RuleID: "semi"}}},
	}}
	pipeline := lint.NewPipeline(diffs, linter, &reporterStub{}, lint.WithRecorder(recorder))

	_, err := pipeline.Run(context.Background(), runContext(""))

	var hintsErr *lint.HintsError
	require.ErrorAs(t, err, &hintsErr)
	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, lint.StatusFailed, rec.Status)
	assert.Equal(t, "A", rec.BaseSHA)
	assert.Equal(t, "B", rec.HeadSHA)
	assert.Equal(t, 1, rec.Files)
	assert.Equal(t, 1, rec.Hints)
	assert.False(t, rec.CreatedAt.IsZero())
}

func TestRunRecordsSkippedRuns(t *testing.T) {
	recorder := &recorderStub{}
	pipeline := lint.NewPipeline(&diffStub{}, &linterStub{}, &reporterStub{}, lint.WithRecorder(recorder))

	_, err := pipeline.Run(context.Background(), runContext("[no review]"))

	require.NoError(t, err)
	require.Len(t, recorder.records, 1)
	assert.Equal(t, lint.StatusSkipped, recorder.records[0].Status)
}

func TestRunIgnoresRecorderFailures(t *testing.T) {
	recorder := &recorderStub{err: errors.New("disk full")}
	diffs := &diffStub{files: []string{}}
	pipeline := lint.NewPipeline(diffs, &linterStub{}, &reporterStub{}, lint.WithRecorder(recorder))

	_, err := pipeline.Run(context.Background(), runContext(""))

	require.NoError(t, err)
}
