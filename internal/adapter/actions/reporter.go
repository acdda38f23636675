package actions

import (
	"context"
	"fmt"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// Reporter emits the annotations and job summary for a completed run.
// It implements the pipeline's Reporter port.
type Reporter struct {
	annotator Annotator
	summary   *SummaryWriter
}

// NewReporter constructs a reporter over an annotator and summary writer.
func NewReporter(annotator Annotator, summary *SummaryWriter) *Reporter {
	return &Reporter{annotator: annotator, summary: summary}
}

// Report emits one warning annotation per hint and appends the run
// summary. The pass/fail signal itself is the caller's concern.
func (r *Reporter) Report(ctx context.Context, results []domain.FileResult, annotations []domain.Annotation) error {
	for _, a := range annotations {
		if err := r.annotator.Annotate(a); err != nil {
			return fmt.Errorf("emit annotation: %w", err)
		}
	}
	// Annotation count and finding count are the same once empty file
	// results are dropped; the summary reports the finding count.
	return r.summary.Write(BuildSummary(results, domain.TotalFindings(results)))
}
