package domain_test

import (
	"testing"

	"github.com/Graylog2/reviewbot/internal/domain"
)

func TestTotalFindings(t *testing.T) {
	results := []domain.FileResult{
		{FilePath: "a.ts", Findings: make([]domain.Finding, 2)},
		{FilePath: "b.ts"},
		{FilePath: "c.ts", Findings: make([]domain.Finding, 1)},
	}

	if got := domain.TotalFindings(results); got != 3 {
		t.Fatalf("expected 3 findings, got %d", got)
	}

	if got := domain.TotalFindings(nil); got != 0 {
		t.Fatalf("expected 0 findings for nil results, got %d", got)
	}
}
