package actions

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Graylog2/reviewbot/internal/domain"
	"github.com/Graylog2/reviewbot/internal/usecase/annotate"
)

// SummaryWriter appends run summaries to the job summary file.
type SummaryWriter struct {
	path string
}

// NewSummaryWriter constructs a writer for the given destination. An
// empty path means no destination is configured (neither summary.path
// nor GITHUB_STEP_SUMMARY), which is a configuration error raised here,
// before any summary content is produced.
func NewSummaryWriter(path string) (*SummaryWriter, error) {
	if path == "" {
		return nil, errors.New("summary destination not configured: set summary.path or GITHUB_STEP_SUMMARY")
	}
	return &SummaryWriter{path: path}, nil
}

// Write appends content to the summary file.
func (w *SummaryWriter) Write(content string) error {
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open summary file: %w", err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	return f.Close()
}

// HintEmoji scales the summary reaction with the number of hints.
func HintEmoji(count int) string {
	switch {
	case count > 100:
		return ":sob:"
	case count > 10:
		return ":disappointed_relieved:"
	default:
		return ":worried:"
	}
}

// BuildSummary renders the markdown job summary for a run. A run with
// hints gets the count, a scaled emoji, and a per-rule-group breakdown;
// a clean run gets a positive message.
func BuildSummary(results []domain.FileResult, total int) string {
	var b strings.Builder
	b.WriteString("### Linter check\n\n")

	if total == 0 {
		b.WriteString("No linter hints found. Nice work! :tada:\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d linter hints. %s\n", total, HintEmoji(total))
	b.WriteString(breakdownTable(results))
	return b.String()
}

// breakdownTable tallies hints per rule namespace.
func breakdownTable(results []domain.FileResult) string {
	counts := map[string]int{}
	for _, res := range results {
		for _, finding := range res.Findings {
			counts[groupName(annotate.Namespace(finding.RuleID))]++
		}
	}
	if len(counts) == 0 {
		return ""
	}

	groups := make([]string, 0, len(counts))
	for group := range counts {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var b strings.Builder
	b.WriteString("\n| Rule group | Hints |\n|---|---|\n")
	for _, group := range groups {
		fmt.Fprintf(&b, "| %s | %d |\n", group, counts[group])
	}
	return b.String()
}

var titleCaser = cases.Title(language.English)

// groupName turns a rule namespace into a display heading.
func groupName(namespace string) string {
	if namespace == "" {
		return "ESLint Core"
	}
	cleaned := strings.TrimPrefix(namespace, "@")
	cleaned = strings.ReplaceAll(cleaned, "-", " ")
	return titleCaser.String(cleaned)
}
