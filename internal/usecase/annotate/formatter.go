// Package annotate converts raw lint results into review-surface
// annotations. Everything in this package is pure: path handling is
// string manipulation only, with no filesystem access.
package annotate

import (
	"fmt"
	"strings"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// Style selects how a finding's message and rule documentation are split
// between the annotation title and message.
type Style string

const (
	// StyleDocsMessage titles the annotation with the raw finding text
	// and points at the rule documentation in the message body.
	StyleDocsMessage Style = "docs-message"

	// StyleDocsTitle titles the annotation with the rule and its
	// documentation URL and keeps the raw finding text in the message body.
	StyleDocsTitle Style = "docs-title"
)

// Valid reports whether s is a recognized annotation style.
func (s Style) Valid() bool {
	return s == StyleDocsMessage || s == StyleDocsTitle
}

// Format maps lint results to annotations. Files without findings produce
// no annotations; every finding produces exactly one annotation.
func Format(results []domain.FileResult, workingDir string, style Style) []domain.Annotation {
	annotations := []domain.Annotation{}
	for _, res := range results {
		if len(res.Findings) == 0 {
			continue
		}
		file := relativize(res.FilePath, workingDir)
		for _, finding := range res.Findings {
			annotations = append(annotations, buildAnnotation(file, finding, style))
		}
	}
	return annotations
}

func buildAnnotation(file string, finding domain.Finding, style Style) domain.Annotation {
	annotation := domain.Annotation{
		File:        file,
		StartLine:   finding.Line,
		StartColumn: finding.Column,
		EndLine:     finding.EndLine,
		EndColumn:   finding.EndColumn,
	}

	url, ok := RuleURL(finding.RuleID)
	switch style {
	case StyleDocsTitle:
		if ok {
			annotation.Title = fmt.Sprintf("%s (%s)", finding.RuleID, url)
		} else {
			annotation.Title = finding.RuleID
		}
		annotation.Message = finding.Message
	default:
		annotation.Title = finding.Message
		if ok {
			annotation.Message = fmt.Sprintf("Check out the documentation for %s at %s.", finding.RuleID, url)
		} else {
			annotation.Message = fmt.Sprintf("No further information available for rule %s.", finding.RuleID)
		}
	}

	return annotation
}

// relativize strips the working directory from a linter-reported path.
// Paths outside the working directory are returned unchanged.
func relativize(path, workingDir string) string {
	if workingDir == "" || workingDir == "." {
		return path
	}
	trimmed := strings.TrimSuffix(workingDir, "/")
	if rest, found := strings.CutPrefix(path, trimmed+"/"); found {
		return rest
	}
	return path
}
