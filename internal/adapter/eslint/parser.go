package eslint

import (
	"encoding/json"
	"fmt"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// reportEntry mirrors one element of the ESLint JSON formatter output.
type reportEntry struct {
	FilePath string          `json:"filePath"`
	Messages []reportMessage `json:"messages"`
}

type reportMessage struct {
	RuleID    string `json:"ruleId"`
	Severity  int    `json:"severity"`
	Message   string `json:"message"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	EndLine   int    `json:"endLine"`
	EndColumn int    `json:"endColumn"`
	NodeType  string `json:"nodeType"`
	MessageID string `json:"messageId"`
}

// ParseReport converts a raw ESLint JSON report into typed results.
// The report is an unchecked boundary value: anything that is not a
// JSON array of file entries with a filePath is a fatal parse error.
func ParseReport(raw []byte) ([]domain.FileResult, error) {
	var entries []reportEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse eslint report: %w", err)
	}

	results := make([]domain.FileResult, 0, len(entries))
	for i, entry := range entries {
		if entry.FilePath == "" {
			return nil, fmt.Errorf("parse eslint report: entry %d missing filePath", i)
		}
		findings := make([]domain.Finding, 0, len(entry.Messages))
		for _, msg := range entry.Messages {
			findings = append(findings, domain.Finding{
				RuleID:    msg.RuleID,
				Severity:  msg.Severity,
				Message:   msg.Message,
				Line:      msg.Line,
				Column:    msg.Column,
				EndLine:   msg.EndLine,
				EndColumn: msg.EndColumn,
				NodeType:  msg.NodeType,
				MessageID: msg.MessageID,
			})
		}
		results = append(results, domain.FileResult{
			FilePath: entry.FilePath,
			Findings: findings,
		})
	}

	return results, nil
}
