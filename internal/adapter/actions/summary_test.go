package actions_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Graylog2/reviewbot/internal/adapter/actions"
	"github.com/Graylog2/reviewbot/internal/domain"
)

func TestHintEmojiBoundaries(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{1, ":worried:"},
		{10, ":worried:"},
		{11, ":disappointed_relieved:"},
		{100, ":disappointed_relieved:"},
		{101, ":sob:"},
		{500, ":sob:"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, actions.HintEmoji(tt.count), "count=%d", tt.count)
	}
}

func TestBuildSummaryWithHints(t *testing.T) {
	results := []domain.FileResult{
		{
			FilePath: "pkg/a.ts",
			Findings: []domain.Finding{{RuleID: "semi", Message: "Missing semicolon."}},
		},
	}

	summary := actions.BuildSummary(results, 1)

	assert.Contains(t, summary, "Found 1 linter hints")
	assert.Contains(t, summary, ":worried:")
}

func TestBuildSummaryClean(t *testing.T) {
	summary := actions.BuildSummary(nil, 0)

	assert.Contains(t, summary, "No linter hints found")
	assert.Contains(t, summary, ":tada:")
	assert.NotContains(t, summary, "Found")
}

func TestBuildSummaryBreakdownGroupsByNamespace(t *testing.T) {
	results := []domain.FileResult{
		{
			FilePath: "pkg/a.ts",
			Findings: []domain.Finding{
				{RuleID: "semi"},
				{RuleID: "no-unused-vars"},
				{RuleID: "jest/valid-title"},
				{RuleID: "@typescript-eslint/no-explicit-any"},
				{RuleID: "testing-library/no-node-access"},
			},
		},
	}

	summary := actions.BuildSummary(results, 5)

	assert.Contains(t, summary, "| ESLint Core | 2 |")
	assert.Contains(t, summary, "| Jest | 1 |")
	assert.Contains(t, summary, "| Typescript Eslint | 1 |")
	assert.Contains(t, summary, "| Testing Library | 1 |")
}

func TestSummaryWriterRequiresDestination(t *testing.T) {
	_, err := actions.NewSummaryWriter("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "summary destination not configured")
}

func TestSummaryWriterAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.md")
	writer, err := actions.NewSummaryWriter(path)
	require.NoError(t, err)

	require.NoError(t, writer.Write("first\n"))
	require.NoError(t, writer.Write("second\n"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}
