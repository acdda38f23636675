package domain

const (
	FileStatusAdded    = "added"
	FileStatusCopied   = "copied"
	FileStatusModified = "modified"
	FileStatusRenamed  = "renamed"
	FileStatusDeleted  = "deleted"
)

// Finding is a single issue reported by the linter for one location.
// NodeType and MessageID are diagnostic metadata carried through unused.
type Finding struct {
	RuleID    string
	Severity  int
	Message   string
	Line      int
	Column    int
	EndLine   int
	EndColumn int
	NodeType  string
	MessageID string
}

// FileResult pairs a linter-reported file path with its findings.
// Finding order is the linter's own order.
type FileResult struct {
	FilePath string
	Findings []Finding
}

// Annotation is the normalized, review-surface-ready form of a Finding.
// File is relative to the configured working directory.
type Annotation struct {
	File        string
	Title       string
	Message     string
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// RunContext carries the per-event inputs for one pipeline run.
// It is constructed once per event and read-only thereafter.
type RunContext struct {
	BaseSHA          string
	HeadSHA          string
	Prefix           string
	WorkingDirectory string
	PullRequestBody  string
}

// TotalFindings sums findings across all file results.
func TotalFindings(results []FileResult) int {
	total := 0
	for _, res := range results {
		total += len(res.Findings)
	}
	return total
}
