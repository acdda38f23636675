// Package actions reports lint results to the review surface: one
// warning annotation per hint plus a markdown job summary.
package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Graylog2/reviewbot/internal/domain"
)

// Annotator emits a single annotation to the review surface.
type Annotator interface {
	Annotate(a domain.Annotation) error
}

// WorkflowAnnotator writes GitHub Actions workflow commands, which the
// runner turns into inline review annotations.
type WorkflowAnnotator struct {
	out io.Writer
}

// NewWorkflowAnnotator constructs a workflow-command annotator.
func NewWorkflowAnnotator(out io.Writer) *WorkflowAnnotator {
	return &WorkflowAnnotator{out: out}
}

// Annotate emits one warning-level workflow command.
func (w *WorkflowAnnotator) Annotate(a domain.Annotation) error {
	props := fmt.Sprintf("file=%s,line=%d,endLine=%d,col=%d,endColumn=%d,title=%s",
		escapeProperty(a.File), a.StartLine, a.EndLine, a.StartColumn, a.EndColumn,
		escapeProperty(a.Title))
	_, err := fmt.Fprintf(w.out, "::warning %s::%s\n", props, escapeData(a.Message))
	return err
}

// escapeData escapes the message payload of a workflow command.
func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	s = strings.ReplaceAll(s, "\n", "%0A")
	return s
}

// escapeProperty escapes a workflow command property value, which also
// reserves ':' and ','.
func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	s = strings.ReplaceAll(s, ",", "%2C")
	return s
}

// TerminalAnnotator writes human-readable hint lines for local runs.
type TerminalAnnotator struct {
	out io.Writer
}

// NewTerminalAnnotator constructs a terminal annotator.
func NewTerminalAnnotator(out io.Writer) *TerminalAnnotator {
	return &TerminalAnnotator{out: out}
}

// Annotate writes one hint in file:line:column form.
func (t *TerminalAnnotator) Annotate(a domain.Annotation) error {
	_, err := fmt.Fprintf(t.out, "%s:%d:%d %s\n    %s\n",
		a.File, a.StartLine, a.StartColumn, a.Title, a.Message)
	return err
}

// DetectAnnotator picks workflow commands when running inside GitHub
// Actions or without a terminal attached, and human-readable output
// otherwise.
func DetectAnnotator(out *os.File) Annotator {
	if os.Getenv("GITHUB_ACTIONS") == "true" || !term.IsTerminal(int(out.Fd())) {
		return NewWorkflowAnnotator(out)
	}
	return NewTerminalAnnotator(out)
}
