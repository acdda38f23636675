// Package skip provides skip trigger detection for lint runs.
// It allows users to bypass linting by including specific markers
// in the pull-request description.
package skip

import "strings"

// markers are matched as literal, case-sensitive substrings.
var markers = []string{
	"[review skip]",
	"[no review]",
	"[skip review]",
}

// CheckResult contains the result of checking a PR body for skip markers.
type CheckResult struct {
	ShouldSkip bool
	Marker     string // The marker that matched, empty otherwise.
}

// Check examines a pull-request body for skip markers.
// An empty body never triggers a skip.
func Check(body string) CheckResult {
	for _, marker := range markers {
		if strings.Contains(body, marker) {
			return CheckResult{ShouldSkip: true, Marker: marker}
		}
	}
	return CheckResult{}
}

// ShouldSkip reports whether the pull-request body contains a skip marker.
func ShouldSkip(body string) bool {
	return Check(body).ShouldSkip
}

// Markers returns the recognized skip markers.
func Markers() []string {
	out := make([]string, len(markers))
	copy(out, markers)
	return out
}
