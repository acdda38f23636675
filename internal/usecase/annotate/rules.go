package annotate

import "strings"

const coreRuleDocs = "https://eslint.org/docs/rules/"

// pluginRuleDocs maps known plugin namespaces to their rule documentation.
var pluginRuleDocs = map[string]string{
	"jest":               "https://github.com/jest-community/eslint-plugin-jest/blob/main/docs/rules/",
	"testing-library":    "https://github.com/testing-library/eslint-plugin-testing-library/blob/main/docs/rules/",
	"@typescript-eslint": "https://github.com/typescript-eslint/typescript-eslint/blob/main/packages/eslint-plugin/docs/rules/",
}

// RuleURL resolves a rule identifier to its documentation URL.
// Unnamespaced rules map to the core ESLint docs, known plugin namespaces
// to the plugin's rule docs. Unknown namespaces resolve to no URL and
// ok is false.
func RuleURL(rule string) (url string, ok bool) {
	namespace, id, namespaced := strings.Cut(rule, "/")
	if !namespaced {
		return coreRuleDocs + rule, true
	}
	base, known := pluginRuleDocs[namespace]
	if !known {
		return "", false
	}
	return base + id + ".md", true
}

// Namespace returns the rule's namespace prefix, or an empty string for
// core rules.
func Namespace(rule string) string {
	namespace, _, namespaced := strings.Cut(rule, "/")
	if !namespaced {
		return ""
	}
	return namespace
}
