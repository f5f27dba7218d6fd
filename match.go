package main

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// containsExpected reports whether output contains expected as a literal
// substring. Nothing in expected is interpreted as a pattern, so a "." in a
// domain name only matches a dot.
func containsExpected(output, expected string) bool {
	return strings.Contains(output, expected)
}

// expectedDiff renders the difference between the expected text and the
// normalized output (-expected +output).
func expectedDiff(expected, output string) string {
	return cmp.Diff(expected, output)
}
