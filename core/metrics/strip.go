package metrics

import (
	"regexp"
	"strings"

	"github.com/issueminer/issueminer/schema"
)

// stripPattern removes comment and docstring regions before code lines are
// counted. One alternation covers C-family line comments, script-style line
// comments, blank lines, single-line block comments and triple-quoted
// docstrings (which may span lines). It is a lexical heuristic: commented-out
// code inside an unmatched region survives, which is accepted.
var stripPattern = regexp.MustCompile(`(?m)^\s*//.*$|^\s*#.*$|^\s*$|/\*.*?\*/|(?s:""".*?""")|(?s:'''.*?''')`)

// StripComments removes comment-like regions from one file's source text.
func StripComments(text string) string {
	return stripPattern.ReplaceAllString(text, "")
}

// CountLinesOfCode counts the non-blank lines that remain in a snapshot after
// comment stripping. Every file contributes to one total regardless of
// language, so the count is order-independent across files.
func CountLinesOfCode(snapshot schema.Snapshot) int {
	total := 0
	for _, text := range snapshot {
		for line := range strings.SplitSeq(StripComments(text), "\n") {
			if strings.TrimSpace(line) != "" {
				total++
			}
		}
	}
	return total
}
