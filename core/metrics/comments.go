package metrics

import (
	"regexp"
	"strings"

	"github.com/issueminer/issueminer/schema"
)

// commentPattern finds comment spans for counting. Unlike stripPattern it is
// deliberately permissive: line comments match anywhere on a line, not only
// at the start, and block comments match across lines as a single span.
var commentPattern = regexp.MustCompile(`//[^\n]*|#[^\n]*|(?s:/\*.*?\*/)`)

// CountComments counts comment lines across a snapshot. A block comment
// spanning several lines counts once per line it covers, so the count is a
// line total rather than a span total.
func CountComments(snapshot schema.Snapshot) int {
	total := 0
	for _, text := range snapshot {
		for _, span := range commentPattern.FindAllString(text, -1) {
			total += strings.Count(span, "\n") + 1
		}
	}
	return total
}
