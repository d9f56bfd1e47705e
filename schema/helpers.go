package schema

import (
	"fmt"
	"strings"
)

const shortHashLen = 7

// IntPtr returns a pointer to v.
func IntPtr(v int) *int { return &v }

// Int32Ptr returns a pointer to v.
func Int32Ptr(v int32) *int32 { return &v }

// Float64Ptr returns a pointer to v.
func Float64Ptr(v float64) *float64 { return &v }

// StringPtr returns a pointer to v.
func StringPtr(v string) *string { return &v }

// IssueRef formats an issue number the way commit messages reference it.
func IssueRef(n int) string {
	return fmt.Sprintf("#%d", n)
}

// ShortHash abbreviates a full commit hash for table display.
// Hashes shorter than the abbreviation length pass through unchanged.
func ShortHash(hash string) string {
	if len(hash) <= shortHashLen {
		return hash
	}
	return hash[:shortHashLen]
}

// FailurePercent returns the share of failed units as a percentage.
// A zero total yields 0 rather than NaN.
func FailurePercent(failed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(failed) / float64(total) * 100
}

// CommitSummary returns the first line of a commit message, trimmed.
func CommitSummary(message string) string {
	line, _, _ := strings.Cut(message, "\n")
	return strings.TrimSpace(line)
}
