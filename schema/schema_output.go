package schema

// EnrichedIssueActivity adds presentation data to an IssueActivity.
type EnrichedIssueActivity struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	IssueActivity
}

// SnapshotReport couples one resolved snapshot with the metrics computed on
// it. Ref is the reference as the user gave it; Commit is the hash it
// resolved to.
type SnapshotReport struct {
	Ref       string        `json:"ref"`
	Commit    string        `json:"commit"`
	Side      SnapshotSide  `json:"side"`
	FileCount int           `json:"files"`
	Metrics   MetricsResult `json:"metrics"`
}

// GetActivityLabel returns a plain text label indicating how much commit
// activity an issue attracted.
func GetActivityLabel(noc int) string {
	switch {
	case noc >= 20:
		return "Hot"
	case noc >= 10:
		return "Active"
	case noc >= 3:
		return "Normal"
	default:
		return "Quiet"
	}
}

// GetMaintainabilityLabel returns a plain text label for a maintainability
// index value, or "n/a" when the index is absent.
func GetMaintainabilityLabel(mi *float64) string {
	if mi == nil {
		return "n/a"
	}
	switch {
	case *mi >= 85:
		return "High"
	case *mi >= 65:
		return "Moderate"
	case *mi >= 40:
		return "Low"
	default:
		return "Critical"
	}
}

// EnrichIssues adds rank and label to a list of issue activities.
func EnrichIssues(issues []IssueActivity) []EnrichedIssueActivity {
	output := make([]EnrichedIssueActivity, len(issues))
	for i, a := range issues {
		output[i] = EnrichedIssueActivity{
			Rank:          i + 1,
			Label:         GetActivityLabel(a.NOC),
			IssueActivity: a,
		}
	}
	return output
}
