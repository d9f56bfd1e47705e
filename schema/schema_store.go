package schema

import "time"

// RunRecord represents a row from the issueminer_runs table.
type RunRecord struct {
	RunID         int64
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int32
	RepoPath      string
	Owner         string
	Repo          string
	StartIssue    int32
	EndIssue      int32
	IssuesWritten int32
	IssuesSkipped int32
	ConfigParams  *string
}

// IssueStatsRecord represents a row from the issueminer_issue_stats table.
// It keeps the scalar metric columns of one processed issue; embedding
// vectors stay in the dataset file only.
type IssueStatsRecord struct {
	RunID       int64
	IssueNumber int32
	RecordTime  time.Time
	FirstCommit string
	LastCommit  string
	NOC         int32
	NOCF        int32
	NOI         int32
	NOD         int32
	LOCBefore   *int32
	LOCAfter    *int32
	MIBefore    *float64
	MIAfter     *float64
}

// CacheStatus represents the status of the issue-description cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunStatus represents the status of the run-tracking store.
type RunStatus struct {
	Backend        string           `json:"backend"`
	Connected      bool             `json:"connected"`
	TotalRuns      int              `json:"total_runs"`
	LastRunID      int64            `json:"last_run_id"`
	LastRunTime    time.Time        `json:"last_run_time"`
	OldestRunTime  time.Time        `json:"oldest_run_time"`
	TotalIssues    int              `json:"total_issues"`
	TableSizes     map[string]int64 `json:"table_sizes"`
}
