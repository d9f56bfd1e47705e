// Package schema has configs, models and global variables for all parts of issueminer.
package schema

import "time"

// Snapshot maps a relative file path to the full text of that file at one
// commit. It is produced once per commit and never mutated afterwards.
type Snapshot map[string]string

// CommitRef identifies one commit correlated with an issue.
type CommitRef struct {
	Hash    string    // Full commit hash
	When    time.Time // Committer timestamp, used for ordering
	Summary string    // First line of the commit message
}

// CommitStats holds the change statistics of a single commit.
type CommitStats struct {
	Files      int // Number of files touched by the commit
	Insertions int // Lines added across all files
	Deletions  int // Lines removed across all files
}

// IssueActivity aggregates the commits that reference one issue number.
// Commits are sorted by committer time ascending, so Commits[0] is the
// first fix commit and Commits[len-1] the last.
type IssueActivity struct {
	IssueNumber int         `json:"issue_number"`
	Commits     []CommitRef `json:"-"`
	NOC         int         `json:"NOC"`  // Number of commits
	NOCF        int         `json:"NOCF"` // Number of changed files
	NOI         int         `json:"NOI"`  // Number of inserted lines
	NOD         int         `json:"NOD"`  // Number of deleted lines
}

// FirstCommit returns the hash of the earliest correlated commit.
func (a IssueActivity) FirstCommit() string {
	if len(a.Commits) == 0 {
		return ""
	}
	return a.Commits[0].Hash
}

// LastCommit returns the hash of the latest correlated commit.
func (a IssueActivity) LastCommit() string {
	if len(a.Commits) == 0 {
		return ""
	}
	return a.Commits[len(a.Commits)-1].Hash
}

// IssueRecord is one dataset row: everything known about a single issue,
// its correlated commits, and the codebase metrics before the first and
// after the last of those commits. Field names are part of the dataset
// file format consumed by downstream training jobs, so they are contractual.
type IssueRecord struct {
	IssueID                   int       `json:"issue_id"`
	IssueDescription          string    `json:"issue_description"`
	IssueDescriptionEmbedding []float64 `json:"issue_description_embedding"`
	FirstCommit               string    `json:"first_commit"`
	LastCommit                string    `json:"last_commit"`
	CodebaseEmbeddingBefore   []float64 `json:"codebase_embedding_before_first_commit"`
	CodebaseEmbeddingAfter    []float64 `json:"codebase_embedding_after_last_commit"`

	NOC  int `json:"NOC"`
	NOCF int `json:"NOCF"`
	NOI  int `json:"NOI"`
	NOD  int `json:"NOD"`

	LOCBefore                  *int           `json:"LOC_before"`
	CommentsBefore             int            `json:"Comments_before"`
	CyclomaticComplexityBefore *float64       `json:"CyclomaticComplexity_before"`
	HalsteadMetricsBefore      HalsteadTotals `json:"HalsteadMetrics_before"`
	MaintainabilityIndexBefore *float64       `json:"MaintainabilityIndex_before"`
	CodeDuplicationBefore      *int           `json:"CodeDuplication_before"`
	CouplingBefore             *float64       `json:"Coupling_before"`
	CohesionBefore             *float64       `json:"Cohesion_before"`

	LOCAfter                  *int           `json:"LOC_after"`
	CommentsAfter             int            `json:"Comments_after"`
	CyclomaticComplexityAfter *float64       `json:"CyclomaticComplexity_after"`
	HalsteadMetricsAfter      HalsteadTotals `json:"HalsteadMetrics_after"`
	MaintainabilityIndexAfter *float64       `json:"MaintainabilityIndex_after"`
	CodeDuplicationAfter      *int           `json:"CodeDuplication_after"`
	CouplingAfter             *float64       `json:"Coupling_after"`
	CohesionAfter             *float64       `json:"Cohesion_after"`
}

// SetBeforeMetrics copies a metrics result into the record's before-fields.
func (r *IssueRecord) SetBeforeMetrics(m MetricsResult) {
	r.LOCBefore = m.LOC
	r.CommentsBefore = m.Comments
	r.CyclomaticComplexityBefore = m.CyclomaticComplexity
	r.HalsteadMetricsBefore = m.Halstead
	r.MaintainabilityIndexBefore = m.MaintainabilityIndex
	r.CodeDuplicationBefore = m.CodeDuplication
	r.CouplingBefore = m.Coupling
	r.CohesionBefore = m.Cohesion
}

// SetAfterMetrics copies a metrics result into the record's after-fields.
func (r *IssueRecord) SetAfterMetrics(m MetricsResult) {
	r.LOCAfter = m.LOC
	r.CommentsAfter = m.Comments
	r.CyclomaticComplexityAfter = m.CyclomaticComplexity
	r.HalsteadMetricsAfter = m.Halstead
	r.MaintainabilityIndexAfter = m.MaintainabilityIndex
	r.CodeDuplicationAfter = m.CodeDuplication
	r.CouplingAfter = m.Coupling
	r.CohesionAfter = m.Cohesion
}
