// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/issueminer/issueminer/schema"
)

// HistoryProvider defines the necessary operations for mining a repository's
// commit history. This allows the dataset pipeline to be tested without a
// real repository on disk.
type HistoryProvider interface {
	// --- Reference resolution ---

	// RepoRoot returns the absolute path to the repository's working tree root.
	RepoRoot() string

	// ResolveRef resolves a reference (branch, tag, hash prefix, HEAD) to a full commit hash.
	ResolveRef(ctx context.Context, ref string) (string, error)

	// OriginOwnerRepo derives the GitHub owner and repository name from the
	// origin remote URL.
	OriginOwnerRepo() (string, string, error)

	// --- Issue correlation ---

	// IssueCommits scans every commit message once and returns, per referenced
	// issue number, the commits mentioning it sorted by committer time ascending.
	IssueCommits(ctx context.Context) (map[int][]schema.CommitRef, error)

	// CommitStats returns the change statistics of a single commit.
	CommitStats(ctx context.Context, hash string) (schema.CommitStats, error)

	// --- Snapshot extraction ---

	// SnapshotBefore returns the codebase as it was before the given commit,
	// i.e. the tree of its first parent. A parentless commit yields an empty
	// snapshot, not an error.
	SnapshotBefore(ctx context.Context, hash string) (schema.Snapshot, error)

	// SnapshotAfter returns the codebase as it was at the given commit's tree.
	SnapshotAfter(ctx context.Context, hash string) (schema.Snapshot, error)
}

// IssueService defines the GitHub operations the pipeline depends on.
// Rotation state travels through the call explicitly: every request takes a
// TokenRing and returns the possibly-advanced ring for the next call.
type IssueService interface {
	// IssueDescription fetches the body text of an issue. Fetch failures
	// degrade to a placeholder description rather than an error, so the
	// returned error covers only unrecoverable conditions.
	IssueDescription(ctx context.Context, ring TokenRing, number int) (string, TokenRing, error)

	// LastClosedIssue resolves the number of the most recently closed issue.
	LastClosedIssue(ctx context.Context, ring TokenRing) (int, TokenRing, error)
}

// Embedder turns text and code snapshots into embedding vectors.
type Embedder interface {
	// EmbedText embeds free-form text. Empty text yields a nil vector.
	EmbedText(ctx context.Context, text string) ([]float64, error)

	// EmbedCode embeds a codebase snapshot. Empty snapshots yield a nil vector.
	EmbedCode(ctx context.Context, snapshot schema.Snapshot) ([]float64, error)
}

// SourceVisitor computes per-file complexity and Halstead quantities.
// A file the visitor cannot parse returns an error; aggregation layers tally
// such files instead of aborting.
type SourceVisitor interface {
	// ComplexityBlocks returns the cyclomatic complexity of each
	// function/method block in the file.
	ComplexityBlocks(path string, source string) ([]float64, error)

	// HalsteadVisit returns the raw Halstead quantities of the whole file.
	HalsteadVisit(path string, source string) (schema.HalsteadVisit, error)
}

// LintRunner executes the external duplication lint tool. This allows the
// duplication probe to be tested without the tool installed.
type LintRunner interface {
	// Run executes the tool against the repository path and returns its
	// standard output. A non-zero exit with output is not an error; lint
	// tools exit non-zero whenever they flag lines.
	Run(ctx context.Context, tool string, args []string, repoPath string) ([]byte, error)
}

// StoreManager defines the interface for managing the backing stores.
// This allows the persistence layer to be mocked for testing.
type StoreManager interface {
	GetCacheStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for issue-description cache storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking dataset runs and per-issue stats.
type RunStore interface {
	// BeginRun creates a new dataset run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (int64, error)

	// EndRun updates the dataset run with completion data
	EndRun(runID int64, endTime time.Time, written, skipped int) error

	// RecordIssueStats stores the scalar stats of one processed issue
	RecordIssueStats(runID int64, record schema.IssueStatsRecord) error

	// GetAllRuns retrieves every dataset run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllIssueStats retrieves every per-issue stats row, oldest first
	GetAllIssueStats() ([]schema.IssueStatsRecord, error)

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// Close closes the underlying connection
	Close() error
}
