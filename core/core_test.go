package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/iocache"
	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestExecuteDataset tests the main dataset entry point.
func TestExecuteDataset(t *testing.T) {
	ctx := context.Background()

	// Create mock store manager
	mgr := &iocache.MockStoreManager{}

	// Create config - this will fail because we're not in a real git repo
	cfg := &contract.Config{
		RepoPath:   "/nonexistent/repo",
		Owner:      "psf",
		Repo:       "requests",
		StartIssue: 1,
		EndIssue:   5,
		OutputFile: "data/out.jsonl",
		Format:     schema.JSONLFormat,
	}

	err := ExecuteDataset(ctx, cfg, mgr)

	// Should get an error since /nonexistent/repo is not a git repository
	assert.Error(t, err)
}

// TestExecuteIssues tests the issue scan entry point.
func TestExecuteIssues(t *testing.T) {
	ctx := context.Background()

	cfg := &contract.Config{
		RepoPath: "/nonexistent/repo",
	}

	err := ExecuteIssues(ctx, cfg)

	assert.Error(t, err)
}

// TestExecuteSnapshot tests the snapshot entry point.
func TestExecuteSnapshot(t *testing.T) {
	ctx := context.Background()

	cfg := &contract.Config{
		RepoPath: "/nonexistent/repo",
		Ref:      "HEAD",
		Side:     schema.AfterSide,
	}

	err := ExecuteSnapshot(ctx, cfg)

	assert.Error(t, err)
}

// TestExecuteMetricCatalog tests the static metric catalog display.
func TestExecuteMetricCatalog(t *testing.T) {
	ctx := context.Background()

	cfg := &contract.Config{
		Output: schema.TextOut,
		Width:  100,
	}

	err := ExecuteMetricCatalog(ctx, cfg)

	// Static content, no repository access needed
	assert.NoError(t, err)
}

func TestBuildActivity(t *testing.T) {
	ctx := context.Background()

	t1 := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	t2 := time.Date(2024, 5, 3, 8, 0, 0, 0, time.UTC)
	commits := []schema.CommitRef{
		{Hash: "aaa111", When: t1, Summary: "Start work on #12"},
		{Hash: "bbb222", When: t2, Summary: "Finish #12"},
	}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("CommitStats", ctx, "aaa111").Return(schema.CommitStats{Files: 3, Insertions: 40, Deletions: 10}, nil)
	mockHistory.On("CommitStats", ctx, "bbb222").Return(schema.CommitStats{Files: 1, Insertions: 5, Deletions: 2}, nil)

	activity, err := buildActivity(ctx, mockHistory, 12, commits)

	require.NoError(t, err)
	assert.Equal(t, 12, activity.IssueNumber)
	assert.Equal(t, 2, activity.NOC)
	assert.Equal(t, 4, activity.NOCF)
	assert.Equal(t, 45, activity.NOI)
	assert.Equal(t, 12, activity.NOD)
	assert.Equal(t, "aaa111", activity.FirstCommit())
	assert.Equal(t, "bbb222", activity.LastCommit())
	mockHistory.AssertExpectations(t)
}

func TestBuildActivity_StatError(t *testing.T) {
	ctx := context.Background()

	commits := []schema.CommitRef{{Hash: "deadbeef00", When: time.Now()}}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("CommitStats", ctx, "deadbeef00").Return(schema.CommitStats{}, errors.New("object not found"))

	_, err := buildActivity(ctx, mockHistory, 3, commits)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get stats for commit deadbee")
}
