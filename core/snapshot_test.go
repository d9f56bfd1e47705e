package core

import (
	"context"
	"errors"
	"testing"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotReport_AfterSide(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		Ref:      "v2.0.0",
		Side:     schema.AfterSide,
		LintTool: "flake8",
	}

	source := "def f():\n    return 1\n"
	snap := schema.Snapshot{"a.py": source}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("ResolveRef", ctx, "v2.0.0").Return("abc123def456", nil)
	mockHistory.On("SnapshotAfter", ctx, "abc123def456").Return(snap, nil)

	mockVisitor := &contract.MockSourceVisitor{}
	mockVisitor.On("ComplexityBlocks", "a.py", source).Return([]float64{1}, nil)
	mockVisitor.On("HalsteadVisit", "a.py", source).
		Return(schema.HalsteadVisit{Length: 4, Vocabulary: 3, Volume: 6.34, Difficulty: 1.5, Effort: 9.51}, nil)

	mockRunner := &contract.MockLintRunner{}
	mockRunner.On("Run", ctx, "flake8", []string{"--select=D"}, "/test/repo").
		Return([]byte(""), nil)

	report, err := snapshotReport(ctx, cfg, mockHistory, testCalculator(t, mockVisitor, mockRunner))

	require.NoError(t, err)
	assert.Equal(t, "v2.0.0", report.Ref)
	assert.Equal(t, "abc123def456", report.Commit)
	assert.Equal(t, schema.AfterSide, report.Side)
	assert.Equal(t, 1, report.FileCount)
	require.NotNil(t, report.Metrics.LOC)
	assert.Equal(t, 2, *report.Metrics.LOC)
	require.NotNil(t, report.Metrics.CyclomaticComplexity)
	assert.InDelta(t, 1.0, *report.Metrics.CyclomaticComplexity, 0.0001)
	assert.Equal(t, 6, report.Metrics.Halstead[schema.HalsteadVolume])

	mockHistory.AssertExpectations(t)
	mockVisitor.AssertExpectations(t)
}

func TestSnapshotReport_BeforeSide(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		Ref:      "HEAD",
		Side:     schema.BeforeSide,
		LintTool: "flake8",
	}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("ResolveRef", ctx, "HEAD").Return("fff999", nil)
	mockHistory.On("SnapshotBefore", ctx, "fff999").Return(schema.Snapshot{}, nil)

	mockRunner := &contract.MockLintRunner{}
	mockRunner.On("Run", ctx, "flake8", []string{"--select=D"}, "/test/repo").
		Return(nil, errors.New("executable not found"))

	report, err := snapshotReport(ctx, cfg, mockHistory, testCalculator(t, &contract.MockSourceVisitor{}, mockRunner))

	require.NoError(t, err)
	assert.Equal(t, schema.BeforeSide, report.Side)
	assert.Equal(t, 0, report.FileCount)
	require.NotNil(t, report.Metrics.LOC)
	assert.Equal(t, 0, *report.Metrics.LOC)
	assert.Nil(t, report.Metrics.CyclomaticComplexity)
	assert.Nil(t, report.Metrics.MaintainabilityIndex)
	assert.Empty(t, report.Metrics.Halstead)

	mockHistory.AssertExpectations(t)
}

func TestSnapshotReport_BadRef(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		Ref:      "no-such-branch",
		Side:     schema.AfterSide,
	}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("ResolveRef", ctx, "no-such-branch").Return("", errors.New("reference not found"))

	report, err := snapshotReport(ctx, cfg, mockHistory, testCalculator(t, &contract.MockSourceVisitor{}, &contract.MockLintRunner{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `failed to resolve ref "no-such-branch"`)
	assert.Nil(t, report)
}

func TestSnapshotReport_SnapshotError(t *testing.T) {
	ctx := WithSuppressHeader(context.Background())
	cfg := &contract.Config{
		RepoPath: "/test/repo",
		Ref:      "main",
		Side:     schema.AfterSide,
	}

	mockHistory := &contract.MockHistoryProvider{}
	mockHistory.On("ResolveRef", ctx, "main").Return("0123456789abcdef", nil)
	mockHistory.On("SnapshotAfter", ctx, "0123456789abcdef").Return(nil, errors.New("object not found"))

	report, err := snapshotReport(ctx, cfg, mockHistory, testCalculator(t, &contract.MockSourceVisitor{}, &contract.MockLintRunner{}))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to extract snapshot at 0123456")
	assert.Nil(t, report)
}
