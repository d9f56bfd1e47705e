package contract

import (
	"context"

	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/mock"
)

// --- MockHistoryProvider Implementation ---

// MockHistoryProvider is a mock implementation of HistoryProvider for testing.
type MockHistoryProvider struct {
	mock.Mock
}

var _ HistoryProvider = &MockHistoryProvider{} // Compile-time check

// RepoRoot implements the HistoryProvider interface.
func (m *MockHistoryProvider) RepoRoot() string {
	ret := m.Called()
	return ret.String(0)
}

// ResolveRef implements the HistoryProvider interface.
func (m *MockHistoryProvider) ResolveRef(ctx context.Context, ref string) (string, error) {
	ret := m.Called(ctx, ref)
	return ret.String(0), ret.Error(1)
}

// OriginOwnerRepo implements the HistoryProvider interface.
func (m *MockHistoryProvider) OriginOwnerRepo() (string, string, error) {
	ret := m.Called()
	return ret.String(0), ret.String(1), ret.Error(2)
}

// IssueCommits implements the HistoryProvider interface.
func (m *MockHistoryProvider) IssueCommits(ctx context.Context) (map[int][]schema.CommitRef, error) {
	ret := m.Called(ctx)
	commits, _ := ret.Get(0).(map[int][]schema.CommitRef)
	return commits, ret.Error(1)
}

// CommitStats implements the HistoryProvider interface.
func (m *MockHistoryProvider) CommitStats(ctx context.Context, hash string) (schema.CommitStats, error) {
	ret := m.Called(ctx, hash)
	stats, _ := ret.Get(0).(schema.CommitStats)
	return stats, ret.Error(1)
}

// SnapshotBefore implements the HistoryProvider interface.
func (m *MockHistoryProvider) SnapshotBefore(ctx context.Context, hash string) (schema.Snapshot, error) {
	ret := m.Called(ctx, hash)
	snap, _ := ret.Get(0).(schema.Snapshot)
	return snap, ret.Error(1)
}

// SnapshotAfter implements the HistoryProvider interface.
func (m *MockHistoryProvider) SnapshotAfter(ctx context.Context, hash string) (schema.Snapshot, error) {
	ret := m.Called(ctx, hash)
	snap, _ := ret.Get(0).(schema.Snapshot)
	return snap, ret.Error(1)
}

// --- MockIssueService Implementation ---

// MockIssueService is a mock implementation of IssueService for testing.
type MockIssueService struct {
	mock.Mock
}

var _ IssueService = &MockIssueService{} // Compile-time check

// IssueDescription implements the IssueService interface.
func (m *MockIssueService) IssueDescription(ctx context.Context, ring TokenRing, number int) (string, TokenRing, error) {
	ret := m.Called(ctx, ring, number)
	nextRing, _ := ret.Get(1).(TokenRing)
	return ret.String(0), nextRing, ret.Error(2)
}

// LastClosedIssue implements the IssueService interface.
func (m *MockIssueService) LastClosedIssue(ctx context.Context, ring TokenRing) (int, TokenRing, error) {
	ret := m.Called(ctx, ring)
	nextRing, _ := ret.Get(1).(TokenRing)
	return ret.Int(0), nextRing, ret.Error(2)
}

// --- MockEmbedder Implementation ---

// MockEmbedder is a mock implementation of Embedder for testing.
type MockEmbedder struct {
	mock.Mock
}

var _ Embedder = &MockEmbedder{} // Compile-time check

// EmbedText implements the Embedder interface.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float64, error) {
	ret := m.Called(ctx, text)
	vec, _ := ret.Get(0).([]float64)
	return vec, ret.Error(1)
}

// EmbedCode implements the Embedder interface.
func (m *MockEmbedder) EmbedCode(ctx context.Context, snapshot schema.Snapshot) ([]float64, error) {
	ret := m.Called(ctx, snapshot)
	vec, _ := ret.Get(0).([]float64)
	return vec, ret.Error(1)
}

// --- MockSourceVisitor Implementation ---

// MockSourceVisitor is a mock implementation of SourceVisitor for testing.
type MockSourceVisitor struct {
	mock.Mock
}

var _ SourceVisitor = &MockSourceVisitor{} // Compile-time check

// ComplexityBlocks implements the SourceVisitor interface.
func (m *MockSourceVisitor) ComplexityBlocks(path, source string) ([]float64, error) {
	ret := m.Called(path, source)
	blocks, _ := ret.Get(0).([]float64)
	return blocks, ret.Error(1)
}

// HalsteadVisit implements the SourceVisitor interface.
func (m *MockSourceVisitor) HalsteadVisit(path, source string) (schema.HalsteadVisit, error) {
	ret := m.Called(path, source)
	visit, _ := ret.Get(0).(schema.HalsteadVisit)
	return visit, ret.Error(1)
}

// --- MockLintRunner Implementation ---

// MockLintRunner is a mock implementation of LintRunner for testing.
type MockLintRunner struct {
	mock.Mock
}

var _ LintRunner = &MockLintRunner{} // Compile-time check

// Run implements the LintRunner interface.
func (m *MockLintRunner) Run(ctx context.Context, tool string, args []string, repoPath string) ([]byte, error) {
	ret := m.Called(ctx, tool, args, repoPath)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}
