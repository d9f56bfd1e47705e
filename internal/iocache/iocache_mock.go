package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// MockStoreManager is a mock implementation of StoreManager for testing.
type MockStoreManager struct {
	mock.Mock
}

var _ contract.StoreManager = &MockStoreManager{} // Compile-time check

// GetCacheStore implements the StoreManager interface.
func (m *MockStoreManager) GetCacheStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetRunStore implements the StoreManager interface.
func (m *MockStoreManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	ret := m.Called(key)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Int(1), ret.Get(2).(int64), ret.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	ret := m.Called(key, data, version, ts)
	return ret.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.CacheStatus)
	return status, ret.Error(1)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	ret := m.Called(startTime, configParams)
	return ret.Get(0).(int64), ret.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID int64, endTime time.Time, written, skipped int) error {
	ret := m.Called(runID, endTime, written, skipped)
	return ret.Error(0)
}

// RecordIssueStats implements the RunStore interface.
func (m *MockRunStore) RecordIssueStats(runID int64, record schema.IssueStatsRecord) error {
	ret := m.Called(runID, record)
	return ret.Error(0)
}

// GetAllRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRuns() ([]schema.RunRecord, error) {
	ret := m.Called()
	runs, _ := ret.Get(0).([]schema.RunRecord)
	return runs, ret.Error(1)
}

// GetAllIssueStats implements the RunStore interface.
func (m *MockRunStore) GetAllIssueStats() ([]schema.IssueStatsRecord, error) {
	ret := m.Called()
	stats, _ := ret.Get(0).([]schema.IssueStatsRecord)
	return stats, ret.Error(1)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.RunStatus)
	return status, ret.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
