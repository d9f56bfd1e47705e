package schema_test

import (
	"testing"

	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetActivityLabel(t *testing.T) {
	tests := []struct {
		name     string
		noc      int
		expected string
	}{
		{"Hot Lower", 20, "Hot"},
		{"Active Upper", 19, "Active"},
		{"Active Lower", 10, "Active"},
		{"Normal Upper", 9, "Normal"},
		{"Normal Lower", 3, "Normal"},
		{"Quiet Upper", 2, "Quiet"},
		{"Quiet Lower", 0, "Quiet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetActivityLabel(tt.noc))
		})
	}
}

func TestGetMaintainabilityLabel(t *testing.T) {
	tests := []struct {
		name     string
		mi       *float64
		expected string
	}{
		{"Absent", nil, "n/a"},
		{"High Upper", schema.Float64Ptr(100.0), "High"},
		{"High Lower", schema.Float64Ptr(85.0), "High"},
		{"Moderate", schema.Float64Ptr(70.0), "Moderate"},
		{"Low", schema.Float64Ptr(41.5), "Low"},
		{"Critical", schema.Float64Ptr(12.0), "Critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schema.GetMaintainabilityLabel(tt.mi))
		})
	}
}

func TestEnrichIssues(t *testing.T) {
	issues := []schema.IssueActivity{
		{IssueNumber: 12, NOC: 25}, // Hot
		{IssueNumber: 34, NOC: 4},  // Normal
		{IssueNumber: 56, NOC: 1},  // Quiet
	}

	enriched := schema.EnrichIssues(issues)

	assert.Len(t, enriched, 3)

	assert.Equal(t, 1, enriched[0].Rank)
	assert.Equal(t, "Hot", enriched[0].Label)
	assert.Equal(t, 12, enriched[0].IssueNumber)

	assert.Equal(t, 2, enriched[1].Rank)
	assert.Equal(t, "Normal", enriched[1].Label)

	assert.Equal(t, 3, enriched[2].Rank)
	assert.Equal(t, "Quiet", enriched[2].Label)
}
