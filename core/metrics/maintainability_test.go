package metrics

import (
	"math"
	"testing"

	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintainabilityIndex(t *testing.T) {
	tests := []struct {
		name       string
		volume     *float64
		complexity float64
		sloc       int
		comments   int
		expected   *float64
		delta      float64
	}{
		{
			name:       "absent volume yields absent index",
			volume:     nil,
			complexity: 3,
			sloc:       10,
			comments:   2,
			expected:   nil,
		},
		{
			name:       "negative volume short circuits to ceiling",
			volume:     schema.Float64Ptr(-5),
			complexity: 3,
			sloc:       10,
			comments:   2,
			expected:   schema.Float64Ptr(100.0),
			delta:      0,
		},
		{
			name:       "zero volume short circuits to ceiling",
			volume:     schema.Float64Ptr(0),
			complexity: 1,
			sloc:       50,
			comments:   0,
			expected:   schema.Float64Ptr(100.0),
			delta:      0,
		},
		{
			name:       "zero sloc short circuits to ceiling",
			volume:     schema.Float64Ptr(250),
			complexity: 4,
			sloc:       0,
			comments:   3,
			expected:   schema.Float64Ptr(100.0),
			delta:      0,
		},
		{
			name:       "small codebase clamps at ceiling",
			volume:     schema.Float64Ptr(100),
			complexity: 5,
			sloc:       100,
			comments:   0,
			expected:   schema.Float64Ptr(100.0),
			delta:      0,
		},
		{
			name:       "large codebase lands mid scale",
			volume:     schema.Float64Ptr(10000),
			complexity: 20,
			sloc:       10000,
			comments:   0,
			expected:   schema.Float64Ptr(82.0460),
			delta:      0.001,
		},
		{
			name:       "extreme volume clamps at floor",
			volume:     schema.Float64Ptr(1e30),
			complexity: 0,
			sloc:       1e9,
			comments:   0,
			expected:   schema.Float64Ptr(0.0),
			delta:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MaintainabilityIndex(tt.volume, tt.complexity, tt.sloc, tt.comments)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			if tt.delta == 0 {
				assert.Equal(t, *tt.expected, *result)
			} else {
				assert.InDelta(t, *tt.expected, *result, tt.delta)
			}
		})
	}
}

func TestMaintainabilityIndexCommentTerm(t *testing.T) {
	// The comment count enters the formula as degrees. With the other terms
	// fixed mid scale, a positive sine contribution must raise the score.
	without := MaintainabilityIndex(schema.Float64Ptr(10000), 20, 10000, 0)
	with := MaintainabilityIndex(schema.Float64Ptr(10000), 20, 10000, 90)
	require.NotNil(t, without)
	require.NotNil(t, with)
	assert.Greater(t, *with, *without)
	assert.LessOrEqual(t, *with, 100.0)
}

func TestMaintainabilityIndexBounds(t *testing.T) {
	volumes := []float64{0.5, 1, 10, 1000, 1e6, 1e12}
	slocs := []int{1, 10, 500, 100000}
	complexities := []float64{0, 1.5, 30, 400}
	comments := []int{0, 1, 45, 720}

	for _, v := range volumes {
		for _, s := range slocs {
			for _, c := range complexities {
				for _, m := range comments {
					result := MaintainabilityIndex(schema.Float64Ptr(v), c, s, m)
					require.NotNil(t, result)
					assert.GreaterOrEqual(t, *result, 0.0)
					assert.LessOrEqual(t, *result, 100.0)
					assert.False(t, math.IsNaN(*result))
				}
			}
		}
	}
}
