package pyvisit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplexityBlocks(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		source   string
		expected []float64
	}{
		{
			name:     "straight line function",
			path:     "a.py",
			source:   "def f():\n    return 1\n",
			expected: []float64{1},
		},
		{
			name: "branching adds per decision",
			path: "a.py",
			source: "def f(x):\n" +
				"    if x > 1:\n" +
				"        return 1\n" +
				"    elif x < 0:\n" +
				"        return 2\n" +
				"    else:\n" +
				"        return 3\n",
			expected: []float64{3},
		},
		{
			name: "loops and exception handlers count",
			path: "a.py",
			source: "def h(n):\n" +
				"    while n > 0:\n" +
				"        try:\n" +
				"            n -= 1\n" +
				"        except ValueError:\n" +
				"            break\n" +
				"    return n\n",
			expected: []float64{3},
		},
		{
			name:     "comprehension clauses count",
			path:     "a.py",
			source:   "def g(xs):\n    return [x for x in xs if x > 0]\n",
			expected: []float64{3},
		},
		{
			name: "methods are blocks",
			path: "a.py",
			source: "class C:\n" +
				"    def m(self, items):\n" +
				"        for item in items:\n" +
				"            if item:\n" +
				"                yield item\n",
			expected: []float64{3},
		},
		{
			name: "nested function is its own block",
			path: "a.py",
			source: "def outer():\n" +
				"    def inner(v):\n" +
				"        if v:\n" +
				"            return 1\n" +
				"        return 0\n" +
				"    return inner\n",
			expected: []float64{1, 2},
		},
		{
			name:     "module level code has no blocks",
			path:     "a.py",
			source:   "x = 1\nprint(x)\n",
			expected: []float64{},
		},
		{
			name:     "extension matching ignores case",
			path:     "A.PY",
			source:   "def f():\n    pass\n",
			expected: []float64{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := NewVisitor().ComplexityBlocks(tt.path, tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, blocks)
		})
	}
}

func TestComplexityBlocksRejects(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		source string
	}{
		{name: "non python extension", path: "a.go", source: "package a\n"},
		{name: "missing extension", path: "Makefile", source: "all:\n"},
		{name: "syntax error", path: "a.py", source: "def f(:\n    pass\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := NewVisitor().ComplexityBlocks(tt.path, tt.source)
			assert.Error(t, err)
			assert.Nil(t, blocks)
		})
	}
}
