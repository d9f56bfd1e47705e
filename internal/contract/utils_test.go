package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/issueminer/issueminer/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetColorMaintainabilityLabel(t *testing.T) {
	tests := []struct {
		name  string
		mi    *float64
		label string
	}{
		{"absent", nil, "n/a"},
		{"high", schema.Float64Ptr(90), "High"},
		{"moderate", schema.Float64Ptr(70), "Moderate"},
		{"low", schema.Float64Ptr(50), "Low"},
		{"critical", schema.Float64Ptr(10), "Critical"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorMaintainabilityLabel(tt.mi)
			// Should contain the plain label
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestGetColorActivityLabel(t *testing.T) {
	tests := []struct {
		name  string
		noc   int
		label string
	}{
		{"hot", 30, "Hot"},
		{"active", 12, "Active"},
		{"normal", 5, "Normal"},
		{"quiet", 1, "Quiet"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetColorActivityLabel(tt.noc)
			assert.Contains(t, result, tt.label)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	t.Run("stdout fallback", func(t *testing.T) {
		f, err := SelectOutputFile("")
		require.NoError(t, err)
		assert.Equal(t, os.Stdout, f)
	})

	t.Run("creates file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		f, err := SelectOutputFile(path)
		require.NoError(t, err)
		defer func() { _ = f.Close() }()
		assert.NotEqual(t, os.Stdout, f)
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr)
	})
}

func TestHasRecognizedExtension(t *testing.T) {
	tests := []struct {
		name string
		path string
		side schema.SnapshotSide
		want bool
	}{
		{"python before", "src/app.py", schema.BeforeSide, true},
		{"python after", "src/app.py", schema.AfterSide, true},
		{"dart before", "lib/main.dart", schema.BeforeSide, true},
		{"dart after", "lib/main.dart", schema.AfterSide, false},
		{"html before", "index.html", schema.BeforeSide, true},
		{"html after", "index.html", schema.AfterSide, false},
		{"uppercase extension", "SRC/APP.PY", schema.BeforeSide, true},
		{"no extension", "Makefile", schema.BeforeSide, false},
		{"unknown extension", "notes.txt", schema.BeforeSide, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			allowed := schema.SnapshotExtensions(tt.side)
			assert.Equal(t, tt.want, HasRecognizedExtension(tt.path, allowed))
		})
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"short path unchanged", "a/b.go", 20, "a/b.go"},
		{"long path truncated", "internal/outwriter/output_utils.go", 20, "...r/output_utils.go"},
		{"width too small", "internal/output.go", 3, "internal/output.go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncatePath(tt.path, tt.maxWidth)
			if len(tt.path) > tt.maxWidth && tt.maxWidth > 3 {
				assert.LessOrEqual(t, len([]rune(got)), tt.maxWidth)
				assert.Contains(t, got, "...")
			} else {
				assert.Equal(t, tt.path, got)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxRunes int
		want     string
	}{
		{"short text unchanged", "pagination broken", 40, "pagination broken"},
		{"long text truncated", "pagination broken on the second page", 20, "pagination broken..."},
		{"trims whitespace", "  spaced  ", 40, "spaced"},
		{"tiny budget unchanged", "abcdef", 3, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateText(tt.text, tt.maxRunes))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input   string
		want    bool
		wantErr bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunLogDuplicatesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")
	log, err := NewRunLog(path)
	require.NoError(t, err)

	log.Infof("processed issue %s", schema.IssueRef(12))
	log.Warnf("halstead failures: %.1f%%", 25.0)
	require.NoError(t, log.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Info processed issue #12")
	assert.Contains(t, string(content), "Warn halstead failures: 25.0%")
}

func TestRunLogConsoleOnly(t *testing.T) {
	log, err := NewRunLog("")
	require.NoError(t, err)
	log.Infof("no file configured")
	assert.NoError(t, log.Close())
}
