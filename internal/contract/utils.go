package contract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/issueminer/issueminer/schema"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold)     // criticalColor represents standard danger.
	HighColor     = color.New(color.FgGreen, color.Bold)   // highColor represents a healthy signal.
	ModerateColor = color.New(color.FgYellow)              // moderateColor represents standard caution, not bold.
	LowColor      = color.New(color.FgMagenta, color.Bold) // lowColor represents a strong warning.
	InfoColor     = color.New(color.FgCyan)                // infoColor represents informational output.
)

// GetColorMaintainabilityLabel returns a colored maintainability label for
// console output (table). It uses schema.GetMaintainabilityLabel to determine
// the string, and then applies the appropriate color.
func GetColorMaintainabilityLabel(mi *float64) string {
	text := schema.GetMaintainabilityLabel(mi)

	switch text {
	case "High":
		return HighColor.Sprint(text)
	case "Moderate":
		return ModerateColor.Sprint(text)
	case "Low":
		return LowColor.Sprint(text)
	case "Critical":
		return CriticalColor.Sprint(text)
	default: // "n/a"
		return InfoColor.Sprint(text)
	}
}

// GetColorActivityLabel returns a colored activity label for console output.
func GetColorActivityLabel(noc int) string {
	text := schema.GetActivityLabel(noc)

	switch text {
	case "Hot":
		return CriticalColor.Sprint(text)
	case "Active":
		return ModerateColor.Sprint(text)
	case "Normal":
		return InfoColor.Sprint(text)
	default: // "Quiet"
		return LowColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// HasRecognizedExtension returns true if the path's extension is in the
// given allow-list. Matching is by extension only; the rest of the path is
// not inspected.
func HasRecognizedExtension(path string, allowed map[string]struct{}) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	_, ok := allowed[ext]
	return ok
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// RunLog writes progress and warning lines to stderr, optionally duplicated
// into a log file so long dataset builds keep an on-disk trail.
type RunLog struct {
	file *os.File
}

// NewRunLog opens the log file when a path is given. An empty path yields a
// console-only log.
func NewRunLog(path string) (*RunLog, error) {
	if path == "" {
		return &RunLog{}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &RunLog{file: f}, nil
}

// Infof logs a progress line.
func (l *RunLog) Infof(format string, args ...any) {
	l.writef("Info "+format+"\n", args...)
}

// Warnf logs a warning line.
func (l *RunLog) Warnf(format string, args ...any) {
	l.writef("Warn "+format+"\n", args...)
}

func (l *RunLog) writef(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format, args...)
	if l.file != nil {
		_, _ = fmt.Fprintf(l.file, format, args...)
	}
}

// Writer exposes the log file for collaborators that stream their own
// diagnostics, or io.Discard when no file is configured.
func (l *RunLog) Writer() io.Writer {
	if l.file == nil {
		return io.Discard
	}
	return l.file
}

// Close releases the log file if one was opened.
func (l *RunLog) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// TruncateText shortens free-form text to maxRunes, appending an ellipsis
// when anything was cut. Used for table cells holding issue descriptions.
func TruncateText(text string, maxRunes int) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= maxRunes || maxRunes <= 3 {
		return string(runes)
	}
	return string(runes[:maxRunes-3]) + "..."
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
