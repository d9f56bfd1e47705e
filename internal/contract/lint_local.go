package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// LocalLintRunner implements the LintRunner interface by executing the
// lint binary installed on the machine.
type LocalLintRunner struct{}

var _ LintRunner = &LocalLintRunner{} // Compile-time check

// NewLocalLintRunner creates a new instance of the local lint runner.
func NewLocalLintRunner() *LocalLintRunner {
	return &LocalLintRunner{}
}

// Run executes the lint tool against the repository path and returns its
// standard output. Lint tools exit non-zero whenever they flag lines, so a
// non-zero exit still yields the captured output; only failures to launch
// the process (binary missing, permission denied) surface as errors.
func (c *LocalLintRunner) Run(ctx context.Context, tool string, args []string, repoPath string) ([]byte, error) {
	fullArgs := append(append([]string{}, args...), repoPath)
	cmd := exec.CommandContext(ctx, tool, fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lint command %q failed: %w. Ensure the tool is installed and available on your PATH", tool, err)
	}
	return out, nil
}
