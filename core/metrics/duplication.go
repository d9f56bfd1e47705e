package metrics

import (
	"context"
	"os"
	"strings"

	"github.com/issueminer/issueminer/schema"
)

// probeDuplication runs the configured lint tool against the repository and
// counts output lines containing the probe marker. The tool's stdout is
// spooled through a temp file that is removed before returning. Any failure
// along the way degrades to a nil count; the probe is best effort and must
// never sink a dataset run.
func (c *Calculator) probeDuplication(ctx context.Context, repoPath string) *int {
	out, err := c.runner.Run(ctx, c.probe.Tool, c.probe.Args, repoPath)
	if err != nil {
		c.log.Warnf("Duplication probe skipped: %v", err)
		return nil
	}
	tmp, err := os.CreateTemp("", "issueminer-probe-*.txt")
	if err != nil {
		c.log.Warnf("Duplication probe skipped: %v", err)
		return nil
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmp.Write(out); err != nil {
		_ = tmp.Close()
		c.log.Warnf("Duplication probe skipped: %v", err)
		return nil
	}
	if err := tmp.Close(); err != nil {
		c.log.Warnf("Duplication probe skipped: %v", err)
		return nil
	}
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		c.log.Warnf("Duplication probe skipped: %v", err)
		return nil
	}
	count := 0
	for line := range strings.SplitSeq(string(data), "\n") {
		if strings.Contains(line, c.probe.Marker) {
			count++
		}
	}
	return schema.IntPtr(count)
}
