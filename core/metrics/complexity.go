package metrics

import (
	"math"

	"github.com/issueminer/issueminer/schema"
)

// aggregateComplexity averages cyclomatic complexity across a snapshot. Each
// file yields the mean complexity of its code blocks, rounded to two
// decimals; a file that parses but defines no blocks contributes zero. Files
// that fail to parse are excluded from the mean but counted, and the failure
// rate is surfaced in the run log. A nil result means no file parsed.
func (c *Calculator) aggregateComplexity(snapshot schema.Snapshot) *float64 {
	parsed, failed := 0, 0
	sum := 0.0
	for path, source := range snapshot {
		blocks, err := c.visitor.ComplexityBlocks(path, source)
		if err != nil {
			failed++
			continue
		}
		parsed++
		sum += round2(blockMean(blocks))
	}
	total := parsed + failed
	if total == 0 {
		return nil
	}
	if parsed == 0 {
		c.log.Warnf("Cyclomatic complexity unavailable, all %d files failed to parse", total)
		return nil
	}
	if failed > 0 {
		c.log.Infof("Cyclomatic complexity parse failures: %d/%d files (%.1f%%)", failed, total, schema.FailurePercent(failed, total))
	}
	mean := sum / float64(parsed)
	return &mean
}

// blockMean averages per-block complexities for one file.
func blockMean(blocks []float64) float64 {
	if len(blocks) == 0 {
		return 0
	}
	sum := 0.0
	for _, b := range blocks {
		sum += b
	}
	return sum / float64(len(blocks))
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
