package metrics

import (
	"github.com/issueminer/issueminer/schema"
)

// aggregateHalstead sums per-file Halstead metrics across a snapshot. Where
// complexity is averaged, Halstead totals are additive: disjoint snapshots
// sum to the union's totals. Volume, difficulty and effort are rounded to two
// decimals and then truncated to integers before summing, matching how the
// dataset has always stored them. Parse failures are excluded and logged; if
// no file parses the result is an empty map.
func (c *Calculator) aggregateHalstead(snapshot schema.Snapshot) schema.HalsteadTotals {
	totals := schema.HalsteadTotals{}
	parsed, failed := 0, 0
	for path, source := range snapshot {
		visit, err := c.visitor.HalsteadVisit(path, source)
		if err != nil {
			failed++
			continue
		}
		parsed++
		totals[schema.HalsteadLength] += visit.Length
		totals[schema.HalsteadVocabulary] += visit.Vocabulary
		totals[schema.HalsteadVolume] += int(round2(visit.Volume))
		totals[schema.HalsteadDifficulty] += int(round2(visit.Difficulty))
		totals[schema.HalsteadEffort] += int(round2(visit.Effort))
	}
	total := parsed + failed
	if total == 0 {
		return totals
	}
	if parsed == 0 {
		c.log.Warnf("Halstead metrics unavailable, all %d files failed to parse", total)
		return schema.HalsteadTotals{}
	}
	if failed > 0 {
		c.log.Infof("Halstead parse failures: %d/%d files (%.1f%%)", failed, total, schema.FailurePercent(failed, total))
	}
	return totals
}
