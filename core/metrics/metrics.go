// Package metrics computes structural software-quality metrics over codebase
// snapshots: raw size, cyclomatic complexity, Halstead totals, comment
// density, a composed maintainability index and a best-effort duplication
// probe. Per-file parse failures are tallied and excluded instead of aborting
// the snapshot; metrics that cannot be computed degrade to absent values.
package metrics

import (
	"context"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// ProbeConfig describes the external lint tool used by the duplication probe.
type ProbeConfig struct {
	Tool   string   // Lint binary name, e.g. "flake8"
	Args   []string // Arguments placed before the repository path
	Marker string   // Substring identifying flagged output lines
}

// Calculator composes the individual metric computations into one result per
// snapshot. It owns no state across calls; each result is freshly built.
type Calculator struct {
	visitor contract.SourceVisitor
	runner  contract.LintRunner
	probe   ProbeConfig
	log     *contract.RunLog
}

// NewCalculator wires a calculator from its collaborators.
func NewCalculator(visitor contract.SourceVisitor, runner contract.LintRunner, probe ProbeConfig, log *contract.RunLog) *Calculator {
	return &Calculator{
		visitor: visitor,
		runner:  runner,
		probe:   probe,
		log:     log,
	}
}

// ComputeAll computes every metric for one snapshot and merges them into a
// single result. The snapshot feeds the size, complexity, Halstead and
// comment computations; the repository path is consumed only by the
// duplication probe. Coupling and cohesion stay absent; the fields exist for
// dataset schema stability only.
func (c *Calculator) ComputeAll(ctx context.Context, snapshot schema.Snapshot, repoPath string) schema.MetricsResult {
	loc := CountLinesOfCode(snapshot)
	comments := CountComments(snapshot)
	complexity := c.aggregateComplexity(snapshot)
	halstead := c.aggregateHalstead(snapshot)

	var volume *float64
	if v, ok := halstead.Volume(); ok {
		volume = &v
	}
	meanComplexity := 0.0
	if complexity != nil {
		meanComplexity = *complexity
	}

	return schema.MetricsResult{
		LOC:                  schema.IntPtr(loc),
		CyclomaticComplexity: complexity,
		Halstead:             halstead,
		Comments:             comments,
		MaintainabilityIndex: MaintainabilityIndex(volume, meanComplexity, loc, comments),
		CodeDuplication:      c.probeDuplication(ctx, repoPath),
	}
}
