// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteIssues prints per-issue activity results using the configured output format.
func (ow *OutWriter) WriteIssues(issues []schema.IssueActivity, cfg *contract.Config, duration time.Duration) error {
	return PrintIssueResults(issues, cfg, duration)
}

// WriteSnapshot prints the metrics of one codebase snapshot using the configured output format.
func (ow *OutWriter) WriteSnapshot(report *schema.SnapshotReport, cfg *contract.Config, duration time.Duration) error {
	return PrintSnapshotReport(report, cfg, duration)
}

// WriteMetricCatalog prints the metric definitions using the configured output format.
func (ow *OutWriter) WriteMetricCatalog(cfg *contract.Config) error {
	return PrintMetricCatalog(cfg)
}
