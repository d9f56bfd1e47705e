// Package core has core logic for mining issue history into dataset records.
package core

import (
	"context"
	"fmt"
	"time"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/outwriter"
	"github.com/issueminer/issueminer/schema"
)

// ExecuteDataset runs the full mining pipeline and prints a completion
// summary. It serves as the main entry point for the 'dataset' command.
func ExecuteDataset(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	start := time.Now()

	log, err := contract.NewRunLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = log.Close() }()

	pipeline, err := NewDatasetPipeline(ctx, cfg, mgr, log)
	if err != nil {
		return err
	}
	defer func() { _ = pipeline.Close() }()

	written, skipped, err := pipeline.Run(ctx)
	if err != nil {
		return err
	}

	duration := time.Since(start)
	printDatasetSummary(cfg, written, skipped, duration)
	return nil
}

// printDatasetSummary prints the closing lines of a dataset run.
func printDatasetSummary(cfg *contract.Config, written, skipped int, duration time.Duration) {
	fmt.Printf("\nMined %d issue(s) in %v (%d skipped)\n", written, duration.Round(time.Millisecond), skipped)
	fmt.Printf("Dataset: %s (%s)\n", cfg.OutputFile, cfg.Format)
}

// ExecuteIssues runs the history scan and prints the ranked activity table.
// It serves as the main entry point for the 'issues' command.
func ExecuteIssues(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	issues, err := GetIssueActivities(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	writer := outwriter.NewOutWriter()
	return writer.WriteIssues(issues, cfg, duration)
}

// ExecuteSnapshot computes the metrics of one reference and prints the report.
// It serves as the main entry point for the 'snapshot' command.
func ExecuteSnapshot(ctx context.Context, cfg *contract.Config) error {
	start := time.Now()
	report, err := GetSnapshotReport(ctx, cfg)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	writer := outwriter.NewOutWriter()
	return writer.WriteSnapshot(report, cfg, duration)
}

// ExecuteMetricCatalog displays the formal definitions of all dataset metrics.
// This is a static display that does not require repository access.
func ExecuteMetricCatalog(_ context.Context, cfg *contract.Config) error {
	writer := outwriter.NewOutWriter()
	return writer.WriteMetricCatalog(cfg)
}

// buildActivity sums per-commit change statistics into one issue activity.
func buildActivity(ctx context.Context, history contract.HistoryProvider, number int, commits []schema.CommitRef) (schema.IssueActivity, error) {
	activity := schema.IssueActivity{
		IssueNumber: number,
		Commits:     commits,
		NOC:         len(commits),
	}
	for _, c := range commits {
		stats, err := history.CommitStats(ctx, c.Hash)
		if err != nil {
			return schema.IssueActivity{}, fmt.Errorf("failed to get stats for commit %s: %w", schema.ShortHash(c.Hash), err)
		}
		activity.NOCF += stats.Files
		activity.NOI += stats.Insertions
		activity.NOD += stats.Deletions
	}
	return activity, nil
}
