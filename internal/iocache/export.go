package iocache

import (
	"errors"
	"fmt"

	"github.com/issueminer/issueminer/internal/parquet"
)

// ExecuteRunExport performs the actual export of run tracking data to Parquet files.
func ExecuteRunExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	// Get the run store
	store := Manager.GetRunStore()

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get run status: %w", err)
	}

	if status.TotalRuns == 0 {
		return errors.New("no run data found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total mining runs: %d\n", status.TotalRuns)
	fmt.Printf("Total issue records: %d\n", status.TableSizes["issueminer_issue_stats"])

	// Retrieve all mining runs
	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}

	// Retrieve all per-issue stats
	issueStats, err := store.GetAllIssueStats()
	if err != nil {
		return fmt.Errorf("failed to retrieve issue stats: %w", err)
	}

	// Convert to Parquet format
	parquetRuns := parquet.ConvertRunRecords(runs)
	parquetIssueStats := parquet.ConvertIssueStatsRecords(issueStats)

	// Write mining runs to Parquet
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	// Write per-issue stats to Parquet
	issueStatsFile := outputFile + ".issue_stats.parquet"
	if err := parquet.WriteIssueStatsParquet(parquetIssueStats, issueStatsFile); err != nil {
		return fmt.Errorf("failed to write issue stats: %w", err)
	}
	fmt.Printf("Exported %d issue records to: %s\n", len(parquetIssueStats), issueStatsFile)

	fmt.Println("\nExport complete! The Parquet files can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Apache Arrow")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
