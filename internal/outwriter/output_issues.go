package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintIssueResults outputs the scanned issue activity, dispatching based on the output format configured.
func PrintIssueResults(issues []schema.IssueActivity, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	_, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeIssueJSONResults(issues, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeIssueCSVResults(issues, cfg, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeIssueTable(issues, cfg, intFmt, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeIssueJSONResults handles opening the file and calling the JSON writer.
func writeIssueJSONResults(issues []schema.IssueActivity, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForIssues(w, issues)
	}, "Wrote JSON")
}

// writeIssueCSVResults handles opening the file and calling the CSV writer.
func writeIssueCSVResults(issues []schema.IssueActivity, cfg *contract.Config, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForIssues(csvWriter, issues, intFmt)
	}, "Wrote CSV")
}

// writeIssueTable generates and writes the human-readable table.
func writeIssueTable(issues []schema.IssueActivity, cfg *contract.Config, intFmt string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Issue", "NOC", "NOCF", "NOI", "NOD", "Summary", "Label"}
	table.Header(headers)

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, a := range issues {
		label := schema.GetActivityLabel(a.NOC)
		if cfg.UseColors {
			label = contract.GetColorActivityLabel(a.NOC)
		}
		row := []string{
			strconv.Itoa(i + 1),                            // Rank
			fmt.Sprintf("#%d", a.IssueNumber),              // Issue
			fmt.Sprintf(intFmt, a.NOC),                     // Commits
			fmt.Sprintf(intFmt, a.NOCF),                    // Changed files
			fmt.Sprintf(intFmt, a.NOI),                     // Insertions
			fmt.Sprintf(intFmt, a.NOD),                     // Deletions
			formatLastSummary(a, GetMaxTableSummaryWidth(cfg)), // Latest commit summary
			label,
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Compute summary stats
	numIssues := len(issues)
	totalCommits := 0
	totalChurn := 0
	for _, a := range issues {
		totalCommits += a.NOC
		totalChurn += a.NOI + a.NOD
	}
	if _, err := fmt.Fprintf(writer, "Showing top %d issues (total commits: %d, total churn: %d)\n", numIssues, totalCommits, totalChurn); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Scan completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// formatLastSummary returns the first line of the latest correlated commit,
// truncated to the table budget.
func formatLastSummary(a schema.IssueActivity, maxWidth int) string {
	if len(a.Commits) == 0 {
		return ""
	}
	return contract.TruncateText(a.Commits[len(a.Commits)-1].Summary, maxWidth)
}

// writeCSVResultsForIssues writes the issue activity in CSV format.
func writeCSVResultsForIssues(w *csv.Writer, issues []schema.IssueActivity, intFmt string) error {
	// CSV header
	header := []string{
		"rank",
		"issue",
		"noc",
		"nocf",
		"noi",
		"nod",
		"first_commit",
		"last_commit",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, a := range issues {
		rec := []string{
			strconv.Itoa(i + 1),                  // Rank
			strconv.Itoa(a.IssueNumber),          // Issue Number
			fmt.Sprintf(intFmt, a.NOC),           // Commits
			fmt.Sprintf(intFmt, a.NOCF),          // Changed files
			fmt.Sprintf(intFmt, a.NOI),           // Insertions
			fmt.Sprintf(intFmt, a.NOD),           // Deletions
			a.FirstCommit(),                      // First Commit Hash
			a.LastCommit(),                       // Last Commit Hash
			schema.GetActivityLabel(a.NOC),       // Label
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// writeJSONResultsForIssues writes the issue activity in JSON format.
func writeJSONResultsForIssues(w io.Writer, issues []schema.IssueActivity) error {
	// 1. Prepare the data structure for JSON with commit hashes added
	type JSONIssueResult struct {
		schema.EnrichedIssueActivity
		FirstCommit string `json:"first_commit"`
		LastCommit  string `json:"last_commit"`
	}

	enriched := schema.EnrichIssues(issues)
	output := make([]JSONIssueResult, len(enriched))
	for i, e := range enriched {
		output[i] = JSONIssueResult{
			EnrichedIssueActivity: e,
			FirstCommit:           e.FirstCommit(),
			LastCommit:            e.LastCommit(),
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
