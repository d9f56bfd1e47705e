package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintSnapshotReport outputs the snapshot metrics, dispatching based on the output format configured.
func PrintSnapshotReport(report *schema.SnapshotReport, cfg *contract.Config, duration time.Duration) error {
	// Create formatters using helper
	fmtFloat, _ := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeSnapshotJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeSnapshotCSVResults(report, cfg, fmtFloat); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeSnapshotTable(report, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeSnapshotJSONResults handles opening the file and calling the JSON writer.
func writeSnapshotJSONResults(report *schema.SnapshotReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForSnapshot(w, report)
	}, "Wrote JSON")
}

// writeSnapshotCSVResults handles opening the file and calling the CSV writer.
func writeSnapshotCSVResults(report *schema.SnapshotReport, cfg *contract.Config, fmtFloat func(float64) string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForSnapshot(csvWriter, report, fmtFloat)
	}, "Wrote CSV")
}

// writeSnapshotTable generates and writes the human-readable table.
func writeSnapshotTable(report *schema.SnapshotReport, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Metric", "Value"})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	data := snapshotRows(report.Metrics, fmtFloat)

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	// Context and maintainability summary
	if _, err := fmt.Fprintf(writer, "Scanned %d files at %s (%s side)\n", report.FileCount, shortHash(report.Commit), report.Side); err != nil {
		return err
	}
	maintLabel := schema.GetMaintainabilityLabel(report.Metrics.MaintainabilityIndex)
	if cfg.UseColors {
		maintLabel = contract.GetColorMaintainabilityLabel(report.Metrics.MaintainabilityIndex)
	}
	if _, err := fmt.Fprintf(writer, "Maintainability: %s\n", maintLabel); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Snapshot completed in %v\n", duration); err != nil {
		return err
	}
	return nil
}

// snapshotRows flattens a metrics result into display rows. Absent metrics
// render as "n/a"; Halstead quantities expand into one row each.
func snapshotRows(m schema.MetricsResult, fmtFloat func(float64) string) [][]string {
	rows := [][]string{
		{"LOC", fmtOptionalInt(m.LOC)},
		{"Comments", fmt.Sprintf("%d", m.Comments)},
		{"CyclomaticComplexity", fmtOptionalFloat(m.CyclomaticComplexity, fmtFloat)},
	}
	for _, key := range schema.AllHalsteadKeys {
		value := "n/a"
		if len(m.Halstead) > 0 {
			value = fmt.Sprintf("%d", m.Halstead[key])
		}
		rows = append(rows, []string{string(key), value})
	}
	rows = append(rows,
		[]string{"MaintainabilityIndex", fmtOptionalFloat(m.MaintainabilityIndex, fmtFloat)},
		[]string{"CodeDuplication", fmtOptionalInt(m.CodeDuplication)},
		[]string{"Coupling", fmtOptionalFloat(m.Coupling, fmtFloat)},
		[]string{"Cohesion", fmtOptionalFloat(m.Cohesion, fmtFloat)},
	)
	return rows
}

// writeCSVResultsForSnapshot writes the snapshot metrics as one wide CSV row.
func writeCSVResultsForSnapshot(w *csv.Writer, report *schema.SnapshotReport, fmtFloat func(float64) string) error {
	// CSV header
	header := []string{
		"ref",
		"commit",
		"side",
		"files",
		"loc",
		"comments",
		"cyclomatic_complexity",
		"halstead_length",
		"halstead_vocabulary",
		"halstead_volume",
		"halstead_difficulty",
		"halstead_effort",
		"maintainability_index",
		"code_duplication",
		"coupling",
		"cohesion",
		"label",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	m := report.Metrics
	rec := []string{
		report.Ref,
		report.Commit,
		string(report.Side),
		fmt.Sprintf("%d", report.FileCount),
		fmtOptionalInt(m.LOC),
		fmt.Sprintf("%d", m.Comments),
		fmtOptionalFloat(m.CyclomaticComplexity, fmtFloat),
	}
	for _, key := range schema.AllHalsteadKeys {
		value := "n/a"
		if len(m.Halstead) > 0 {
			value = fmt.Sprintf("%d", m.Halstead[key])
		}
		rec = append(rec, value)
	}
	rec = append(rec,
		fmtOptionalFloat(m.MaintainabilityIndex, fmtFloat),
		fmtOptionalInt(m.CodeDuplication),
		fmtOptionalFloat(m.Coupling, fmtFloat),
		fmtOptionalFloat(m.Cohesion, fmtFloat),
		schema.GetMaintainabilityLabel(m.MaintainabilityIndex),
	)
	return w.Write(rec)
}

// writeJSONResultsForSnapshot writes the snapshot metrics in JSON format.
func writeJSONResultsForSnapshot(w io.Writer, report *schema.SnapshotReport) error {
	// 1. Prepare the data structure for JSON with the label added
	type JSONSnapshotReport struct {
		schema.SnapshotReport
		Label string `json:"label"`
	}

	output := JSONSnapshotReport{
		SnapshotReport: *report,
		Label:          schema.GetMaintainabilityLabel(report.Metrics.MaintainabilityIndex),
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// shortHash abbreviates a commit hash for table display.
func shortHash(hash string) string {
	if len(hash) <= 8 {
		return hash
	}
	return hash[:8]
}
