package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// getDisplayNameForMetric returns the display name with emoji for a given metric name.
func getDisplayNameForMetric(metricName string) string {
	switch metricName {
	case "LOC":
		return "📏 LOC"
	case "Comments":
		return "💬 Comments"
	case "CyclomaticComplexity":
		return "🧩 CyclomaticComplexity"
	case "HalsteadMetrics":
		return "🧮 HalsteadMetrics"
	case "MaintainabilityIndex":
		return "🔧 MaintainabilityIndex"
	case "CodeDuplication":
		return "📋 CodeDuplication"
	default:
		return metricName
	}
}

// PrintMetricCatalog displays the formal definitions of all dataset metrics.
// This is a static display that does not require repository access.
func PrintMetricCatalog(cfg *contract.Config) error {
	// Build the complete render model with all processed data
	renderModel := BuildMetricCatalogModel()

	switch cfg.Output {
	case schema.JSONOut:
		return printCatalogJSON(renderModel, cfg)
	case schema.CSVOut:
		return printCatalogCSV(renderModel, cfg)
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printCatalogText(w, renderModel)
		}, "Wrote text")
	}
}

// printCatalogText displays the catalog in human-readable text format.
func printCatalogText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "🧮 Issue Dataset Metrics\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "========================\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", renderModel.Description); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "\n"); err != nil {
		return err
	}

	for _, metric := range renderModel.Metrics {
		// Add emoji prefix for display
		displayName := getDisplayNameForMetric(metric.Name)
		if _, err := fmt.Fprintf(w, "%s: %s\n", displayName, metric.Purpose); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Inputs: %s\n", strings.Join(metric.Inputs, ", ")); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Aggregation: %s\n", metric.Aggregation); err != nil {
			return err
		}
		if metric.Formula != "" {
			if _, err := fmt.Fprintf(w, "   Formula: %s\n", metric.Formula); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "\n"); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "🔗 Conventions\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", renderModel.Notes["sentinels"]); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%s\n", renderModel.Notes["aggregation"]); err != nil {
		return err
	}

	return nil
}

// printCatalogJSON displays the catalog in JSON format.
func printCatalogJSON(renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, renderModel)
	}, "Wrote JSON")
}

// printCatalogCSV displays the catalog in CSV format.
func printCatalogCSV(renderModel *schema.MetricsRenderModel, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		writer := csv.NewWriter(w)
		defer writer.Flush()
		return writeCSVCatalog(writer, renderModel)
	}, "Wrote CSV")
}

// writeCSVCatalog writes the metric definitions in CSV format.
func writeCSVCatalog(w *csv.Writer, renderModel *schema.MetricsRenderModel) error {
	// Write header
	header := []string{"Metric", "Purpose", "Inputs", "Aggregation", "Formula"}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write each metric
	for _, metric := range renderModel.Metrics {
		record := []string{
			metric.Name,
			metric.Purpose,
			strings.Join(metric.Inputs, "|"),
			metric.Aggregation,
			metric.Formula,
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	return nil
}

// BuildMetricCatalogModel constructs the complete render model with all metric definitions.
func BuildMetricCatalogModel() *schema.MetricsRenderModel {
	metrics := []schema.MetricInfo{
		{
			Name:        "LOC",
			Purpose:     "Executable size - non-blank, non-comment lines",
			Inputs:      []string{"source text"},
			Aggregation: "sum across snapshot files",
			Formula:     "total lines - blank lines - comment lines",
		},
		{
			Name:        "Comments",
			Purpose:     "Documentation volume - full-line and inline comments",
			Inputs:      []string{"source text"},
			Aggregation: "sum across snapshot files",
			Formula:     "count of lines carrying a # comment",
		},
		{
			Name:        "CyclomaticComplexity",
			Purpose:     "Decision density of function and method blocks",
			Inputs:      []string{"parsed source blocks"},
			Aggregation: "mean across blocks, all files pooled",
			Formula:     "1 + decision points per block",
		},
		{
			Name:        "HalsteadMetrics",
			Purpose:     "Operator and operand vocabulary effort",
			Inputs:      []string{"operators", "operands"},
			Aggregation: "sum across snapshot files, truncated to integers",
			Formula:     "N = N1+N2; n = n1+n2; V = N*log2(n); D = (n1/2)*(N2/n2); E = D*V",
		},
		{
			Name:        "MaintainabilityIndex",
			Purpose:     "Composite maintainability on a 0-100 scale",
			Inputs:      []string{"halstead_volume", "CyclomaticComplexity", "LOC", "Comments"},
			Aggregation: "single value per snapshot",
			Formula:     "clamp((342 - 5.2*ln(V) - 0.23*CC - 16.2*ln(SLOC) + 50*sin(sqrt(2.46*rad(C)))) * 100/171, 0, 100)",
		},
		{
			Name:        "CodeDuplication",
			Purpose:     "Duplicate lines flagged by the external lint probe",
			Inputs:      []string{"lint tool output"},
			Aggregation: "count of marker lines per repository",
		},
		{
			Name:        "Coupling",
			Purpose:     "Reserved for future inter-module analysis",
			Inputs:      []string{"none"},
			Aggregation: "not computed",
		},
		{
			Name:        "Cohesion",
			Purpose:     "Reserved for future intra-module analysis",
			Inputs:      []string{"none"},
			Aggregation: "not computed",
		},
	}

	return &schema.MetricsRenderModel{
		Title:       "Issue Dataset Metrics",
		Description: "Each metric is computed twice per issue: before the first correlated commit and after the last",
		Metrics:     metrics,
		Notes: map[string]string{
			"sentinels":   "Null means a metric could not be computed; zero is a real measurement",
			"aggregation": "Halstead quantities sum across files while complexity averages across blocks",
		},
	}
}
