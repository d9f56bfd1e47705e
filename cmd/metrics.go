package cmd

import (
	"github.com/issueminer/issueminer/core"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all dataset metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display definitions and formulas for all dataset metrics",
	Long: `Show the formal definitions, formulas, and aggregation rules for every
metric that appears in dataset records.

Provides complete transparency into how records are computed, including:
- What each metric measures
- The per-file computation and the snapshot-level aggregation
- The maintainability index formula and its clamping rules
- How parse failures and absent values are represented

No repository access is performed - this is purely informational.

Use this to:
- Understand the columns of a mined dataset
- Explain the metric definitions to your team
- Document methodology alongside published datasets

Examples:
  # Show the metric catalog
  issueminer metrics

  # JSON form for tooling
  issueminer metrics --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetricCatalog(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
