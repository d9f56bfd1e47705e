package cmd

import (
	"github.com/issueminer/issueminer/core"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/spf13/cobra"
)

// snapshotCmd computes metrics for a single reference.
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [repo-path]",
	Short: "Compute code metrics for one Git reference.",
	Long: `Extract the codebase snapshot at a Git reference and compute the full
metric set over it: lines of code, comment lines, cyclomatic complexity,
Halstead totals, maintainability index and the duplication probe.

By default the snapshot is the tree of the resolved commit (the "after"
side). Pass --before to inspect the parent tree instead, which is the state
the dataset records as the before-side of a change window.

Renders as a table by default; use --output csv or --output json for
machine-readable forms, and --output-file to redirect.

Examples:
  # Metrics of the current HEAD
  issueminer snapshot

  # Metrics of a release tag
  issueminer snapshot --ref v2.31.0

  # The state just before a fix landed
  issueminer snapshot --ref 7f3a9c1 --before

  # JSON for scripting
  issueminer snapshot --ref main --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSnapshot(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot compute snapshot metrics", err)
		}
	},
}
