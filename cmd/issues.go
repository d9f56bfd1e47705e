package cmd

import (
	"github.com/issueminer/issueminer/core"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/spf13/cobra"
)

// issuesCmd scans history for issue activity.
var issuesCmd = &cobra.Command{
	Use:   "issues [repo-path]",
	Short: "Show the issues with the most correlated commit activity.",
	Long: `Scan the commit history once and rank the referenced GitHub issues by
how much change they attracted.

For every issue number mentioned in a commit message (e.g. "Fix crash,
refs #123"), the scan aggregates:
- NOC  - number of correlated commits
- NOCF - number of files those commits touched
- NOI  - lines inserted across those commits
- NOD  - lines deleted across those commits

This runs entirely offline against the local repository; no GitHub API
access is needed. Use it to preview what a dataset run will mine, or to
find the issues that drove the most churn.

Examples:
  # Top issues of the repository in the current directory
  issueminer issues

  # Top 50 issues of another checkout
  issueminer issues ~/src/requests --limit 50

  # CSV for further analysis
  issueminer issues --output csv --output-file issue-activity.csv`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteIssues(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot scan issue activity", err)
		}
	},
}
