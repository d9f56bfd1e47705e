package cmd

import (
	"strings"

	"github.com/issueminer/issueminer/core"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
	"github.com/spf13/cobra"
)

// datasetSetupWrapper runs the shared setup, then resolves the dataset file
// default. The persistent --output-file flag is empty by default because the
// render commands treat empty as stdout, which is no place for a dataset.
func datasetSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = contract.DefaultOutputFile
		if cfg.Format == schema.ParquetFormat {
			cfg.OutputFile = strings.TrimSuffix(contract.DefaultOutputFile, ".jsonl") + ".parquet"
		}
	}
	return nil
}

// datasetCmd builds the issue dataset.
var datasetCmd = &cobra.Command{
	Use:   "dataset [repo-path]",
	Short: "Mine issue history into a metrics dataset.",
	Long: `Walk the repository's history, correlate commits with the GitHub issues
they reference, and write one dataset record per issue.

Each record captures the change window of an issue:
- Issue number and description (fetched from the GitHub API, cached locally)
- First and last correlated commit hashes
- Commit activity counts (commits, changed files, insertions, deletions)
- Code metrics on both sides of the window: lines of code, comment lines,
  cyclomatic complexity, Halstead totals, maintainability index and a
  lint-based duplication probe
- Embeddings of the description and of both codebase snapshots

The issue range runs from --start to --end. Leaving --end at its default
resolves the most recently closed issue from the GitHub API, so a bare run
mines the whole history.

Records stream to the output file as they complete. For JSONL, an interrupted
run keeps everything written so far; Parquet needs the run to finish so the
file footer can be written.

Set GITHUB_TOKEN0..GITHUB_TOKEN9 to raise the GitHub API rate limit; the
miner rotates through all configured tokens. Set GEMINI_API_KEY for
embeddings, or pass --no-embed to skip them.

Examples:
  # Mine every closed issue of the repository in the current directory
  issueminer dataset

  # Mine a fixed range with embeddings disabled
  issueminer dataset ~/src/flask --start 100 --end 500 --no-embed

  # Write Parquet instead of JSONL
  issueminer dataset --format parquet -o data/flask.parquet

  # Track runs in SQLite for later export
  issueminer dataset --run-backend sqlite --run-db-connect runs.db`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: datasetSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDataset(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot build dataset", err)
		}
	},
}
