// Package cmd defines the command-line interface for issueminer.
package cmd

import (
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(datasetCmd)
	rootCmd.AddCommand(snapshotCmd)
	rootCmd.AddCommand(issuesCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(runsCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the runs subcommands to the parent runs command
	runsCmd.AddCommand(runsClearCmd)
	runsCmd.AddCommand(runsStatusCmd)
	runsCmd.AddCommand(runsExportCmd)
	runsCmd.AddCommand(runsMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("owner", "", "GitHub repository owner (defaults to the origin remote)")
	rootCmd.PersistentFlags().String("repo", "", "GitHub repository name (defaults to the origin remote)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Issue description cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("run-backend", "", "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("run-db-connect", "", "Database connection string for run tracking (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in section headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of datasetCmd to Viper
	datasetCmd.Flags().Int("start", contract.DefaultStartIssue, "First issue number of the mining range")
	datasetCmd.Flags().Int("end", contract.DefaultEndIssue, "Last issue number (1 = resolve the last closed issue)")
	datasetCmd.Flags().String("format", string(schema.JSONLFormat), "Dataset file format: jsonl or parquet")
	datasetCmd.Flags().String("log-file", "", "Optional path for the mining progress log")
	datasetCmd.Flags().String("text-model", contract.DefaultTextModel, "Gemini model for issue description embeddings")
	datasetCmd.Flags().String("code-model", contract.DefaultCodeModel, "Gemini model for codebase embeddings")
	datasetCmd.Flags().Bool("no-embed", false, "Skip embedding calls entirely")
	datasetCmd.Flags().String("lint-tool", contract.DefaultLintTool, "Lint binary used by the duplication probe")
	datasetCmd.Flags().String("lint-args", contract.DefaultLintArgs, "Arguments passed to the lint tool before the repo path")
	datasetCmd.Flags().String("lint-marker", contract.DefaultLintMarker, "Substring that marks a flagged lint output line")
	if err := viper.BindPFlags(datasetCmd.Flags()); err != nil {
		contract.LogFatal("Error binding dataset flags", err)
	}

	// Bind all flags of snapshotCmd to Viper
	snapshotCmd.Flags().String("ref", "HEAD", "Git reference to inspect (branch, tag, hash)")
	snapshotCmd.Flags().Bool("before", false, "Snapshot the parent tree instead of the ref's own tree")
	if err := viper.BindPFlags(snapshotCmd.Flags()); err != nil {
		contract.LogFatal("Error binding snapshot flags", err)
	}

	// Bind all flags of runsMigrateCmd to Viper
	runsMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(runsMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding runs migrate flags", err)
	}
}
