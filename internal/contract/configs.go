package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/issueminer/issueminer/schema"
)

// Default values for configuration.
const (
	// DefaultEndIssue is a sentinel: when the end of the range is left at 1,
	// the pipeline resolves the most recently closed issue instead.
	DefaultStartIssue = 1
	DefaultEndIssue   = 1

	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2

	DefaultOutputFile = "data/issue_dataset.jsonl"
	DefaultLintTool   = "flake8"
	DefaultLintArgs   = "--select=D"
	DefaultLintMarker = "D"
	DefaultTextModel  = "gemini-embedding-001"
	DefaultCodeModel  = "gemini-embedding-001"
)

// DateTimeFormat is the timestamp layout used in CSV output and headers.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for a command.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath   string // Absolute path to the repository working tree
	Owner      string // GitHub owner; empty means derive from origin remote
	Repo       string // GitHub repository name; empty means derive from origin remote
	StartIssue int
	EndIssue   int

	OutputFile string
	Format     schema.DatasetFormat
	Output     schema.OutputMode
	LogFile    string

	ResultLimit int
	Precision   int
	Ref         string              // Reference inspected by the snapshot command
	Side        schema.SnapshotSide // Which side of the ref to snapshot

	TextModel      string
	CodeModel      string
	SkipEmbeddings bool

	LintTool   string
	LintArgs   []string
	LintMarker string

	CacheBackend   schema.CacheBackend
	CacheDBConnect string // Please use env var as this is plaintext

	RunBackend   schema.CacheBackend
	RunDBConnect string // Please use env var as this is plaintext

	Tokens []string // GitHub tokens in ring order

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
	Width     int  // Terminal width override (0 = auto-detect)
}

// Clone creates a deep copy of the Config, so callers can adjust a copy
// per request without mutating the shared base.
func (c *Config) Clone() *Config {
	clone := *c
	if c.LintArgs != nil {
		clone.LintArgs = make([]string, len(c.LintArgs))
		copy(clone.LintArgs, c.LintArgs)
	}
	if c.Tokens != nil {
		clone.Tokens = make([]string, len(c.Tokens))
		copy(clone.Tokens, c.Tokens)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Owner          string `mapstructure:"owner"`
	Repo           string `mapstructure:"repo"`
	Output         string `mapstructure:"output"`
	Limit          int    `mapstructure:"limit"`
	Precision      int    `mapstructure:"precision"`
	CacheBackend   string `mapstructure:"cache-backend"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`
	RunBackend     string `mapstructure:"run-backend"`
	RunDBConnect   string `mapstructure:"run-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
	Width          int    `mapstructure:"width"`

	// --- Fields from datasetCmd.Flags() ---
	Start      int    `mapstructure:"start"`
	End        int    `mapstructure:"end"`
	OutputFile string `mapstructure:"output-file"`
	Format     string `mapstructure:"format"`
	LogFile    string `mapstructure:"log-file"`
	TextModel  string `mapstructure:"text-model"`
	CodeModel  string `mapstructure:"code-model"`
	NoEmbed    bool   `mapstructure:"no-embed"`
	LintTool   string `mapstructure:"lint-tool"`
	LintArgs   string `mapstructure:"lint-args"`
	LintMarker string `mapstructure:"lint-marker"`

	// --- Fields from snapshotCmd.Flags() ---
	Ref    string `mapstructure:"ref"`
	Before bool   `mapstructure:"before"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processIssueRange(cfg, input); err != nil {
		return err
	}
	if err := processDatasetOutputs(cfg, input); err != nil {
		return err
	}
	if err := processProbeInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(cfg, input); err != nil {
		return err
	}
	processTokens(cfg)
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.CacheBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and run backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.CacheBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidCacheBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- Run Backend Validation ---
	cfg.RunBackend = schema.CacheBackend(strings.ToLower(input.RunBackend))
	if cfg.RunBackend != "" {
		if _, ok := schema.ValidCacheBackends[cfg.RunBackend]; !ok {
			return fmt.Errorf("invalid run backend '%s'. must be sqlite, mysql, postgresql, none", input.RunBackend)
		}
		cfg.RunDBConnect = input.RunDBConnect
		if err := ValidateDatabaseConnectionString(cfg.RunBackend, cfg.RunDBConnect); err != nil {
			return err
		}

		// Validate that cache and run tracking use different databases
		if cfg.CacheBackend == cfg.RunBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				runDBPath := cfg.RunDBConnect
				if runDBPath == "" {
					runDBPath = GetRunDBFilePath()
				}
				if cacheDBPath == runDBPath {
					return fmt.Errorf("cache and run storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.Owner = strings.TrimSpace(input.Owner)
	cfg.Repo = strings.TrimSpace(input.Repo)
	cfg.LogFile = input.LogFile
	cfg.Ref = strings.TrimSpace(input.Ref)
	if cfg.Ref == "" {
		cfg.Ref = "HEAD"
	}
	cfg.Side = schema.AfterSide
	if input.Before {
		cfg.Side = schema.BeforeSide
	}
	cfg.SkipEmbeddings = input.NoEmbed
	cfg.TextModel = input.TextModel
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	cfg.CodeModel = input.CodeModel
	if cfg.CodeModel == "" {
		cfg.CodeModel = DefaultCodeModel
	}

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors
	cfg.Width = input.Width

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Precision Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- 3. Output Mode Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- 4. Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processIssueRange validates the issue number range of the dataset command.
// End stays at the sentinel when the user does not override it; resolving the
// sentinel against the GitHub API happens in the pipeline, not here.
func processIssueRange(cfg *Config, input *ConfigRawInput) error {
	if input.Start < 1 {
		return fmt.Errorf("start issue must be at least 1 (received %d)", input.Start)
	}
	cfg.StartIssue = input.Start

	if input.End < 1 {
		return fmt.Errorf("end issue must be at least 1 (received %d)", input.End)
	}
	cfg.EndIssue = input.End

	if cfg.EndIssue != DefaultEndIssue && cfg.EndIssue < cfg.StartIssue {
		return fmt.Errorf("end issue (%d) cannot be before start issue (%d)", cfg.EndIssue, cfg.StartIssue)
	}
	return nil
}

// processDatasetOutputs validates the dataset file settings. The dataset
// command's flag supplies DefaultOutputFile; an empty value means stdout for
// the render commands, which share this resolver.
func processDatasetOutputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile

	cfg.Format = schema.DatasetFormat(strings.ToLower(input.Format))
	if cfg.Format == "" {
		cfg.Format = schema.JSONLFormat
	}
	if _, ok := schema.ValidDatasetFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid dataset format '%s'. must be jsonl, parquet", input.Format)
	}

	// The default file name carries the jsonl extension; keep it honest when
	// the format is switched without an explicit output file.
	if cfg.Format == schema.ParquetFormat && cfg.OutputFile == DefaultOutputFile {
		cfg.OutputFile = strings.TrimSuffix(DefaultOutputFile, ".jsonl") + ".parquet"
	}
	return nil
}

// processProbeInputs validates the duplication probe settings.
func processProbeInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.LintTool = strings.TrimSpace(input.LintTool)
	if cfg.LintTool == "" {
		cfg.LintTool = DefaultLintTool
	}

	rawArgs := input.LintArgs
	if rawArgs == "" {
		rawArgs = DefaultLintArgs
	}
	cfg.LintArgs = nil
	for _, arg := range strings.Fields(rawArgs) {
		cfg.LintArgs = append(cfg.LintArgs, arg)
	}

	cfg.LintMarker = input.LintMarker
	if cfg.LintMarker == "" {
		cfg.LintMarker = DefaultLintMarker
	}
	return nil
}

// resolveRepoPath resolves the repository path to an absolute directory.
// Opening the path as a repository is the history provider's concern.
func resolveRepoPath(cfg *Config, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		return fmt.Errorf("repository path is required")
	}

	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, err := os.Stat(absSearchPath)
	if err != nil {
		return fmt.Errorf("repository path %q is not accessible: %w", absSearchPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("repository path %q is not a directory", absSearchPath)
	}

	cfg.RepoPath = absSearchPath
	return nil
}

// processTokens loads the GitHub token slots from the environment.
func processTokens(cfg *Config) {
	ring := TokenRingFromEnv()
	cfg.Tokens = make([]string, 0, ring.Len())
	for range ring.Len() {
		cfg.Tokens = append(cfg.Tokens, ring.Token())
		ring = ring.Advance()
	}
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".issueminer_cache.db"
	}
	return filepath.Join(homeDir, ".issueminer_cache.db")
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".issueminer_runs.db"
	}
	return filepath.Join(homeDir, ".issueminer_runs.db")
}
