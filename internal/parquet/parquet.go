// Package parquet provides data structures and functions for exporting mining
// run data and issue dataset records to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/issueminer/issueminer/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single dataset mining run with metadata.
// This struct maps to the issueminer_runs database table.
type Run struct {
	// RunID is the unique identifier for this mining run
	RunID int64 `parquet:"run_id,snappy"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable, stored as TIMESTAMP with nanosecond precision)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the mining run in milliseconds (nullable)
	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	// RepoPath is the local path of the mined repository
	RepoPath string `parquet:"repo_path,snappy"`

	// Owner is the GitHub owner of the mined repository
	Owner string `parquet:"owner,snappy"`

	// Repo is the GitHub repository name
	Repo string `parquet:"repo,snappy"`

	// StartIssue is the first issue number in the mined range
	StartIssue int32 `parquet:"start_issue,snappy"`

	// EndIssue is the last issue number in the mined range
	EndIssue int32 `parquet:"end_issue,snappy"`

	// IssuesWritten is the number of dataset records produced by this run
	IssuesWritten int32 `parquet:"issues_written,snappy"`

	// IssuesSkipped is the number of issues skipped (no commits or errors)
	IssuesSkipped int32 `parquet:"issues_skipped,snappy"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// IssueStats represents the scalar metrics for a single issue in a mining run.
// This struct maps to the issueminer_issue_stats database table.
type IssueStats struct {
	// RunID references the parent mining run
	RunID int64 `parquet:"run_id,snappy"`

	// IssueNumber is the GitHub issue number
	IssueNumber int32 `parquet:"issue_number,snappy"`

	// RecordTime is when this issue was processed (stored as TIMESTAMP with nanosecond precision)
	RecordTime time.Time `parquet:"record_time,snappy"`

	// FirstCommit is the hash of the earliest commit referencing the issue
	FirstCommit string `parquet:"first_commit,snappy"`

	// LastCommit is the hash of the latest commit referencing the issue
	LastCommit string `parquet:"last_commit,snappy"`

	// NOC is the number of commits referencing the issue
	NOC int32 `parquet:"noc,snappy"`

	// NOCF is the number of files changed across those commits
	NOCF int32 `parquet:"nocf,snappy"`

	// NOI is the number of lines inserted across those commits
	NOI int32 `parquet:"noi,snappy"`

	// NOD is the number of lines deleted across those commits
	NOD int32 `parquet:"nod,snappy"`

	// LOCBefore is the codebase LOC before the first commit (nullable)
	LOCBefore *int32 `parquet:"loc_before,optional,snappy"`

	// LOCAfter is the codebase LOC after the last commit (nullable)
	LOCAfter *int32 `parquet:"loc_after,optional,snappy"`

	// MIBefore is the maintainability index before the first commit (nullable)
	MIBefore *float64 `parquet:"mi_before,optional,snappy"`

	// MIAfter is the maintainability index after the last commit (nullable)
	MIAfter *float64 `parquet:"mi_after,optional,snappy"`
}

// DatasetRow is the Parquet projection of one issue dataset record. Column
// names track the JSONL field names so both formats read the same from
// pandas or DuckDB; the Halstead totals are flattened into one column per
// counter because the map is either empty or carries exactly these keys.
type DatasetRow struct {
	IssueID                   int       `parquet:"issue_id,snappy"`
	IssueDescription          string    `parquet:"issue_description,snappy"`
	IssueDescriptionEmbedding []float64 `parquet:"issue_description_embedding,list,snappy"`
	FirstCommit               string    `parquet:"first_commit,snappy"`
	LastCommit                string    `parquet:"last_commit,snappy"`
	CodebaseEmbeddingBefore   []float64 `parquet:"codebase_embedding_before_first_commit,list,snappy"`
	CodebaseEmbeddingAfter    []float64 `parquet:"codebase_embedding_after_last_commit,list,snappy"`

	NOC  int `parquet:"NOC,snappy"`
	NOCF int `parquet:"NOCF,snappy"`
	NOI  int `parquet:"NOI,snappy"`
	NOD  int `parquet:"NOD,snappy"`

	LOCBefore                  *int     `parquet:"LOC_before,optional,snappy"`
	CommentsBefore             int      `parquet:"Comments_before,snappy"`
	CyclomaticComplexityBefore *float64 `parquet:"CyclomaticComplexity_before,optional,snappy"`
	HalsteadLengthBefore       *int     `parquet:"halstead_length_before,optional,snappy"`
	HalsteadVocabularyBefore   *int     `parquet:"halstead_vocabulary_before,optional,snappy"`
	HalsteadVolumeBefore       *int     `parquet:"halstead_volume_before,optional,snappy"`
	HalsteadDifficultyBefore   *int     `parquet:"halstead_difficulty_before,optional,snappy"`
	HalsteadEffortBefore       *int     `parquet:"halstead_effort_before,optional,snappy"`
	MaintainabilityIndexBefore *float64 `parquet:"MaintainabilityIndex_before,optional,snappy"`
	CodeDuplicationBefore      *int     `parquet:"CodeDuplication_before,optional,snappy"`
	CouplingBefore             *float64 `parquet:"Coupling_before,optional,snappy"`
	CohesionBefore             *float64 `parquet:"Cohesion_before,optional,snappy"`

	LOCAfter                  *int     `parquet:"LOC_after,optional,snappy"`
	CommentsAfter             int      `parquet:"Comments_after,snappy"`
	CyclomaticComplexityAfter *float64 `parquet:"CyclomaticComplexity_after,optional,snappy"`
	HalsteadLengthAfter       *int     `parquet:"halstead_length_after,optional,snappy"`
	HalsteadVocabularyAfter   *int     `parquet:"halstead_vocabulary_after,optional,snappy"`
	HalsteadVolumeAfter       *int     `parquet:"halstead_volume_after,optional,snappy"`
	HalsteadDifficultyAfter   *int     `parquet:"halstead_difficulty_after,optional,snappy"`
	HalsteadEffortAfter       *int     `parquet:"halstead_effort_after,optional,snappy"`
	MaintainabilityIndexAfter *float64 `parquet:"MaintainabilityIndex_after,optional,snappy"`
	CodeDuplicationAfter      *int     `parquet:"CodeDuplication_after,optional,snappy"`
	CouplingAfter             *float64 `parquet:"Coupling_after,optional,snappy"`
	CohesionAfter             *float64 `parquet:"Cohesion_after,optional,snappy"`
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the Run struct tags
	writer := parquet.NewGenericWriter[Run](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteIssueStatsParquet writes a slice of IssueStats structs to a Parquet file.
func WriteIssueStatsParquet(data []IssueStats, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the IssueStats struct tags
	writer := parquet.NewGenericWriter[IssueStats](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	// The Write method accepts a variadic slice
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// DatasetWriter streams issue dataset records into one Parquet file. Unlike
// the JSONL writer, rows buffer inside the encoder until Close writes the
// file footer, so an interrupted run leaves an unreadable file.
type DatasetWriter struct {
	file   *os.File
	writer *parquet.GenericWriter[DatasetRow]
}

// NewDatasetWriter creates the output file and the row encoder for it.
func NewDatasetWriter(outputPath string) (*DatasetWriter, error) {
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset file %q: %w", outputPath, err)
	}
	return &DatasetWriter{
		file:   file,
		writer: parquet.NewGenericWriter[DatasetRow](file),
	}, nil
}

// Write appends one issue record as a Parquet row.
func (w *DatasetWriter) Write(record *schema.IssueRecord) error {
	if _, err := w.writer.Write([]DatasetRow{ConvertIssueRecord(record)}); err != nil {
		return fmt.Errorf("failed to write row for issue %d: %w", record.IssueID, err)
	}
	return nil
}

// Close finalizes the Parquet footer and closes the file.
func (w *DatasetWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return w.file.Close()
}

// ConvertIssueRecord converts a schema.IssueRecord to a DatasetRow for Parquet export.
func ConvertIssueRecord(record *schema.IssueRecord) DatasetRow {
	return DatasetRow{
		IssueID:                   record.IssueID,
		IssueDescription:          record.IssueDescription,
		IssueDescriptionEmbedding: record.IssueDescriptionEmbedding,
		FirstCommit:               record.FirstCommit,
		LastCommit:                record.LastCommit,
		CodebaseEmbeddingBefore:   record.CodebaseEmbeddingBefore,
		CodebaseEmbeddingAfter:    record.CodebaseEmbeddingAfter,

		NOC:  record.NOC,
		NOCF: record.NOCF,
		NOI:  record.NOI,
		NOD:  record.NOD,

		LOCBefore:                  record.LOCBefore,
		CommentsBefore:             record.CommentsBefore,
		CyclomaticComplexityBefore: record.CyclomaticComplexityBefore,
		HalsteadLengthBefore:       halsteadColumn(record.HalsteadMetricsBefore, schema.HalsteadLength),
		HalsteadVocabularyBefore:   halsteadColumn(record.HalsteadMetricsBefore, schema.HalsteadVocabulary),
		HalsteadVolumeBefore:       halsteadColumn(record.HalsteadMetricsBefore, schema.HalsteadVolume),
		HalsteadDifficultyBefore:   halsteadColumn(record.HalsteadMetricsBefore, schema.HalsteadDifficulty),
		HalsteadEffortBefore:       halsteadColumn(record.HalsteadMetricsBefore, schema.HalsteadEffort),
		MaintainabilityIndexBefore: record.MaintainabilityIndexBefore,
		CodeDuplicationBefore:      record.CodeDuplicationBefore,
		CouplingBefore:             record.CouplingBefore,
		CohesionBefore:             record.CohesionBefore,

		LOCAfter:                  record.LOCAfter,
		CommentsAfter:             record.CommentsAfter,
		CyclomaticComplexityAfter: record.CyclomaticComplexityAfter,
		HalsteadLengthAfter:       halsteadColumn(record.HalsteadMetricsAfter, schema.HalsteadLength),
		HalsteadVocabularyAfter:   halsteadColumn(record.HalsteadMetricsAfter, schema.HalsteadVocabulary),
		HalsteadVolumeAfter:       halsteadColumn(record.HalsteadMetricsAfter, schema.HalsteadVolume),
		HalsteadDifficultyAfter:   halsteadColumn(record.HalsteadMetricsAfter, schema.HalsteadDifficulty),
		HalsteadEffortAfter:       halsteadColumn(record.HalsteadMetricsAfter, schema.HalsteadEffort),
		MaintainabilityIndexAfter: record.MaintainabilityIndexAfter,
		CodeDuplicationAfter:      record.CodeDuplicationAfter,
		CouplingAfter:             record.CouplingAfter,
		CohesionAfter:             record.CohesionAfter,
	}
}

// halsteadColumn pulls one counter out of the totals map, nil when the totals
// are absent because every file failed to parse.
func halsteadColumn(totals schema.HalsteadTotals, key schema.HalsteadKey) *int {
	if len(totals) == 0 {
		return nil
	}
	value, ok := totals[key]
	if !ok {
		return nil
	}
	return &value
}

// MockFetchRuns generates sample Run data for demonstration.
func MockFetchRuns() []Run {
	now := time.Now()
	startTime1 := now.Add(-2 * time.Hour)
	endTime1 := now.Add(-1*time.Hour - 30*time.Minute)
	durationMs1 := int32(endTime1.Sub(startTime1).Milliseconds())
	configParams1 := `{"owner":"psf","repo":"requests","start_issue":1,"end_issue":120}`

	startTime2 := now.Add(-24 * time.Hour)
	endTime2 := now.Add(-23 * time.Hour)
	durationMs2 := int32(endTime2.Sub(startTime2).Milliseconds())
	configParams2 := `{"owner":"pallets","repo":"flask","start_issue":50,"end_issue":90}`

	startTime3 := now.Add(-10 * time.Minute)
	// Note: endTime3, durationMs3, configParams3 are nil to demonstrate nullable fields

	return []Run{
		{
			RunID:         1,
			StartTime:     startTime1,
			EndTime:       &endTime1,
			RunDurationMs: &durationMs1,
			RepoPath:      "/repos/requests",
			Owner:         "psf",
			Repo:          "requests",
			StartIssue:    1,
			EndIssue:      120,
			IssuesWritten: 96,
			IssuesSkipped: 24,
			ConfigParams:  &configParams1,
		},
		{
			RunID:         2,
			StartTime:     startTime2,
			EndTime:       &endTime2,
			RunDurationMs: &durationMs2,
			RepoPath:      "/repos/flask",
			Owner:         "pallets",
			Repo:          "flask",
			StartIssue:    50,
			EndIssue:      90,
			IssuesWritten: 31,
			IssuesSkipped: 10,
			ConfigParams:  &configParams2,
		},
		{
			RunID:         3,
			StartTime:     startTime3,
			EndTime:       nil, // Still running - nullable field
			RunDurationMs: nil, // Not yet calculated - nullable field
			RepoPath:      "/repos/django",
			Owner:         "django",
			Repo:          "django",
			StartIssue:    1,
			EndIssue:      40,
			IssuesWritten: 0,
			IssuesSkipped: 0,
			ConfigParams:  nil, // No config stored - nullable field
		},
	}
}

// MockFetchIssueStats generates sample IssueStats data for demonstration.
func MockFetchIssueStats() []IssueStats {
	now := time.Now()
	locBefore1 := int32(15230)
	locAfter1 := int32(15418)
	miBefore1 := 72.45
	miAfter1 := 71.98
	locBefore2 := int32(15418)
	locAfter2 := int32(15420)
	miBefore2 := 71.98
	miAfter2 := 72.01

	return []IssueStats{
		{
			RunID:       1,
			IssueNumber: 101,
			RecordTime:  now.Add(-1 * time.Hour),
			FirstCommit: "a1b2c3d4e5f60718293a4b5c6d7e8f9012345678",
			LastCommit:  "b2c3d4e5f60718293a4b5c6d7e8f901234567890",
			NOC:         4,
			NOCF:        11,
			NOI:         248,
			NOD:         63,
			LOCBefore:   &locBefore1,
			LOCAfter:    &locAfter1,
			MIBefore:    &miBefore1,
			MIAfter:     &miAfter1,
		},
		{
			RunID:       1,
			IssueNumber: 102,
			RecordTime:  now.Add(-55 * time.Minute),
			FirstCommit: "c3d4e5f60718293a4b5c6d7e8f90123456789012",
			LastCommit:  "c3d4e5f60718293a4b5c6d7e8f90123456789012",
			NOC:         1,
			NOCF:        1,
			NOI:         2,
			NOD:         0,
			LOCBefore:   &locBefore2,
			LOCAfter:    &locAfter2,
			MIBefore:    &miBefore2,
			MIAfter:     &miAfter2,
		},
		{
			RunID:       2,
			IssueNumber: 55,
			RecordTime:  now.Add(-23 * time.Hour),
			FirstCommit: "d4e5f60718293a4b5c6d7e8f9012345678901234",
			LastCommit:  "e5f60718293a4b5c6d7e8f901234567890123456",
			NOC:         2,
			NOCF:        3,
			NOI:         40,
			NOD:         12,
			LOCBefore:   nil, // No parseable sources at that point - nullable field
			LOCAfter:    nil,
			MIBefore:    nil,
			MIAfter:     nil,
		},
	}
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			RepoPath:      record.RepoPath,
			Owner:         record.Owner,
			Repo:          record.Repo,
			StartIssue:    record.StartIssue,
			EndIssue:      record.EndIssue,
			IssuesWritten: record.IssuesWritten,
			IssuesSkipped: record.IssuesSkipped,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertIssueStatsRecords converts schema.IssueStatsRecord to IssueStats for Parquet export.
func ConvertIssueStatsRecords(records []schema.IssueStatsRecord) []IssueStats {
	result := make([]IssueStats, len(records))
	for i, record := range records {
		result[i] = IssueStats{
			RunID:       record.RunID,
			IssueNumber: record.IssueNumber,
			RecordTime:  record.RecordTime,
			FirstCommit: record.FirstCommit,
			LastCommit:  record.LastCommit,
			NOC:         record.NOC,
			NOCF:        record.NOCF,
			NOI:         record.NOI,
			NOD:         record.NOD,
			LOCBefore:   record.LOCBefore,
			LOCAfter:    record.LOCAfter,
			MIBefore:    record.MIBefore,
			MIAfter:     record.MIAfter,
		}
	}
	return result
}
