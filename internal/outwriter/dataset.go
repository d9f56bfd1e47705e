package outwriter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/parquet"
	"github.com/issueminer/issueminer/schema"
)

// DatasetWriter persists dataset records one at a time. Records written
// before an interruption stay on disk.
type DatasetWriter interface {
	// Write appends one record to the dataset file.
	Write(record *schema.IssueRecord) error

	// Close flushes pending data and releases the underlying file.
	Close() error
}

// NewDatasetWriter opens the dataset file for the configured format,
// creating the parent directory when missing.
func NewDatasetWriter(cfg *contract.Config) (DatasetWriter, error) {
	outputFile := cfg.OutputFile
	if dir := filepath.Dir(outputFile); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory %q: %w", dir, err)
		}
	}
	if cfg.Format == schema.ParquetFormat {
		return parquet.NewDatasetWriter(outputFile)
	}
	return newJSONLWriter(outputFile)
}

// jsonlWriter writes one JSON object per line, flushing after every record
// so an interrupted run keeps all completed records.
type jsonlWriter struct {
	file *os.File
	buf  *bufio.Writer
}

func newJSONLWriter(outputFile string) (*jsonlWriter, error) {
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset file %q: %w", outputFile, err)
	}
	return &jsonlWriter{file: file, buf: bufio.NewWriter(file)}, nil
}

// Write marshals the record onto its own line and flushes it through.
func (w *jsonlWriter) Write(record *schema.IssueRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for issue %d: %w", record.IssueID, err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	if err := w.buf.WriteByte('\n'); err != nil {
		return err
	}
	return w.buf.Flush()
}

// Close flushes any buffered bytes and closes the file.
func (w *jsonlWriter) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}
