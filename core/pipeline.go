package core

import (
	"context"
	"fmt"
	"time"

	"github.com/issueminer/issueminer/core/metrics"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/ghapi"
	"github.com/issueminer/issueminer/internal/gitrepo"
	"github.com/issueminer/issueminer/internal/llm"
	"github.com/issueminer/issueminer/internal/outwriter"
	"github.com/issueminer/issueminer/internal/pyvisit"
	"github.com/issueminer/issueminer/schema"
)

// DatasetPipeline holds the collaborators of one dataset build. Tests
// construct the struct directly with mocks; NewDatasetPipeline wires the real
// implementations.
type DatasetPipeline struct {
	cfg      *contract.Config
	mgr      contract.StoreManager
	log      *contract.RunLog
	history  contract.HistoryProvider
	issues   contract.IssueService
	embedder contract.Embedder
	calc     *metrics.Calculator
	writer   outwriter.DatasetWriter
	ring     contract.TokenRing
}

// NewDatasetPipeline wires a pipeline from the validated configuration. The
// owner/repo pair falls back to the origin remote when not configured, and
// the resolved values are written back into the config so run tracking and
// output refer to the same coordinates.
func NewDatasetPipeline(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, log *contract.RunLog) (*DatasetPipeline, error) {
	history, err := gitrepo.Open(cfg.RepoPath, log)
	if err != nil {
		return nil, err
	}

	if cfg.Owner == "" || cfg.Repo == "" {
		owner, repo, err := history.OriginOwnerRepo()
		if err != nil {
			return nil, fmt.Errorf("cannot derive owner/repo from the origin remote: %w", err)
		}
		if cfg.Owner == "" {
			cfg.Owner = owner
		}
		if cfg.Repo == "" {
			cfg.Repo = repo
		}
	}

	var embedder contract.Embedder
	if !cfg.SkipEmbeddings {
		embedder, err = llm.NewEmbedder(ctx, cfg.TextModel, cfg.CodeModel, log)
		if err != nil {
			return nil, err
		}
	}

	calc := metrics.NewCalculator(pyvisit.NewVisitor(), &contract.LocalLintRunner{}, probeConfigFrom(cfg), log)

	// The writer comes last so no dataset file appears when wiring fails
	writer, err := outwriter.NewDatasetWriter(cfg)
	if err != nil {
		return nil, err
	}

	return &DatasetPipeline{
		cfg:      cfg,
		mgr:      mgr,
		log:      log,
		history:  history,
		issues:   ghapi.NewService(cfg.Owner, cfg.Repo, mgr.GetCacheStore(), log),
		embedder: embedder,
		calc:     calc,
		writer:   writer,
		ring:     contract.NewTokenRing(cfg.Tokens),
	}, nil
}

// Close releases the dataset writer. Records written before an interruption
// stay on disk for the JSONL format.
func (p *DatasetPipeline) Close() error {
	return p.writer.Close()
}

// Run executes the sequential issue loop and returns written/skipped counts.
// A failure on one issue logs and skips it; only writer and history errors
// abort the run.
func (p *DatasetPipeline) Run(ctx context.Context) (int, int, error) {
	// --- 1. Resolve the issue range ---
	endIssue := p.cfg.EndIssue
	if endIssue == contract.DefaultEndIssue {
		last, ring, err := p.issues.LastClosedIssue(ctx, p.ring)
		p.ring = ring
		if err != nil {
			return 0, 0, fmt.Errorf("failed to resolve the last closed issue: %w", err)
		}
		endIssue = last
	}

	if !shouldSuppressHeader(ctx) {
		logMiningHeader(p.cfg, endIssue)
	}

	// --- 2. Begin run tracking (if configured) ---
	var runID int64
	runStore := p.mgr.GetRunStore()
	if runStore != nil {
		startTime := time.Now()
		configParams := map[string]any{
			"repo_path":   p.cfg.RepoPath,
			"owner":       p.cfg.Owner,
			"repo":        p.cfg.Repo,
			"start_issue": p.cfg.StartIssue,
			"end_issue":   endIssue,
			"output_file": p.cfg.OutputFile,
			"format":      string(p.cfg.Format),
			"no_embed":    p.cfg.SkipEmbeddings,
		}
		var err error
		runID, err = runStore.BeginRun(startTime, configParams)
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		}
	}

	// --- 3. Correlate commits with issues ---
	issueCommits, err := p.history.IssueCommits(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to scan commit history: %w", err)
	}

	// --- 4. Sequential mining loop ---
	written, skipped := 0, 0
	for number := p.cfg.StartIssue; number <= endIssue; number++ {
		if err := ctx.Err(); err != nil {
			return written, skipped, err
		}

		commits := issueCommits[number]
		if len(commits) == 0 {
			skipped++
			continue
		}

		record, err := p.mineIssue(ctx, number, commits)
		if err != nil {
			if ctx.Err() != nil {
				return written, skipped, ctx.Err()
			}
			skipped++
			p.log.Warnf("Skipping %s: %v", schema.IssueRef(number), err)
			continue
		}

		if err := p.writer.Write(record); err != nil {
			return written, skipped, err
		}
		written++
		p.log.Infof("Processed %s (%d commits, %d written so far)", schema.IssueRef(number), len(commits), written)

		if runStore != nil && runID > 0 {
			if err := runStore.RecordIssueStats(runID, statsFromRecord(record)); err != nil {
				contract.LogWarn("Failed to record issue stats", err)
			}
		}
	}

	// --- 5. End run tracking ---
	if runStore != nil && runID > 0 {
		if err := runStore.EndRun(runID, time.Now(), written, skipped); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}

	return written, skipped, nil
}

// mineIssue assembles the dataset record of one issue from its correlated
// commits.
func (p *DatasetPipeline) mineIssue(ctx context.Context, number int, commits []schema.CommitRef) (*schema.IssueRecord, error) {
	activity, err := buildActivity(ctx, p.history, number, commits)
	if err != nil {
		return nil, err
	}
	first := activity.FirstCommit()
	last := activity.LastCommit()

	record := &schema.IssueRecord{
		IssueID:     number,
		FirstCommit: first,
		LastCommit:  last,
		NOC:         activity.NOC,
		NOCF:        activity.NOCF,
		NOI:         activity.NOI,
		NOD:         activity.NOD,
	}

	// Description fetch degrades to a placeholder inside the service, so an
	// error here is unrecoverable (context cancellation).
	desc, ring, err := p.issues.IssueDescription(ctx, p.ring, number)
	p.ring = ring
	if err != nil {
		return nil, err
	}
	record.IssueDescription = desc

	// Snapshots on both sides of the change window
	before, err := p.history.SnapshotBefore(ctx, first)
	if err != nil {
		return nil, fmt.Errorf("failed to extract before-snapshot: %w", err)
	}
	after, err := p.history.SnapshotAfter(ctx, last)
	if err != nil {
		return nil, fmt.Errorf("failed to extract after-snapshot: %w", err)
	}

	record.SetBeforeMetrics(p.calc.ComputeAll(ctx, before, p.cfg.RepoPath))
	record.SetAfterMetrics(p.calc.ComputeAll(ctx, after, p.cfg.RepoPath))

	// Embedding failures leave the vector absent without skipping the issue
	if p.embedder != nil {
		record.IssueDescriptionEmbedding = p.embedVector(ctx, number, "description", func(ctx context.Context) ([]float64, error) {
			return p.embedder.EmbedText(ctx, desc)
		})
		record.CodebaseEmbeddingBefore = p.embedVector(ctx, number, "before-snapshot", func(ctx context.Context) ([]float64, error) {
			return p.embedder.EmbedCode(ctx, before)
		})
		record.CodebaseEmbeddingAfter = p.embedVector(ctx, number, "after-snapshot", func(ctx context.Context) ([]float64, error) {
			return p.embedder.EmbedCode(ctx, after)
		})
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return record, nil
}

// embedVector runs one embedding call, logging failures instead of
// propagating them.
func (p *DatasetPipeline) embedVector(ctx context.Context, number int, label string, embed func(context.Context) ([]float64, error)) []float64 {
	vector, err := embed(ctx)
	if err != nil {
		p.log.Warnf("Embedding %s for %s failed: %v", label, schema.IssueRef(number), err)
		return nil
	}
	return vector
}

// statsFromRecord projects the scalar columns of a record for run tracking.
func statsFromRecord(record *schema.IssueRecord) schema.IssueStatsRecord {
	return schema.IssueStatsRecord{
		IssueNumber: int32(record.IssueID),
		RecordTime:  time.Now(),
		FirstCommit: record.FirstCommit,
		LastCommit:  record.LastCommit,
		NOC:         int32(record.NOC),
		NOCF:        int32(record.NOCF),
		NOI:         int32(record.NOI),
		NOD:         int32(record.NOD),
		LOCBefore:   int32PtrFromInt(record.LOCBefore),
		LOCAfter:    int32PtrFromInt(record.LOCAfter),
		MIBefore:    record.MaintainabilityIndexBefore,
		MIAfter:     record.MaintainabilityIndexAfter,
	}
}

// int32PtrFromInt narrows an optional int for the store row, keeping absence.
func int32PtrFromInt(v *int) *int32 {
	if v == nil {
		return nil
	}
	return schema.Int32Ptr(int32(*v))
}

// probeConfigFrom maps the lint configuration into the calculator's probe
// settings.
func probeConfigFrom(cfg *contract.Config) metrics.ProbeConfig {
	return metrics.ProbeConfig{
		Tool:   cfg.LintTool,
		Args:   cfg.LintArgs,
		Marker: cfg.LintMarker,
	}
}
