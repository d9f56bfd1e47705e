package core

import (
	"context"
	"fmt"

	"github.com/issueminer/issueminer/core/metrics"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/gitrepo"
	"github.com/issueminer/issueminer/internal/pyvisit"
	"github.com/issueminer/issueminer/schema"
)

// GetSnapshotReport computes the full metric set of the codebase at one
// reference, before or after its commit per the configured side.
func GetSnapshotReport(ctx context.Context, cfg *contract.Config) (*schema.SnapshotReport, error) {
	log, err := contract.NewRunLog("")
	if err != nil {
		return nil, err
	}
	history, err := gitrepo.Open(cfg.RepoPath, log)
	if err != nil {
		return nil, err
	}
	calc := metrics.NewCalculator(pyvisit.NewVisitor(), &contract.LocalLintRunner{}, probeConfigFrom(cfg), log)
	return snapshotReport(ctx, cfg, history, calc)
}

// snapshotReport is the provider-injected core of GetSnapshotReport.
func snapshotReport(ctx context.Context, cfg *contract.Config, history contract.HistoryProvider, calc *metrics.Calculator) (*schema.SnapshotReport, error) {
	if !shouldSuppressHeader(ctx) {
		logSnapshotHeader(cfg)
	}

	hash, err := history.ResolveRef(ctx, cfg.Ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ref %q: %w", cfg.Ref, err)
	}

	var snapshot schema.Snapshot
	if cfg.Side == schema.BeforeSide {
		snapshot, err = history.SnapshotBefore(ctx, hash)
	} else {
		snapshot, err = history.SnapshotAfter(ctx, hash)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to extract snapshot at %s: %w", schema.ShortHash(hash), err)
	}

	result := calc.ComputeAll(ctx, snapshot, cfg.RepoPath)
	return &schema.SnapshotReport{
		Ref:       cfg.Ref,
		Commit:    hash,
		Side:      cfg.Side,
		FileCount: len(snapshot),
		Metrics:   result,
	}, nil
}
