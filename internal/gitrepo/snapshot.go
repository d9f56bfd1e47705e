package gitrepo

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// SnapshotBefore implements the HistoryProvider interface. It captures the
// tree of the commit's first parent; a root commit yields an empty snapshot
// since no code existed before it.
func (p *Provider) SnapshotBefore(ctx context.Context, hash string) (schema.Snapshot, error) {
	commit, err := p.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	if commit.NumParents() == 0 {
		return schema.Snapshot{}, nil
	}
	parent, err := commit.Parent(0)
	if err != nil {
		return nil, fmt.Errorf("failed to load parent of %s: %w", hash, err)
	}
	return p.treeSnapshot(ctx, parent, schema.BeforeSide)
}

// SnapshotAfter implements the HistoryProvider interface. It captures the
// commit's own tree.
func (p *Provider) SnapshotAfter(ctx context.Context, hash string) (schema.Snapshot, error) {
	commit, err := p.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	return p.treeSnapshot(ctx, commit, schema.AfterSide)
}

// treeSnapshot reads every allow-listed source file from a commit tree.
// Binary and non-UTF-8 blobs are skipped without error; the snapshot holds
// text the metric computations can consume.
func (p *Provider) treeSnapshot(ctx context.Context, commit *object.Commit, side schema.SnapshotSide) (schema.Snapshot, error) {
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree of %s: %w", commit.Hash, err)
	}
	allowed := schema.SnapshotExtensions(side)
	snapshot := schema.Snapshot{}
	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !contract.HasRecognizedExtension(f.Name, allowed) {
			return nil
		}
		if binary, err := f.IsBinary(); err != nil || binary {
			return nil
		}
		contents, err := f.Contents()
		if err != nil {
			return nil
		}
		if !utf8.ValidString(contents) {
			return nil
		}
		snapshot[f.Name] = contents
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read tree of %s: %w", commit.Hash, err)
	}
	return snapshot, nil
}
