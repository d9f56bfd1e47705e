// Package gitrepo reads commit history and tree snapshots from a local
// repository clone with go-git, correlating commits to the issue numbers
// referenced in their messages.
package gitrepo

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// issuePattern matches issue references like #42 anywhere in a commit message.
var issuePattern = regexp.MustCompile(`#(\d+)`)

// Provider implements history access against a local clone.
type Provider struct {
	repo *git.Repository
	root string
	log  *contract.RunLog
}

var _ contract.HistoryProvider = &Provider{} // Compile-time check

// Open opens the repository at repoPath. Subdirectories of a clone work too;
// the provider records the detected worktree root.
func Open(repoPath string, log *contract.RunLog) (*Provider, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open repository at %s: %w", repoPath, err)
	}
	root := repoPath
	if wt, err := repo.Worktree(); err == nil {
		root = wt.Filesystem.Root()
	}
	return &Provider{repo: repo, root: root, log: log}, nil
}

// RepoRoot implements the HistoryProvider interface.
func (p *Provider) RepoRoot() string {
	return p.root
}

// ResolveRef implements the HistoryProvider interface. It accepts anything
// git rev-parse would: symbolic refs, ancestry suffixes and full hashes.
func (p *Provider) ResolveRef(_ context.Context, ref string) (string, error) {
	hash, err := p.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return hash.String(), nil
}

// OriginOwnerRepo implements the HistoryProvider interface. It derives the
// GitHub owner and repository name from the origin remote URL.
func (p *Provider) OriginOwnerRepo() (string, string, error) {
	remote, err := p.repo.Remote("origin")
	if err != nil {
		return "", "", fmt.Errorf("failed to read origin remote: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", "", fmt.Errorf("origin remote has no URL")
	}
	return parseOwnerRepo(urls[0])
}

// parseOwnerRepo extracts owner and repo from HTTPS and SSH GitHub URLs.
func parseOwnerRepo(url string) (string, string, error) {
	trimmed := strings.TrimSuffix(url, ".git")
	idx := strings.Index(trimmed, "github.com")
	if idx < 0 {
		return "", "", fmt.Errorf("remote %s is not a GitHub URL", url)
	}
	rest := strings.TrimLeft(trimmed[idx+len("github.com"):], ":/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot determine owner and repo from remote %s", url)
	}
	return parts[0], parts[1], nil
}

// IssueCommits implements the HistoryProvider interface. It walks the full
// history from HEAD and groups commits by every issue number their message
// references. Each issue's commits come back sorted by committer time
// ascending, with history order breaking ties.
func (p *Provider) IssueCommits(ctx context.Context) (map[int][]schema.CommitRef, error) {
	head, err := p.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	iter, err := p.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("failed to walk history: %w", err)
	}
	defer iter.Close()

	issues := map[int][]schema.CommitRef{}
	scanned := 0
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		scanned++
		seen := map[int]struct{}{}
		for _, match := range issuePattern.FindAllStringSubmatch(c.Message, -1) {
			number, err := strconv.Atoi(match[1])
			if err != nil || number <= 0 {
				continue
			}
			if _, dup := seen[number]; dup {
				continue
			}
			seen[number] = struct{}{}
			issues[number] = append(issues[number], schema.CommitRef{
				Hash:    c.Hash.String(),
				When:    c.Committer.When,
				Summary: schema.CommitSummary(c.Message),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan commits: %w", err)
	}

	// The log walks newest first. Flip to history order, then sort by time so
	// equal timestamps keep their topological order.
	for _, refs := range issues {
		reverse(refs)
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].When.Before(refs[j].When)
		})
	}
	p.log.Infof("Scanned %d commits, found %d referenced issues", scanned, len(issues))
	return issues, nil
}

func reverse(refs []schema.CommitRef) {
	for i, j := 0, len(refs)-1; i < j; i, j = i+1, j-1 {
		refs[i], refs[j] = refs[j], refs[i]
	}
}

// CommitStats implements the HistoryProvider interface. Stats are measured
// against the first parent, or the empty tree for a root commit.
func (p *Provider) CommitStats(_ context.Context, hash string) (schema.CommitStats, error) {
	commit, err := p.repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return schema.CommitStats{}, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	fileStats, err := commit.Stats()
	if err != nil {
		return schema.CommitStats{}, fmt.Errorf("failed to compute stats for %s: %w", hash, err)
	}
	stats := schema.CommitStats{Files: len(fileStats)}
	for _, fs := range fileStats {
		stats.Insertions += fs.Addition
		stats.Deletions += fs.Deletion
	}
	return stats, nil
}
