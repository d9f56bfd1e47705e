package core

import (
	"context"
	"fmt"
	"sort"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/gitrepo"
	"github.com/issueminer/issueminer/schema"
)

// GetIssueActivities scans the commit history and returns the per-issue
// activity rows, ranked by commit count and truncated to the result limit.
func GetIssueActivities(ctx context.Context, cfg *contract.Config) ([]schema.IssueActivity, error) {
	log, err := contract.NewRunLog("")
	if err != nil {
		return nil, err
	}
	history, err := gitrepo.Open(cfg.RepoPath, log)
	if err != nil {
		return nil, err
	}
	return scanIssueActivities(ctx, cfg, history, log)
}

// scanIssueActivities is the provider-injected core of GetIssueActivities.
func scanIssueActivities(ctx context.Context, cfg *contract.Config, history contract.HistoryProvider, log *contract.RunLog) ([]schema.IssueActivity, error) {
	if !shouldSuppressHeader(ctx) {
		logScanHeader(cfg)
	}

	issueCommits, err := history.IssueCommits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to scan commit history: %w", err)
	}

	activities := make([]schema.IssueActivity, 0, len(issueCommits))
	for number, commits := range issueCommits {
		activity, err := buildActivity(ctx, history, number, commits)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Warnf("Skipping %s: %v", schema.IssueRef(number), err)
			continue
		}
		activities = append(activities, activity)
	}

	rankActivities(activities)
	if cfg.ResultLimit > 0 && len(activities) > cfg.ResultLimit {
		activities = activities[:cfg.ResultLimit]
	}
	return activities, nil
}

// rankActivities orders by commit count descending, with the issue number as
// a stable tiebreaker.
func rankActivities(activities []schema.IssueActivity) {
	sort.SliceStable(activities, func(i, j int) bool {
		if activities[i].NOC != activities[j].NOC {
			return activities[i].NOC > activities[j].NOC
		}
		return activities[i].IssueNumber < activities[j].IssueNumber
	})
}
