// Package ghapi fetches issue metadata from the GitHub REST API. Requests
// thread an explicit token ring through the call so rate-limited tokens can
// be rotated away without hidden state, and fetch failures degrade to
// placeholder descriptions instead of sinking a dataset run.
package ghapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/schema"
)

// descriptionCacheVersion tags cached issue descriptions; bump it to force
// refetches after a format change.
const descriptionCacheVersion = 1

// issuesAPI is the slice of the GitHub client the service depends on.
type issuesAPI interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.Issue, *github.Response, error)
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

// Service implements issue lookups against one GitHub repository.
type Service struct {
	owner     string
	repo      string
	cache     contract.CacheStore
	log       *contract.RunLog
	clientFor func(token string) issuesAPI
}

var _ contract.IssueService = &Service{} // Compile-time check

// NewService builds a service for one owner/repo pair. The cache store is
// optional; pass nil to always hit the API.
func NewService(owner, repo string, cache contract.CacheStore, log *contract.RunLog) *Service {
	return &Service{
		owner:     owner,
		repo:      repo,
		cache:     cache,
		log:       log,
		clientFor: defaultClientFor,
	}
}

func defaultClientFor(token string) issuesAPI {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return client.Issues
}

// IssueDescription implements the IssueService interface. It returns the
// issue body, rotating the ring and retrying once when rate limited. A
// missing issue or an unrecoverable fetch failure yields a placeholder
// description so the caller can still emit a record.
func (s *Service) IssueDescription(ctx context.Context, ring contract.TokenRing, number int) (string, contract.TokenRing, error) {
	key := issueCacheKey(s.owner, s.repo, number)
	if s.cache != nil {
		if data, version, _, err := s.cache.Get(key); err == nil && version == descriptionCacheVersion {
			return string(data), ring, nil
		}
	}

	body, resp, err := s.fetchBody(ctx, ring.Token(), number)
	if err == nil {
		s.store(key, body)
		return body, ring, nil
	}
	if ctx.Err() != nil {
		return "", ring, ctx.Err()
	}
	if isRateLimited(resp, err) {
		ring = ring.Advance()
		s.log.Warnf("Rate limited fetching %s, rotating token", schema.IssueRef(number))
		body, _, err = s.fetchBody(ctx, ring.Token(), number)
		if err == nil {
			s.store(key, body)
			return body, ring, nil
		}
		if ctx.Err() != nil {
			return "", ring, ctx.Err()
		}
		return fmt.Sprintf("Issue %s (error fetching description)", schema.IssueRef(number)), ring, nil
	}
	if isNotFound(resp) {
		return fmt.Sprintf("Issue %s (not found)", schema.IssueRef(number)), ring, nil
	}
	s.log.Warnf("Failed to fetch %s: %v", schema.IssueRef(number), err)
	return fmt.Sprintf("Issue %s (error fetching description)", schema.IssueRef(number)), ring, nil
}

// LastClosedIssue implements the IssueService interface. It resolves the most
// recently closed issue number with a single one-item list call.
func (s *Service) LastClosedIssue(ctx context.Context, ring contract.TokenRing) (int, contract.TokenRing, error) {
	number, resp, err := s.fetchLastClosed(ctx, ring.Token())
	if err == nil {
		return number, ring, nil
	}
	if ctx.Err() != nil {
		return 0, ring, ctx.Err()
	}
	if isRateLimited(resp, err) {
		ring = ring.Advance()
		s.log.Warnf("Rate limited resolving last closed issue, rotating token")
		number, _, err = s.fetchLastClosed(ctx, ring.Token())
		if err == nil {
			return number, ring, nil
		}
	}
	return 0, ring, fmt.Errorf("failed to resolve last closed issue for %s/%s: %w", s.owner, s.repo, err)
}

func (s *Service) fetchBody(ctx context.Context, token string, number int) (string, *github.Response, error) {
	issue, resp, err := s.clientFor(token).Get(ctx, s.owner, s.repo, number)
	if err != nil {
		return "", resp, err
	}
	return issue.GetBody(), resp, nil
}

func (s *Service) fetchLastClosed(ctx context.Context, token string) (int, *github.Response, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "closed",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 1},
	}
	issues, resp, err := s.clientFor(token).ListByRepo(ctx, s.owner, s.repo, opts)
	if err != nil {
		return 0, resp, err
	}
	if len(issues) == 0 {
		return 0, resp, errors.New("repository has no closed issues")
	}
	return issues[0].GetNumber(), resp, nil
}

func (s *Service) store(key, body string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(key, []byte(body), descriptionCacheVersion, time.Now().Unix()); err != nil {
		s.log.Warnf("Failed to cache issue description: %v", err)
	}
}

func issueCacheKey(owner, repo string, number int) string {
	return fmt.Sprintf("issue:%s/%s#%d", owner, repo, number)
}

// isRateLimited covers both the typed rate-limit errors raised by the client
// and plain 403/429 responses from proxies or secondary limits.
func isRateLimited(resp *github.Response, err error) bool {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return true
	}
	return resp != nil && (resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests)
}

func isNotFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}
