package contract

import (
	"fmt"
	"os"
)

// GitHubTokenEnvSlots is the number of GITHUB_TOKEN<n> environment variables
// scanned when building the default ring.
const GitHubTokenEnvSlots = 10

// TokenRing carries the credential rotation state for GitHub requests as an
// explicit value. Requests receive a ring and hand back the ring to use next;
// nothing is mutated in place, so rings can be threaded through a loop or
// copied freely.
type TokenRing struct {
	tokens []string
	index  int
}

// NewTokenRing builds a ring over the given tokens. Empty tokens are skipped.
func NewTokenRing(tokens []string) TokenRing {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return TokenRing{tokens: kept}
}

// TokenRingFromEnv builds a ring from the GITHUB_TOKEN0..GITHUB_TOKEN9
// environment variables, skipping unset slots.
func TokenRingFromEnv() TokenRing {
	tokens := make([]string, 0, GitHubTokenEnvSlots)
	for i := range GitHubTokenEnvSlots {
		tokens = append(tokens, os.Getenv(fmt.Sprintf("GITHUB_TOKEN%d", i)))
	}
	return NewTokenRing(tokens)
}

// Empty reports whether the ring holds no tokens at all.
func (r TokenRing) Empty() bool {
	return len(r.tokens) == 0
}

// Len returns the number of usable tokens in the ring.
func (r TokenRing) Len() int {
	return len(r.tokens)
}

// Token returns the credential the next request should use. An empty ring
// returns the empty string, which callers treat as unauthenticated access.
func (r TokenRing) Token() string {
	if r.Empty() {
		return ""
	}
	return r.tokens[r.index]
}

// Advance returns a ring pointing at the next token. Advancing an empty ring
// is a no-op.
func (r TokenRing) Advance() TokenRing {
	if r.Empty() {
		return r
	}
	r.index = (r.index + 1) % len(r.tokens)
	return r
}
