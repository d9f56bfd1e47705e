package core

import (
	"fmt"
	"path/filepath"

	"github.com/issueminer/issueminer/internal/contract"
)

// headerPrefix returns the emoji prefix for a header line, or nothing when
// emojis are disabled.
func headerPrefix(cfg *contract.Config, emoji string) string {
	if cfg.UseEmojis {
		return emoji + " "
	}
	return ""
}

// repoLabel returns a short display name for the repository under analysis.
func repoLabel(cfg *contract.Config) string {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	return repoName
}

// logMiningHeader prints a concise, 2-line header for a dataset run.
func logMiningHeader(cfg *contract.Config, endIssue int) {
	// Line 1: The run summary (repo and GitHub coordinates)
	fmt.Printf("%sRepo: %s (%s/%s)\n", headerPrefix(cfg, "🔎"), repoLabel(cfg), cfg.Owner, cfg.Repo)

	// Line 2: The resolved issue range being mined
	fmt.Printf("%sIssues: #%d → #%d\n", headerPrefix(cfg, "🎯"), cfg.StartIssue, endIssue)
}

// logSnapshotHeader prints a header for a snapshot computation.
func logSnapshotHeader(cfg *contract.Config) {
	fmt.Printf("%sRepo: %s (Ref: %s)\n", headerPrefix(cfg, "🔎"), repoLabel(cfg), cfg.Ref)
	fmt.Printf("%sSide: %s\n", headerPrefix(cfg, "📸"), cfg.Side)
}

// logScanHeader prints a header for an issue activity scan.
func logScanHeader(cfg *contract.Config) {
	fmt.Printf("%sRepo: %s (Limit: %d)\n", headerPrefix(cfg, "🔎"), repoLabel(cfg), cfg.ResultLimit)
}
