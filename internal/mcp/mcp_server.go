// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/issueminer/issueminer/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the issueminer MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Issueminer Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: snapshot_metrics ---
	s.AddTool(mcp.NewTool("snapshot_metrics",
		mcp.WithDescription("Compute code metrics (LOC, comments, cyclomatic complexity, Halstead totals, maintainability index) for the repository tree at one Git reference."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to current directory if not specified).")),
		mcp.WithString("ref", mcp.Description("Git reference to inspect (branch, tag, or commit hash). Defaults to 'HEAD'.")),
		mcp.WithString("side", mcp.Description("Which tree to measure: 'after' for the ref's own tree, 'before' for its first parent."), mcp.Enum("before", "after")),
	), h.handleSnapshotMetrics)

	// --- 2. Tool: scan_issues ---
	s.AddTool(mcp.NewTool("scan_issues",
		mcp.WithDescription("Scan commit history and rank GitHub issues by correlated commit activity (commits, changed files, insertions, deletions)."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleScanIssues)

	// --- 3. Tool: metric_catalog ---
	s.AddTool(mcp.NewTool("metric_catalog",
		mcp.WithDescription("Return the definitions, formulas, and aggregation rules for every metric in the dataset schema."),
	), h.handleMetricCatalog)

	// --- 4. Tool: mining_runs ---
	s.AddTool(mcp.NewTool("mining_runs",
		mcp.WithDescription("List recorded dataset mining runs with their configuration and written/skipped issue counts."),
		mcp.WithNumber("limit", mcp.Description("Return only the most recent N runs.")),
	), h.handleMiningRuns)

	return s
}

// StartMCPServer starts the issueminer MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
