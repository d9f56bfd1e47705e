package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/issueminer/issueminer/core"
	"github.com/issueminer/issueminer/internal/contract"
	"github.com/issueminer/issueminer/internal/outwriter"
	"github.com/issueminer/issueminer/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

func (h *toolHandler) handleSnapshotMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if r := request.GetString("ref", ""); r != "" {
		cfg.Ref = r
	}
	if s := request.GetString("side", ""); s != "" {
		cfg.Side = schema.SnapshotSide(s)
	}

	report, err := core.GetSnapshotReport(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("snapshot failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScanIssues(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	activities, err := core.GetIssueActivities(core.WithSuppressHeader(ctx), cfg)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("issue scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(activities, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleMetricCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	model := outwriter.BuildMetricCatalogModel()

	jsonData, _ := json.MarshalIndent(model, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleMiningRuns(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store := h.mgr.GetRunStore()
	if store == nil {
		return mcp.NewToolResultError("run tracking is disabled; start the server with --run-backend to record mining runs"), nil
	}

	runs, err := store.GetAllRuns()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load mining runs: %v", err)), nil
	}

	// Runs arrive ordered by run_id ascending; keep the most recent N.
	if l := request.GetInt("limit", 0); l > 0 && l < len(runs) {
		runs = runs[len(runs)-l:]
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
