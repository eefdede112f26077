package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/errors"
	"github.com/danielcamposramos/PyCodeOptimizer/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env *ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env *ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// OptimizeRequest represents the arguments for code_optimize.
type OptimizeRequest struct {
	Source string `json:"source"`
}

// DualVersionsRequest represents the arguments for code_dual_versions.
type DualVersionsRequest struct {
	Source     string `json:"source"`
	ModuleName string `json:"module_name"`
}

// RunFetchRequest represents the arguments for run_fetch.
type RunFetchRequest struct {
	ID          string `json:"id,omitempty"`
	Fingerprint string `json:"fingerprint,omitempty"`
	IncludeText *bool  `json:"include_text,omitempty"`
}

// RunListRequest represents the arguments for run_list.
type RunListRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// RunDeleteRequest represents the arguments for run_delete.
type RunDeleteRequest struct {
	ID              string `json:"id"`
	RemoveArtifacts bool   `json:"remove_artifacts,omitempty"`
}

// RunPurgeRequest represents the arguments for run_purge.
type RunPurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// Handler implementations

// HandleOptimize handles the code_optimize tool call.
func (h *Handlers) HandleOptimize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[OptimizeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Optimize(ctx, h.env, ops.OptimizeInput{
		Source: input.Source,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDualVersions handles the code_dual_versions tool call.
func (h *Handlers) HandleDualVersions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DualVersionsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DualVersions(ctx, h.env, ops.DualVersionsInput{
		Source:     input.Source,
		ModuleName: input.ModuleName,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRunFetch handles the run_fetch tool call.
func (h *Handlers) HandleRunFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunFetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Fetch(h.env, ops.FetchInput{
		ID:          input.ID,
		Fingerprint: input.Fingerprint,
		IncludeText: input.IncludeText,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRunList handles the run_list tool call.
func (h *Handlers) HandleRunList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunListRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.List(h.env, ops.ListInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRunDelete handles the run_delete tool call.
func (h *Handlers) HandleRunDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunDeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Delete(h.env, ops.DeleteInput{
		ID:              input.ID,
		RemoveArtifacts: input.RemoveArtifacts,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleRunPurge handles the run_purge tool call.
func (h *Handlers) HandleRunPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RunPurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(h.env, ops.PurgeInput{
		OlderThanDays: input.OlderThanDays,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if optErr, ok := err.(*errors.OptError); ok {
		errorObj := map[string]any{
			"code":    optErr.Code,
			"message": optErr.Message,
			"status":  optErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or SQL errors
		if optErr.Code != errors.ErrInternal && optErr.Details != nil {
			errorObj["details"] = optErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
