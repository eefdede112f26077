package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/danielcamposramos/PyCodeOptimizer/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"code_optimize": {
		def:     optimizeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleOptimize },
	},
	"code_dual_versions": {
		def:     dualVersionsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleDualVersions },
	},
	"run_fetch": {
		def:     runFetchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRunFetch },
	},
	"run_list": {
		def:     runListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRunList },
	},
	"run_delete": {
		def:     runDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRunDelete },
	},
	"run_purge": {
		def:     runPurgeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRunPurge },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with PyCodeOptimizer tools registered.
// Tools listed in env.Cfg.DisabledTools are excluded from registration.
func NewServer(env *ops.Env, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"pyopt",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(env)

	disabled := make(map[string]bool)
	for _, name := range env.Cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(env *ops.Env, version string) error {
	s := NewServer(env, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)
