package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are written for MCP clients that have
// never seen this server; keep them self-contained.

var optimizeToolDef = mcp.NewTool("code_optimize",
	mcp.WithDescription("Compact Python source into a machine-readable (MR) form: comments removed, layout normalized, whitespace collapsed. The result is validated as parseable Python before it is returned. Nothing is persisted."),
	mcp.WithString("source",
		mcp.Required(),
		mcp.Description("Python source text to compact"),
	),
)

var dualVersionsToolDef = mcp.NewTool("code_dual_versions",
	mcp.WithDescription("Compact Python source and persist both versions: <module>_hr.py (original, human-readable) and <module>_mr.py (compacted, machine-readable). The MR artifact is executed once in a sandbox to sample its peak memory, and the run is recorded."),
	mcp.WithString("source",
		mcp.Required(),
		mcp.Description("Python source text to compact and persist"),
	),
	mcp.WithString("module_name",
		mcp.Required(),
		mcp.Description("Identifier used to name the artifact files (letters, digits, underscore, dot, hyphen)"),
	),
)

var runFetchToolDef = mcp.NewTool("run_fetch",
	mcp.WithDescription("Fetch a recorded run by id or by source fingerprint (latest match wins). Exactly one of id or fingerprint must be given."),
	mcp.WithString("id",
		mcp.Description("Run ID (ULID)"),
	),
	mcp.WithString("fingerprint",
		mcp.Description("SHA-256 fingerprint of the original source"),
	),
	mcp.WithBoolean("include_text",
		mcp.Description("Include the full HR and MR texts in the response (default: true)"),
	),
)

var runListToolDef = mcp.NewTool("run_list",
	mcp.WithDescription("List recorded runs, newest first. Returns summaries without the stored texts."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum runs to return (default: 20, max: 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Number of runs to skip (default: 0)"),
	),
)

var runDeleteToolDef = mcp.NewTool("run_delete",
	mcp.WithDescription("Delete a recorded run by id, optionally removing its HR and MR artifact files."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Run ID (ULID)"),
	),
	mcp.WithBoolean("remove_artifacts",
		mcp.Description("Also delete the persisted HR and MR files (default: false)"),
	),
)

var runPurgeToolDef = mcp.NewTool("run_purge",
	mcp.WithDescription("Permanently delete recorded runs. With older_than_days, only runs recorded more than that many days ago are removed; without it, all runs are removed. Artifact files are left in place."),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge runs older than this many days"),
	),
)
