package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: netinv_search
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_search",
		Description: "Search the network inventory by free text or hardware identifier (MAC, any separator format, optional SEP prefix). Returns the first page of the full result set; repage with netinv_page. Historical scope is forced on automatically when today's snapshot is missing or empty.",
	}, ToolSearch(d))

	// Tool 2: netinv_page
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_page",
		Description: "Change page or page size over the last fetched result set. Local only, no backend call; out-of-range values are clamped.",
	}, ToolPage(d))

	// Tool 3: netinv_preview
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_preview",
		Description: "Show the leading rows of the current snapshot plus its metadata (date, row count, fallback flag). Served from a 5-minute cache; set force=true after a reindex.",
	}, ToolPreview(d))

	// Tool 4: netinv_refine
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_refine",
		Description: "Narrow the current result set locally by text without re-querying the backend. Terms are ANDed; the last term matches as a prefix.",
	}, ToolRefine(d))

	// Tool 5: netinv_query_results
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_query_results",
		Description: "Extract values from the current result rows with a JQ expression (each row is an object keyed by column name, e.g. '.[\"IP Address\"]'). Supports deduplication and a result cap.",
	}, ToolQueryResults(d))

	// Tool 6: netinv_history
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_history",
		Description: "List the recent hardware-identifier searches (bounded, most recent first) with hit counts and derived location codes.",
	}, ToolHistory(d))

	// Tool 7: netinv_history_remove
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_history_remove",
		Description: "Remove one entry from the search history by hardware identifier.",
	}, ToolHistoryRemove(d))

	// Tool 8: netinv_history_clear
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_history_clear",
		Description: "Clear the entire search history.",
	}, ToolHistoryClear(d))

	// Tool 9: netinv_status
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_status",
		Description: "Report the session state (phase, current term, result counts, last error) and whether the current snapshot is present, missing, or empty.",
	}, ToolStatus(d))

	// Tool 10: netinv_reset
	sdkmcp.AddTool(srv, &sdkmcp.Tool{
		Name:        "netinv_reset",
		Description: "Reset the session to its default state: empty term, no results, page 1.",
	}, ToolReset(d))
}
