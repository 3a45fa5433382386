package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// SearchInput is the input for netinv_search.
type SearchInput struct {
	Query             string `json:"query" jsonschema:"required,Free text or hardware identifier to search for"`
	IncludeHistorical bool   `json:"include_historical,omitempty" jsonschema:"Also search older snapshot files (forced on when today's snapshot is missing or empty)"`
}

// SearchOutput is the result of netinv_search.
type SearchOutput struct {
	Query  string         `json:"query"`
	Notice string         `json:"notice,omitempty"`
	View   types.PageView `json:"view"`
}

// ToolSearch runs an explicit search-now against the inventory backend and
// returns the first page of the fetched result set.
func ToolSearch(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input SearchInput) (*sdkmcp.CallToolResult, SearchOutput, error) {
		if input.Query == "" {
			return nil, SearchOutput{}, ErrInvalidInput("query is required")
		}

		d.Console.SetIncludeHistorical(input.IncludeHistorical)
		outcome := d.Console.Search(ctx, input.Query)
		if outcome.Err != nil {
			return nil, SearchOutput{}, WrapSearchError(outcome.Err)
		}

		return nil, SearchOutput{
			Query:  outcome.Query,
			Notice: outcome.Notice,
			View:   outcome.View,
		}, nil
	}
}

// PageInput is the input for netinv_page. Zero values leave a field unchanged.
type PageInput struct {
	Page     int `json:"page,omitempty" jsonschema:"Page number to show (clamped into range)"`
	PageSize int `json:"page_size,omitempty" jsonschema:"Rows per page, 10-500 (clamped into range)"`
}

// PageOutput is the result of netinv_page.
type PageOutput struct {
	View types.PageView `json:"view"`
}

// ToolPage repages the already-fetched result set. Purely local: no backend
// call, out-of-range values are clamped rather than rejected.
func ToolPage(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input PageInput) (*sdkmcp.CallToolResult, PageOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input PageInput) (*sdkmcp.CallToolResult, PageOutput, error) {
		view := d.Console.View()
		if input.PageSize != 0 {
			view = d.Console.SetPageSize(input.PageSize)
		}
		if input.Page != 0 {
			view = d.Console.SetPage(input.Page)
		}
		return nil, PageOutput{View: view}, nil
	}
}

// StatusOutput is the result of netinv_status.
type StatusOutput struct {
	Phase             string `json:"phase"`
	Term              string `json:"term,omitempty"`
	LastQuery         string `json:"last_query,omitempty"`
	IncludeHistorical bool   `json:"include_historical"`
	HasSearched       bool   `json:"has_searched"`
	TotalItems        int    `json:"total_items"`
	Notice            string `json:"notice,omitempty"`
	Error             string `json:"error,omitempty"`
	ErrorKind         string `json:"error_kind,omitempty"`
	Snapshot          string `json:"snapshot"` // present, missing, or empty
}

// ToolStatus reports the session summary and snapshot availability.
func ToolStatus(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, StatusOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, StatusOutput, error) {
		st := d.Console.Status()
		out := StatusOutput{
			Phase:             st.Phase,
			Term:              st.Term,
			LastQuery:         st.LastQuery,
			IncludeHistorical: st.IncludeHistorical,
			HasSearched:       st.HasSearched,
			TotalItems:        st.TotalItems,
			Notice:            st.Notice,
			Error:             st.Error,
			ErrorKind:         st.ErrorKind,
			Snapshot:          d.Preview.Availability(ctx).String(),
		}
		return nil, out, nil
	}
}

// ResetOutput is the result of netinv_reset.
type ResetOutput struct {
	Phase string `json:"phase"`
}

// ToolReset restores the default session state, as when navigating home.
func ToolReset(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, ResetOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, ResetOutput, error) {
		d.Console.Reset()
		return nil, ResetOutput{Phase: d.Console.Status().Phase}, nil
	}
}
