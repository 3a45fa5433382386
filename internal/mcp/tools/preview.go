package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// PreviewInput is the input for netinv_preview.
type PreviewInput struct {
	Force bool `json:"force,omitempty" jsonschema:"Bypass the cache and fetch fresh data (use after a reindex)"`
}

// PreviewOutput is the result of netinv_preview.
type PreviewOutput struct {
	SnapshotDate string      `json:"snapshot_date"`
	RowCount     int         `json:"row_count"`
	Fallback     bool        `json:"fallback"`
	Availability string      `json:"availability"`
	Headers      []string    `json:"headers"`
	Rows         []types.Row `json:"rows"`
}

// ToolPreview serves the leading rows of the current snapshot, cached behind
// a short TTL so repeated calls cost nothing.
func ToolPreview(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input PreviewInput) (*sdkmcp.CallToolResult, PreviewOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input PreviewInput) (*sdkmcp.CallToolResult, PreviewOutput, error) {
		pr, err := d.Preview.Fetch(ctx, input.Force)
		if err != nil {
			return nil, PreviewOutput{}, &CodedError{Code: ErrCodeBackend, Message: "preview fetch failed", Cause: err}
		}

		info := pr.Info()
		return nil, PreviewOutput{
			SnapshotDate: pr.SnapshotDate,
			RowCount:     pr.RowCount,
			Fallback:     pr.Fallback,
			Availability: types.ClassifySnapshot(&info).String(),
			Headers:      pr.Headers,
			Rows:         pr.Data,
		}, nil
	}
}
