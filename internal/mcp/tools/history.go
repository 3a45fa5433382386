package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/netinv-mcp/internal/normalize"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// HistoryOutput is the result of netinv_history.
type HistoryOutput struct {
	Entries []types.HistoryEntry `json:"entries"`
}

// ToolHistory lists the recent hardware-identifier searches, newest first.
func ToolHistory(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, HistoryOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, HistoryOutput, error) {
		return nil, HistoryOutput{Entries: d.History.List()}, nil
	}
}

// HistoryRemoveInput is the input for netinv_history_remove.
type HistoryRemoveInput struct {
	MAC string `json:"mac" jsonschema:"required,Hardware identifier to remove (any separator format)"`
}

// HistoryMutationOutput is the result of the history mutation tools.
type HistoryMutationOutput struct {
	Entries []types.HistoryEntry `json:"entries"`
}

// ToolHistoryRemove deletes one history entry.
func ToolHistoryRemove(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input HistoryRemoveInput) (*sdkmcp.CallToolResult, HistoryMutationOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input HistoryRemoveInput) (*sdkmcp.CallToolResult, HistoryMutationOutput, error) {
		mac, ok := normalize.CanonicalMAC(input.MAC)
		if !ok {
			return nil, HistoryMutationOutput{}, ErrInvalidInput("mac must reduce to 12 hex digits")
		}
		d.History.Remove(mac)
		return nil, HistoryMutationOutput{Entries: d.History.List()}, nil
	}
}

// ToolHistoryClear empties the history list.
func ToolHistoryClear(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, HistoryMutationOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input struct{}) (*sdkmcp.CallToolResult, HistoryMutationOutput, error) {
		d.History.Clear()
		return nil, HistoryMutationOutput{Entries: d.History.List()}, nil
	}
}
