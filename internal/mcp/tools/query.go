package tools

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/netinv-mcp/internal/controller"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// maxQueryResults caps jq extraction output regardless of the requested limit.
const maxQueryResults = 1000

// QueryResultsInput is the input for netinv_query_results.
type QueryResultsInput struct {
	Expression  string `json:"expression" jsonschema:"required,JQ expression evaluated against each result row (rows are objects keyed by column name)"`
	Deduplicate bool   `json:"deduplicate,omitempty" jsonschema:"Remove duplicate values (default: false)"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"Max values to return (default: 1000)"`
}

// QueryResultsOutput is the result of netinv_query_results.
type QueryResultsOutput struct {
	Values   []any    `json:"values"`
	Errors   []string `json:"errors,omitempty"`
	RawCount int      `json:"raw_count"`
}

// ToolQueryResults extracts values from the current result rows with a JQ
// expression. Operates on the cached result set only; never hits the backend.
func ToolQueryResults(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultsInput) (*sdkmcp.CallToolResult, QueryResultsOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input QueryResultsInput) (*sdkmcp.CallToolResult, QueryResultsOutput, error) {
		if input.Expression == "" {
			return nil, QueryResultsOutput{}, ErrInvalidInput("expression is required")
		}
		if err := d.Query.ValidateExpression(input.Expression); err != nil {
			return nil, QueryResultsOutput{}, ErrInvalidInput(err.Error())
		}

		rows, _, err := d.Console.Rows()
		if err != nil {
			if errors.Is(err, controller.ErrNoResults) {
				return nil, QueryResultsOutput{}, &CodedError{Code: ErrCodeNotFound, Message: "no result set loaded; run netinv_search first"}
			}
			return nil, QueryResultsOutput{}, err
		}

		max := input.MaxResults
		if max <= 0 || max > maxQueryResults {
			max = maxQueryResults
		}

		res, err := d.Query.Run(rows, input.Expression, input.Deduplicate, max)
		if err != nil {
			return nil, QueryResultsOutput{}, ErrInvalidInput(err.Error())
		}

		return nil, QueryResultsOutput{
			Values:   res.Values,
			Errors:   res.Errors,
			RawCount: res.RawCount,
		}, nil
	}
}

// RefineInput is the input for netinv_refine.
type RefineInput struct {
	Text  string `json:"text" jsonschema:"required,Text to narrow the current results by (terms ANDed, last term matches as prefix)"`
	Limit int    `json:"limit,omitempty" jsonschema:"Max rows to return (default: current page size)"`
}

// RefineOutput is the result of netinv_refine.
type RefineOutput struct {
	Headers    []string    `json:"headers"`
	Rows       []types.Row `json:"rows"`
	TotalMatch int         `json:"total_match"`
}

// ToolRefine narrows the current result set locally through the token index.
// Row order is preserved; nothing touches the backend.
func ToolRefine(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefineInput) (*sdkmcp.CallToolResult, RefineOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input RefineInput) (*sdkmcp.CallToolResult, RefineOutput, error) {
		rows, headers, err := d.Console.Refine(input.Text)
		if err != nil {
			if errors.Is(err, controller.ErrNoResults) {
				return nil, RefineOutput{}, &CodedError{Code: ErrCodeNotFound, Message: "no result set loaded; run netinv_search first"}
			}
			return nil, RefineOutput{}, err
		}

		limit := input.Limit
		if limit <= 0 {
			limit = d.Console.View().PageSize
		}
		total := len(rows)
		if len(rows) > limit {
			rows = rows[:limit]
		}

		return nil, RefineOutput{
			Headers:    headers,
			Rows:       rows,
			TotalMatch: total,
		}, nil
	}
}
