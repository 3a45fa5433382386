package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/usestring/netinv-mcp/pkg/types"
)

// Search runs a free-text query against the inventory and returns the full,
// unpaginated result set. The query should already be cleaned (no whitespace);
// pagination over the result is a client concern.
func (c *Client) Search(ctx context.Context, query string, scope Scope) (*types.ResultSet, error) {
	var rs types.ResultSet
	if err := c.postJSON(ctx, "/api/search", searchRequest{Query: query, Scope: scope}, &rs); err != nil {
		return nil, err
	}
	return &rs, nil
}

// Preview fetches the leading rows of the current snapshot plus its metadata.
func (c *Client) Preview(ctx context.Context, limit int) (*types.PreviewResult, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var pr types.PreviewResult
	if err := c.get(ctx, "/api/preview", q, &pr); err != nil {
		return nil, err
	}
	return &pr, nil
}

// Info fetches the current snapshot metadata without any rows.
func (c *Client) Info(ctx context.Context) (*types.SnapshotInfo, error) {
	var info types.SnapshotInfo
	if err := c.get(ctx, "/api/info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}
