// Package client provides a Go client for the netinv inventory backend API.
//
// The backend exposes three operations: a free-text search over inventory
// snapshots, a preview of the current snapshot's leading rows, and a snapshot
// metadata lookup. All calls are context-aware; callers own timeouts and
// cancellation.
//
// Basic usage:
//
//	c := client.New(client.WithBaseURL("http://inventory:8245"))
//	rs, err := c.Search(ctx, "001A2B3C4D5E", client.ScopeCurrent)
package client
