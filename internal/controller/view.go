package controller

import (
	"errors"

	"github.com/usestring/netinv-mcp/internal/refine"
	"github.com/usestring/netinv-mcp/internal/session"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// ErrNoResults is returned by operations that need a fetched result set
// when none is present.
var ErrNoResults = errors.New("no result set to operate on")

// Outcome is the settled result of one explicit search.
type Outcome struct {
	Query  string         `json:"query"`            // cleaned term the request carried
	Notice string         `json:"notice,omitempty"` // informational message, never an error
	Err    *SearchError   `json:"-"`
	Phase  string         `json:"phase"`
	View   types.PageView `json:"view"`
}

// Status summarizes the session for status displays.
type Status struct {
	Phase             string `json:"phase"`
	Term              string `json:"term"`
	LastQuery         string `json:"last_query,omitempty"`
	IncludeHistorical bool   `json:"include_historical"`
	HasSearched       bool   `json:"has_searched"`
	TotalItems        int    `json:"total_items"`
	Notice            string `json:"notice,omitempty"`
	Error             string `json:"error,omitempty"`
	ErrorKind         string `json:"error_kind,omitempty"`
}

// outcomeLocked snapshots the current outcome. Caller holds the lock.
func (c *Controller) outcomeLocked(cleaned string) *Outcome {
	return &Outcome{
		Query:  cleaned,
		Notice: c.notice,
		Err:    c.lastErr,
		Phase:  c.phase.String(),
		View:   c.state.View(),
	}
}

// View derives the current visible page. Pure read.
func (c *Controller) View() types.PageView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.View()
}

// Status reports the session summary.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Status{
		Phase:             c.phase.String(),
		Term:              c.state.Term,
		LastQuery:         c.state.LastQuery,
		IncludeHistorical: c.state.IncludeHistorical,
		HasSearched:       c.state.HasSearched,
		TotalItems:        c.state.Pagination.TotalItems,
		Notice:            c.notice,
	}
	if c.lastErr != nil {
		s.Error = c.lastErr.Message
		s.ErrorKind = c.lastErr.Kind.String()
	}
	return s
}

// SetPage clamps and applies a page change, returning the new view.
func (c *Controller) SetPage(page int) types.PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetPage(page)
	session.Save(c.kv, c.state)
	return c.state.View()
}

// SetPageSize clamps and applies a page-size change, returning the new view.
func (c *Controller) SetPageSize(size int) types.PageView {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SetPageSize(size)
	session.Save(c.kv, c.state)
	return c.state.View()
}

// SetIncludeHistorical flips the user's historical-scope toggle. It affects
// the next issued request; availability signals may still force it on.
func (c *Controller) SetIncludeHistorical(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.IncludeHistorical = v
	session.Save(c.kv, c.state)
}

// Reset restores the default session state, as when navigating home.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopTimerLocked()
	if c.inflightCancel != nil {
		c.inflightCancel()
		c.inflightCancel = nil
	}
	c.seq++ // orphan any in-flight resolution
	c.state = session.Default(c.cfg.DefaultPageSize)
	c.index = nil
	c.lastIssued = ""
	c.lastErr = nil
	c.notice = ""
	c.phase = PhaseIdle
	session.Save(c.kv, c.state)
}

// Rows returns the current raw result rows, or ErrNoResults.
func (c *Controller) Rows() ([]types.Row, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.RawResults == nil {
		return nil, nil, ErrNoResults
	}
	return c.state.RawResults.Data, c.state.RawResults.Headers, nil
}

// Refine narrows the current result set locally using the token index,
// without any backend call. Row order is preserved.
func (c *Controller) Refine(text string) ([]types.Row, []string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.RawResults == nil || c.index == nil {
		return nil, nil, ErrNoResults
	}
	positions := c.index.Refine(text)
	return refine.Select(c.state.RawResults, positions), c.state.RawResults.Headers, nil
}
