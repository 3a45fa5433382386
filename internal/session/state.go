// Package session holds the per-session search state: the last fetched
// result set, pagination over it, and the derived page view. The state is a
// plain value; the controller serializes access to it.
package session

import (
	"github.com/usestring/netinv-mcp/internal/config"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// State is the single logical search-state record for a browsing session.
//
// RawResults is only ever replaced by a strictly newer request's response;
// the controller's sequence guard enforces that.
type State struct {
	Term              string                `json:"term"`               // last text typed, possibly unsanitized
	IncludeHistorical bool                  `json:"include_historical"` // user toggle; forced on when no usable current snapshot
	HasSearched       bool                  `json:"has_searched"`       // a result set is displayed (vs. initial preview)
	RawResults        *types.ResultSet      `json:"raw_results,omitempty"`
	Pagination        types.PaginationState `json:"pagination"`
	LastQuery         string                `json:"last_query,omitempty"` // exact cleaned term sent for RawResults
}

// Default returns the pristine session state: empty term, no results, page 1.
func Default(pageSize int) *State {
	return &State{
		Pagination: types.PaginationState{
			Page:     1,
			PageSize: clampPageSize(pageSize),
		},
	}
}

// ApplyResults installs a fresh result set for the given cleaned query and
// recomputes pagination from its row count.
func (s *State) ApplyResults(query string, rs *types.ResultSet) {
	s.RawResults = rs
	s.LastQuery = query
	s.HasSearched = true
	s.Pagination.TotalItems = rs.Len()
	s.Pagination.TotalPages = totalPages(s.Pagination.TotalItems, s.Pagination.PageSize)
	s.Pagination.Page = clampPage(s.Pagination.Page, s.Pagination.TotalPages)
}

// ClearResults drops the result set and zeroes the pagination counts, as on
// a failed request. HasSearched is left untouched; the surface decides
// whether to keep showing the last known-good table.
func (s *State) ClearResults() {
	s.RawResults = nil
	s.Pagination.TotalItems = 0
	s.Pagination.TotalPages = 0
	s.Pagination.Page = 1
}

// SetPage clamps p into [1, max(TotalPages,1)]. Clamping is total: any input
// yields a valid page, never an error.
func (s *State) SetPage(p int) {
	s.Pagination.Page = clampPage(p, s.Pagination.TotalPages)
}

// SetPageSize clamps size into the allowed range, recomputes TotalPages from
// the current TotalItems, then re-clamps the page into the new range.
func (s *State) SetPageSize(size int) {
	s.Pagination.PageSize = clampPageSize(size)
	s.Pagination.TotalPages = totalPages(s.Pagination.TotalItems, s.Pagination.PageSize)
	s.Pagination.Page = clampPage(s.Pagination.Page, s.Pagination.TotalPages)
}

// View derives the visible page slice and its display summary. Pure: calling
// it never mutates state or touches the network, so it is safe on every read.
func (s *State) View() types.PageView {
	v := types.PageView{
		Page:       s.Pagination.Page,
		PageSize:   s.Pagination.PageSize,
		TotalItems: s.Pagination.TotalItems,
		TotalPages: s.Pagination.TotalPages,
	}
	if s.RawResults == nil || len(s.RawResults.Data) == 0 {
		return v
	}

	v.Headers = s.RawResults.Headers

	start := (v.Page - 1) * v.PageSize
	end := v.Page * v.PageSize
	if start > len(s.RawResults.Data) {
		start = len(s.RawResults.Data)
	}
	if end > len(s.RawResults.Data) {
		end = len(s.RawResults.Data)
	}
	v.Rows = s.RawResults.Data[start:end]

	if len(v.Rows) > 0 {
		v.Start = start + 1
		v.End = start + len(v.Rows)
	}
	return v
}

func totalPages(items, pageSize int) int {
	if pageSize <= 0 || items <= 0 {
		return 0
	}
	return (items + pageSize - 1) / pageSize
}

func clampPage(p, total int) int {
	max := total
	if max < 1 {
		max = 1
	}
	if p < 1 {
		return 1
	}
	if p > max {
		return max
	}
	return p
}

func clampPageSize(size int) int {
	if size < config.MinPageSize {
		return config.MinPageSize
	}
	if size > config.MaxPageSize {
		return config.MaxPageSize
	}
	return size
}
