// Package types defines the shared data shapes for the netinv search console.
package types

// Row is a single inventory record keyed by column name.
// Every key is expected to be a member of the owning ResultSet's Headers.
type Row map[string]any

// ResultSet is the full, unpaginated response of one backend query.
type ResultSet struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Headers []string `json:"headers"`
	Data    []Row    `json:"data"`
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.Data)
}

// HeaderSet returns the header names as a set for membership checks.
func (rs *ResultSet) HeaderSet() map[string]struct{} {
	set := make(map[string]struct{}, len(rs.Headers))
	for _, h := range rs.Headers {
		set[h] = struct{}{}
	}
	return set
}

// PaginationState describes client-side pagination over a fetched result set.
// TotalPages is always ceil(TotalItems/PageSize) and Page is always within
// [1, max(TotalPages,1)]; mutate only through session.SetPage/SetPageSize.
type PaginationState struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// PageView is the derived visible slice of a result set plus its display
// summary. Deriving it is pure: same inputs, same view.
type PageView struct {
	Headers    []string `json:"headers"`
	Rows       []Row    `json:"rows"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalItems int      `json:"total_items"`
	TotalPages int      `json:"total_pages"`
	Start      int      `json:"start"` // 1-based index of the first visible row, 0 when empty
	End        int      `json:"end"`   // 1-based index of the last visible row, 0 when empty
}
