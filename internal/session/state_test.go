package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/netinv-mcp/internal/store"
	"github.com/usestring/netinv-mcp/pkg/types"
)

// makeResults builds a result set with n sequentially numbered rows.
func makeResults(n int) *types.ResultSet {
	rs := &types.ResultSet{
		Success: true,
		Headers: []string{"MAC Address", "IP Address"},
	}
	for i := 0; i < n; i++ {
		rs.Data = append(rs.Data, types.Row{
			"MAC Address": "001A2B3C4D5E",
			"IP Address":  "10.0.0.1",
		})
	}
	return rs
}

func TestApplyResultsRecomputesPagination(t *testing.T) {
	st := Default(100)
	st.ApplyResults("query", makeResults(150))

	assert.True(t, st.HasSearched)
	assert.Equal(t, "query", st.LastQuery)
	assert.Equal(t, 150, st.Pagination.TotalItems)
	assert.Equal(t, 2, st.Pagination.TotalPages)
	assert.Equal(t, 1, st.Pagination.Page)
}

func TestViewSecondPageSummary(t *testing.T) {
	st := Default(100)
	st.ApplyResults("query", makeResults(150))
	st.SetPage(2)

	v := st.View()
	assert.Equal(t, 2, v.Page)
	assert.Equal(t, 101, v.Start)
	assert.Equal(t, 150, v.End)
	assert.Len(t, v.Rows, 50)
	assert.Equal(t, 2, v.TotalPages)
}

func TestViewIsPure(t *testing.T) {
	st := Default(50)
	st.ApplyResults("query", makeResults(120))
	st.SetPage(3)

	first := st.View()
	second := st.View()
	assert.Equal(t, first, second)
	assert.Equal(t, 3, st.Pagination.Page)
}

func TestSetPageClampingIsTotal(t *testing.T) {
	tests := []struct {
		name     string
		items    int
		pageSize int
		setPage  int
		want     int
	}{
		{"negative page", 150, 100, -5, 1},
		{"zero page", 150, 100, 0, 1},
		{"beyond last", 150, 100, 99, 2},
		{"valid", 150, 100, 2, 2},
		{"no results", 0, 100, 7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Default(tt.pageSize)
			if tt.items > 0 {
				st.ApplyResults("q", makeResults(tt.items))
			}
			st.SetPage(tt.setPage)
			assert.Equal(t, tt.want, st.Pagination.Page)
		})
	}
}

func TestSetPageSizeClampsAndReclamps(t *testing.T) {
	st := Default(10)
	st.ApplyResults("q", makeResults(100))
	st.SetPage(10) // last page at size 10

	st.SetPageSize(50)
	assert.Equal(t, 50, st.Pagination.PageSize)
	assert.Equal(t, 2, st.Pagination.TotalPages)
	assert.Equal(t, 2, st.Pagination.Page) // re-clamped from 10

	st.SetPageSize(5)
	assert.Equal(t, 10, st.Pagination.PageSize) // clamped to minimum

	st.SetPageSize(9999)
	assert.Equal(t, 500, st.Pagination.PageSize) // clamped to maximum
	assert.Equal(t, 1, st.Pagination.TotalPages)
	assert.Equal(t, 1, st.Pagination.Page)
}

func TestClearResultsZeroesCounts(t *testing.T) {
	st := Default(50)
	st.ApplyResults("q", makeResults(75))
	st.HasSearched = true

	st.ClearResults()
	assert.Nil(t, st.RawResults)
	assert.Equal(t, 0, st.Pagination.TotalItems)
	assert.Equal(t, 0, st.Pagination.TotalPages)
	assert.True(t, st.HasSearched, "surface decides whether to drop the last table")
}

func TestViewEmptyState(t *testing.T) {
	st := Default(50)
	v := st.View()
	assert.Zero(t, v.Start)
	assert.Zero(t, v.End)
	assert.Empty(t, v.Rows)
}

func TestPersistRoundTrip(t *testing.T) {
	kv := store.NewMemStore()

	st := Default(50)
	st.Term = "lab04"
	st.IncludeHistorical = true
	st.ApplyResults("lab04", makeResults(30))
	st.SetPage(1)
	Save(kv, st)

	got := Load(kv, 50)
	require.NotNil(t, got.RawResults)
	assert.Equal(t, "lab04", got.Term)
	assert.True(t, got.IncludeHistorical)
	assert.Equal(t, 30, got.Pagination.TotalItems)
	assert.Equal(t, "lab04", got.LastQuery)
}

func TestLoadCorruptedFallsBackToDefault(t *testing.T) {
	kv := store.NewMemStore()
	kv.SetRaw(StateKey, []byte(`{"pagination": "not-an-object"`))

	got := Load(kv, 50)
	assert.Equal(t, "", got.Term)
	assert.Equal(t, 1, got.Pagination.Page)
	assert.Equal(t, 50, got.Pagination.PageSize)
}

func TestLoadMissingYieldsDefault(t *testing.T) {
	got := Load(store.NewMemStore(), 25)
	assert.Equal(t, 25, got.Pagination.PageSize)
	assert.False(t, got.HasSearched)
}

func TestLoadReclampsPersistedPageSize(t *testing.T) {
	kv := store.NewMemStore()
	require.NoError(t, kv.Set(StateKey, map[string]any{
		"pagination": map[string]any{"page": 0, "page_size": 4},
	}))

	got := Load(kv, 50)
	assert.Equal(t, 10, got.Pagination.PageSize)
	assert.Equal(t, 1, got.Pagination.Page)
}
