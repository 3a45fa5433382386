package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSendsQueryAndScope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lab04", req.Query)
		assert.Equal(t, ScopeHistorical, req.Scope)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"headers": ["MAC Address", "IP Address"],
			"data": [{"MAC Address": "001A2B3C4D5E", "IP Address": "10.0.0.1"}]
		}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	rs, err := c.Search(context.Background(), "lab04", ScopeHistorical)
	require.NoError(t, err)
	assert.True(t, rs.Success)
	assert.Equal(t, []string{"MAC Address", "IP Address"}, rs.Headers)
	require.Len(t, rs.Data, 1)
	assert.Equal(t, "001A2B3C4D5E", rs.Data[0]["MAC Address"])
}

func TestSearchErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error": "snapshot store unreachable"}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "lab04", ScopeCurrent)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "snapshot store unreachable", apiErr.Message)
	assert.False(t, apiErr.IsGatewayTimeout())
}

func TestSearchGatewayTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
		_, _ = w.Write([]byte(`upstream timed out`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	_, err := c.Search(context.Background(), "lab04", ScopeHistorical)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.IsGatewayTimeout())
	// Non-JSON error bodies come through verbatim.
	assert.Equal(t, "upstream timed out", apiErr.Message)
}

func TestPreviewPassesLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/preview", r.URL.Path)
		assert.Equal(t, "100", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{
			"success": true,
			"headers": ["MAC Address"],
			"data": [],
			"snapshot_date": "2025-06-01",
			"row_count": 4821
		}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	pr, err := c.Preview(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", pr.SnapshotDate)
	assert.Equal(t, 4821, pr.RowCount)
}

func TestInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/info", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true, "snapshot_date": "2025-06-01", "row_count": 4821}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL))
	info, err := c.Info(context.Background())
	require.NoError(t, err)
	assert.True(t, info.Success)
	assert.Equal(t, 4821, info.RowCount)
}

func TestContextCancellationPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(WithBaseURL(srv.URL))
	_, err := c.Search(ctx, "lab04", ScopeCurrent)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/info", r.URL.Path)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL + "/"))
	_, err := c.Info(context.Background())
	assert.NoError(t, err)
}
