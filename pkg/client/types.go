package client

import (
	"fmt"
	"net/http"
)

// Scope selects which snapshot files a search considers.
type Scope string

const (
	// ScopeCurrent searches only today's snapshot.
	ScopeCurrent Scope = "current"
	// ScopeHistorical widens the search to older snapshot files as well.
	ScopeHistorical Scope = "current+historical"
)

// searchRequest is the wire form of a search call.
type searchRequest struct {
	Query string `json:"query"`
	Scope Scope  `json:"scope"`
}

// errorResponse is the wire form of a backend error payload.
type errorResponse struct {
	Error string `json:"error"`
}

// APIError represents an error response from the netinv API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, e.Message)
}

// IsGatewayTimeout reports whether the error is a gateway-timeout-class
// backend failure, i.e. the server side gave up waiting.
func (e *APIError) IsGatewayTimeout() bool {
	return e.StatusCode == http.StatusGatewayTimeout
}
