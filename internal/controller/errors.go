package controller

import (
	"context"
	"errors"
	"fmt"

	"github.com/usestring/netinv-mcp/pkg/client"
)

// Kind classifies what went wrong with a search.
type Kind int

const (
	// KindValidation means the query never left the client (empty/too short).
	KindValidation Kind = iota
	// KindClientTimeout means the client aborted before the server answered.
	KindClientTimeout
	// KindServerTimeout means the backend reported a gateway-timeout failure.
	KindServerTimeout
	// KindTransport covers every other network or HTTP failure.
	KindTransport
	// KindCanceled means the request was superseded or the session shut
	// down mid-flight. Never user-visible.
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindClientTimeout:
		return "client_timeout"
	case KindServerTimeout:
		return "server_timeout"
	case KindTransport:
		return "transport"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// SearchError is a classified search failure with its user-facing message.
type SearchError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

// User-facing messages per failure class.
const (
	msgClientTimeout = "The search took too long and was stopped. Try a narrower query."
	msgServerTimeout = "The inventory backend timed out while searching. Historical searches can take a while; try again."
	msgNoResults     = "No matching records found."
)

// Classify maps a transport-level error to its failure class.
// The deadline check runs before the cancellation check: an abort driven by
// our own timeout is user-visible, a supersession abort is not.
func Classify(err error) *SearchError {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &SearchError{Kind: KindClientTimeout, Message: msgClientTimeout, Err: err}
	case errors.As(err, &apiErr) && apiErr.IsGatewayTimeout():
		return &SearchError{Kind: KindServerTimeout, Message: msgServerTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &SearchError{Kind: KindCanceled, Message: "search canceled", Err: err}
	case errors.As(err, &apiErr):
		return &SearchError{Kind: KindTransport, Message: "The search could not be completed: " + apiErr.Message, Err: err}
	default:
		return &SearchError{Kind: KindTransport, Message: "The search could not be completed. Check the backend connection.", Err: err}
	}
}
