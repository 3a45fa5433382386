package tools

import (
	"fmt"

	"github.com/usestring/netinv-mcp/internal/controller"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeBackend      = "BACKEND_ERROR"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// WrapSearchError converts a classified search failure to a coded error.
func WrapSearchError(serr *controller.SearchError) error {
	if serr == nil {
		return nil
	}
	switch serr.Kind {
	case controller.KindValidation:
		return &CodedError{Code: ErrCodeInvalidInput, Message: serr.Message, Cause: serr}
	case controller.KindClientTimeout, controller.KindServerTimeout:
		return &CodedError{Code: ErrCodeTimeout, Message: serr.Message, Cause: serr}
	default:
		return &CodedError{Code: ErrCodeBackend, Message: serr.Message, Cause: serr}
	}
}
