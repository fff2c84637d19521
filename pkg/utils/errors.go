package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// CustomError represents an error that carries the HTTP status it should surface as
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
	Err     error  `json:"-"`
}

func (e *CustomError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// AsCustomError reports whether err wraps a CustomError and returns it
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Common error constructors

// NewValidationError is used for malformed client input such as a missing field or an unknown mode
func NewValidationError(detail string, err error) *CustomError {
	return &CustomError{
		Code:    http.StatusUnprocessableEntity,
		Message: "Validation failed",
		Detail:  detail,
		Err:     err,
	}
}

func NewInternalServerError(message string) *CustomError {
	return &CustomError{
		Code:    http.StatusInternalServerError,
		Message: message,
	}
}

// NewLLMError wraps a transport-level failure from the completion service
func NewLLMError(provider string, err error) *CustomError {
	return &CustomError{
		Code:    http.StatusBadGateway,
		Message: "LLM processing failed",
		Detail:  fmt.Sprintf("%s: %v", provider, err),
		Err:     err,
	}
}
