package controllers

import (
	"fmt"
	"net/http"
)

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Status int
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

var (
	ErrEmptyMessage = &ValidationError{Status: http.StatusBadRequest, Detail: "Message cannot be empty"}
	ErrMissingToken = &ValidationError{Status: http.StatusUnauthorized, Detail: "Authentication token required"}
)

// UpstreamError wraps any failure of the generation call.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("AI processing error: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
