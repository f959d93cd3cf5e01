package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError_Error(t *testing.T) {
	err := &NotFoundError{Resource: "article", ID: "abc-123"}

	expected := "article not found: abc-123"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "topic", Message: "cannot be blank"}

	expected := "validation error on field 'topic': cannot be blank"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestUpstreamError_Error(t *testing.T) {
	err := &UpstreamError{Endpoint: "/client/search", StatusCode: 502, Message: "bad gateway"}

	expected := "upstream error from /client/search: 502 - bad gateway"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestUpstreamError_Error_NoStatusCode(t *testing.T) {
	err := &UpstreamError{Endpoint: "/client/search", Message: "connection refused"}

	expected := "upstream error from /client/search: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIsNotFound(t *testing.T) {
	err := &NotFoundError{Resource: "user", ID: "ns"}

	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}

	wrapped := fmt.Errorf("fetch failed: %w", err)
	if !IsNotFound(wrapped) {
		t.Error("IsNotFound should return true for wrapped NotFoundError")
	}

	if IsNotFound(errors.New("plain error")) {
		t.Error("IsNotFound should return false for plain errors")
	}
}

func TestIsValidation(t *testing.T) {
	err := &ValidationError{Field: "limit", Message: "must be positive"}

	if !IsValidation(err) {
		t.Error("IsValidation should return true for ValidationError")
	}

	if IsValidation(&NotFoundError{}) {
		t.Error("IsValidation should return false for other error types")
	}
}

func TestIsUpstream(t *testing.T) {
	err := &UpstreamError{Endpoint: "/client/article/x"}

	if !IsUpstream(err) {
		t.Error("IsUpstream should return true for UpstreamError")
	}

	wrapped := WrapError(err, "article lookup")
	if !IsUpstream(wrapped) {
		t.Error("IsUpstream should return true for wrapped UpstreamError")
	}
}

func TestWrapError_NilError(t *testing.T) {
	if WrapError(nil, "context") != nil {
		t.Error("WrapError should return nil for nil error")
	}
}
