package catalog

import (
	"errors"
	"net/http"
	"testing"
)

func TestClassifyErrorNil(t *testing.T) {
	if ClassifyError(nil) != nil {
		t.Error("Expected nil for nil error")
	}
}

func TestClassifyErrorPassesThroughCatalogError(t *testing.T) {
	original := NewCatalogError(ErrUnauthorized, "bad token", nil)

	classified := ClassifyError(original)
	if classified != original {
		t.Error("Expected catalog errors to pass through unchanged")
	}
}

func TestClassifyErrorTimeout(t *testing.T) {
	classified := ClassifyError(errors.New("context deadline exceeded"))

	if classified.Type != ErrTimeout {
		t.Errorf("Expected %s, got %s", ErrTimeout, classified.Type)
	}
}

func TestClassifyErrorConnectionRefused(t *testing.T) {
	classified := ClassifyError(errors.New("dial tcp: connection refused"))

	if classified.Type != ErrNetworkConnection {
		t.Errorf("Expected %s, got %s", ErrNetworkConnection, classified.Type)
	}
}

func TestClassifyErrorRateLimited(t *testing.T) {
	classified := ClassifyError(errors.New("429 too many requests"))

	if classified.Type != ErrRateLimited {
		t.Errorf("Expected %s, got %s", ErrRateLimited, classified.Type)
	}
}

func TestNewStatusError(t *testing.T) {
	tests := []struct {
		status   int
		expected ErrorType
	}{
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrUnauthorized},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusInternalServerError, ErrServiceUnavailable},
		{http.StatusBadGateway, ErrServiceUnavailable},
		{http.StatusBadRequest, ErrBadResponse},
	}

	for _, tt := range tests {
		err := NewStatusError("GET /categories", tt.status)
		if err.Type != tt.expected {
			t.Errorf("Status %d: expected %s, got %s", tt.status, tt.expected, err.Type)
		}
		if err.Code != tt.status {
			t.Errorf("Status %d: expected code to be carried, got %d", tt.status, err.Code)
		}
	}
}

func TestIsRetryable(t *testing.T) {
	retryable := []ErrorType{ErrNetworkConnection, ErrServiceUnavailable, ErrTimeout, ErrRateLimited}
	for _, errType := range retryable {
		err := NewCatalogError(errType, "test", nil)
		if !err.IsRetryable() {
			t.Errorf("Expected %s to be retryable", errType)
		}
	}

	permanent := []ErrorType{ErrUnauthorized, ErrNotFound, ErrBadResponse}
	for _, errType := range permanent {
		err := NewCatalogError(errType, "test", nil)
		if err.IsRetryable() {
			t.Errorf("Expected %s to not be retryable", errType)
		}
	}
}

func TestUserMessageCoversAllTypes(t *testing.T) {
	types := []ErrorType{
		ErrNetworkConnection, ErrServiceUnavailable, ErrUnauthorized,
		ErrNotFound, ErrRateLimited, ErrTimeout, ErrBadResponse,
	}

	for _, errType := range types {
		err := NewCatalogError(errType, "test", nil)
		if err.UserMessage() == "" {
			t.Errorf("Expected non-empty user message for %s", errType)
		}
	}
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("underlying failure")
	err := NewNetworkError("request failed", cause)

	if err.Error() != "request failed: underlying failure" {
		t.Errorf("Unexpected error string: %s", err.Error())
	}
}
