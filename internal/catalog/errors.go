package catalog

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

func NewCatalogError(errType ErrorType, message string, cause error) *CatalogError {
	return &CatalogError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewNetworkError(message string, cause error) *CatalogError {
	return NewCatalogError(ErrNetworkConnection, message, cause)
}

func NewTimeoutError(operation string, timeout time.Duration) *CatalogError {
	return NewCatalogError(ErrTimeout,
		fmt.Sprintf("operation %s timed out after %v", operation, timeout), nil)
}

func NewRateLimitedError(retryAfter time.Duration) *CatalogError {
	return NewCatalogError(ErrRateLimited,
		fmt.Sprintf("rate limited, retry after %v", retryAfter), nil)
}

func NewStatusError(operation string, statusCode int) *CatalogError {
	err := &CatalogError{
		Message: fmt.Sprintf("%s returned status %d", operation, statusCode),
		Code:    statusCode,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		err.Type = ErrUnauthorized
	case statusCode == http.StatusNotFound:
		err.Type = ErrNotFound
	case statusCode == http.StatusTooManyRequests:
		err.Type = ErrRateLimited
	case statusCode >= 500:
		err.Type = ErrServiceUnavailable
	default:
		err.Type = ErrBadResponse
	}

	return err
}

func ClassifyError(err error) *CatalogError {
	if err == nil {
		return nil
	}

	if catalogErr, ok := err.(*CatalogError); ok {
		return catalogErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewTimeoutError("catalog request", 30*time.Second)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewNetworkError("connection failed", err)
	case strings.Contains(errStr, "rate limit") || strings.Contains(errStr, "too many requests"):
		return NewRateLimitedError(time.Minute)
	default:
		if netErr, ok := err.(net.Error); ok {
			if netErr.Timeout() {
				return NewTimeoutError("catalog request", 30*time.Second)
			}
		}
		return NewNetworkError("unknown network error", err)
	}
}

func (e *CatalogError) IsRetryable() bool {
	switch e.Type {
	case ErrNetworkConnection, ErrServiceUnavailable, ErrTimeout, ErrRateLimited:
		return true
	default:
		return false
	}
}

func (e *CatalogError) UserMessage() string {
	switch e.Type {
	case ErrNetworkConnection:
		return "Network connection failed. Please check your internet connection."
	case ErrServiceUnavailable:
		return "The billing service is temporarily unavailable."
	case ErrUnauthorized:
		return "Your session is not authorized. Please check your API token."
	case ErrNotFound:
		return "The requested service could not be found."
	case ErrRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case ErrTimeout:
		return "Request timed out. Please try again."
	default:
		return "An unexpected error occurred."
	}
}
