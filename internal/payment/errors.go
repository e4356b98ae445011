package payment

import (
	"fmt"
	"net"
	"net/http"
	"strings"
)

func NewPaymentError(errType ErrorType, message string, cause error) *PaymentError {
	return &PaymentError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

func NewStatusError(operation string, statusCode int) *PaymentError {
	err := &PaymentError{
		Message: fmt.Sprintf("%s returned status %d", operation, statusCode),
		Code:    statusCode,
	}

	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		err.Type = ErrUnauthorized
	case statusCode == http.StatusPaymentRequired || statusCode == http.StatusUnprocessableEntity:
		err.Type = ErrDeclined
	case statusCode >= 500:
		err.Type = ErrUnavailable
	default:
		err.Type = ErrBadResponse
	}

	return err
}

func ClassifyError(err error) *PaymentError {
	if err == nil {
		return nil
	}

	if paymentErr, ok := err.(*PaymentError); ok {
		return paymentErr
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded"):
		return NewPaymentError(ErrTimeout, fmt.Sprintf("payment request timed out after %v", DefaultTimeout), nil)
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "no such host"):
		return NewPaymentError(ErrNetwork, "connection failed", err)
	default:
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return NewPaymentError(ErrTimeout, fmt.Sprintf("payment request timed out after %v", DefaultTimeout), nil)
		}
		return NewPaymentError(ErrNetwork, "unknown network error", err)
	}
}

func (e *PaymentError) IsRetryable() bool {
	switch e.Type {
	case ErrNetwork, ErrUnavailable, ErrTimeout:
		return true
	default:
		return false
	}
}

func (e *PaymentError) UserMessage() string {
	switch e.Type {
	case ErrNetwork:
		return "Network connection failed. Please check your internet connection."
	case ErrUnavailable:
		return "The payment service is temporarily unavailable."
	case ErrUnauthorized:
		return "Your session is not authorized. Please check your API token."
	case ErrDeclined:
		return "The payment was declined."
	case ErrTimeout:
		return "Payment request timed out. Please try again."
	default:
		return "An unexpected payment error occurred."
	}
}
