package payment

import (
	"time"
)

type Environment string

const (
	Live    Environment = "live"
	Sandbox Environment = "sandbox"
)

type Config struct {
	Environment Environment
	BaseURL     string
	APIToken    string
	Timeout     time.Duration
	RetryCount  int
	RetryDelay  time.Duration
}

// PurchaseRequest carries the projected form values plus the selection
// identifiers for one bill-payment submission. Fields holds only the keys
// relevant to the category; projection happens before this type is built.
type PurchaseRequest struct {
	Reference  string            `json:"reference"`
	CategoryID string            `json:"category_id"`
	ProviderID string            `json:"provider_id,omitempty"`
	ProductID  string            `json:"product_id,omitempty"`
	Amount     string            `json:"amount,omitempty"`
	Fields     map[string]string `json:"fields"`
}

type PurchaseReceipt struct {
	Reference   string    `json:"reference"`
	Status      string    `json:"status"`
	ProductName string    `json:"product_name,omitempty"`
	Amount      string    `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// FundingHandle is returned by the gateway when a top-up is initialized.
type FundingHandle struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url,omitempty"`
	AccessCode       string `json:"access_code,omitempty"`
}

type VerificationStatus string

const (
	VerificationPending VerificationStatus = "pending"
	VerificationSuccess VerificationStatus = "success"
	VerificationFailed  VerificationStatus = "failed"
)

type VerificationResult struct {
	Reference string             `json:"reference"`
	Status    VerificationStatus `json:"status"`
	Details   string             `json:"details,omitempty"`
}

type WalletBalance struct {
	Amount    float64   `json:"amount"`
	Currency  string    `json:"currency"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ErrorType string

const (
	ErrNetwork      ErrorType = "network"
	ErrUnavailable  ErrorType = "unavailable"
	ErrUnauthorized ErrorType = "unauthorized"
	ErrDeclined     ErrorType = "declined"
	ErrTimeout      ErrorType = "timeout"
	ErrBadResponse  ErrorType = "bad_response"
)

type PaymentError struct {
	Type    ErrorType
	Message string
	Code    int
	Cause   error
}

func (e *PaymentError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
