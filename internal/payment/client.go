package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultLiveURL    = "https://pay.paydesk.africa/v1"
	DefaultSandboxURL = "https://sandbox.pay.paydesk.africa/v1"
	DefaultTimeout    = 30 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = 2 * time.Second
)

// Client talks to the transaction-submission and wallet/payment
// collaborators. Purchase submission and funding initialization are sent
// exactly once; only read-side calls (verify, balance) are retried.
type Client struct {
	httpClient *http.Client
	config     Config
	logger     *zap.Logger
	mu         sync.RWMutex
}

func NewClient(config Config, logger *zap.Logger) (*Client, error) {
	if config.BaseURL == "" {
		switch config.Environment {
		case Live:
			config.BaseURL = DefaultLiveURL
		case Sandbox:
			config.BaseURL = DefaultSandboxURL
		default:
			return nil, fmt.Errorf("unknown environment: %s", config.Environment)
		}
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.RetryCount == 0 {
		config.RetryCount = DefaultRetryCount
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = DefaultRetryDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{Timeout: config.Timeout},
		config:     config,
		logger:     logger,
	}, nil
}

// SubmitPurchase sends one bill-payment submission. It is never retried
// automatically; the reference makes an explicit user retry idempotent on
// the server side.
func (c *Client) SubmitPurchase(ctx context.Context, req PurchaseRequest) (*PurchaseReceipt, error) {
	if req.Reference == "" {
		return nil, NewPaymentError(ErrBadResponse, "purchase reference is required", nil)
	}

	var receipt PurchaseReceipt
	if err := c.post(ctx, "/transactions", req, &receipt); err != nil {
		return nil, err
	}

	c.logger.Info("purchase submitted",
		zap.String("reference", receipt.Reference),
		zap.String("status", receipt.Status))

	return &receipt, nil
}

// InitializeFunding registers a wallet top-up with the gateway and returns
// the handle the user completes payment against.
func (c *Client) InitializeFunding(ctx context.Context, amount, reference string) (*FundingHandle, error) {
	if reference == "" {
		return nil, NewPaymentError(ErrBadResponse, "funding reference is required", nil)
	}

	body := map[string]string{
		"amount":    amount,
		"reference": reference,
	}

	var handle FundingHandle
	if err := c.post(ctx, "/wallet/funding/initialize", body, &handle); err != nil {
		return nil, err
	}

	return &handle, nil
}

// VerifyFunding asks the gateway for the current state of a top-up. A
// pending result is normal while the user completes payment; callers poll.
func (c *Client) VerifyFunding(ctx context.Context, reference string) (*VerificationResult, error) {
	query := url.Values{"reference": {reference}}

	var result VerificationResult
	if err := c.getWithRetry(ctx, "/wallet/funding/verify", query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetBalance returns the current wallet balance.
func (c *Client) GetBalance(ctx context.Context) (*WalletBalance, error) {
	var balance WalletBalance
	if err := c.getWithRetry(ctx, "/wallet/balance", nil, &balance); err != nil {
		return nil, err
	}

	return &balance, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return NewPaymentError(ErrBadResponse, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return NewPaymentError(ErrNetwork, "failed to build request", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, path, out)
}

func (c *Client) getWithRetry(ctx context.Context, path string, query url.Values, out interface{}) error {
	var lastErr error

	for attempt := 0; attempt < c.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ClassifyError(ctx.Err())
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
		}

		err := c.get(ctx, path, query, out)
		if err == nil {
			return nil
		}

		lastErr = err
		paymentErr := ClassifyError(err)
		if paymentErr != nil && !paymentErr.IsRetryable() {
			break
		}

		c.logger.Warn("payment request failed, retrying",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}

	return ClassifyError(lastErr)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := c.config.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return NewPaymentError(ErrNetwork, "failed to build request", err)
	}
	c.setHeaders(req)

	return c.do(req, path, out)
}

// SetAPIToken replaces the bearer token, for credentials unsealed after
// the client is constructed.
func (c *Client) SetAPIToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.config.APIToken = token
}

func (c *Client) apiToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.config.APIToken
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if token := c.apiToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ClassifyError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		io.Copy(io.Discard, resp.Body)
		return NewStatusError(req.Method+" "+path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewPaymentError(ErrBadResponse, "failed to decode response", err)
	}

	return nil
}
