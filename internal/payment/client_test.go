package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		BaseURL:    server.URL,
		APIToken:   "test-token",
		Timeout:    2 * time.Second,
		RetryCount: 2,
		RetryDelay: time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	return client
}

func TestNewClientDefaultsURLByEnvironment(t *testing.T) {
	live, err := NewClient(Config{Environment: Live}, nil)
	if err != nil {
		t.Fatalf("Failed to create live client: %v", err)
	}
	if live.config.BaseURL != DefaultLiveURL {
		t.Errorf("Expected live default URL, got %s", live.config.BaseURL)
	}

	sandbox, err := NewClient(Config{Environment: Sandbox}, nil)
	if err != nil {
		t.Fatalf("Failed to create sandbox client: %v", err)
	}
	if sandbox.config.BaseURL != DefaultSandboxURL {
		t.Errorf("Expected sandbox default URL, got %s", sandbox.config.BaseURL)
	}

	if _, err := NewClient(Config{Environment: "staging"}, nil); err == nil {
		t.Error("Expected error for unknown environment with no base URL")
	}
}

func TestNewClientExplicitURLWins(t *testing.T) {
	client, err := NewClient(Config{Environment: Sandbox, BaseURL: "http://localhost:9999"}, nil)
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}
	if client.config.BaseURL != "http://localhost:9999" {
		t.Errorf("Explicit base URL must not be overridden, got %s", client.config.BaseURL)
	}
}

func TestSubmitPurchase(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transactions" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}

		var req PurchaseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Fields["phone"] != "08012345678" {
			t.Errorf("Expected projected fields in payload, got %+v", req.Fields)
		}
		if _, ok := req.Fields["smartCardNumber"]; ok {
			t.Error("Payload must not carry keys from other categories")
		}

		json.NewEncoder(w).Encode(PurchaseReceipt{
			Reference: req.Reference,
			Status:    "processing",
			Amount:    "500",
			CreatedAt: time.Now(),
		})
	}))

	receipt, err := client.SubmitPurchase(context.Background(), PurchaseRequest{
		Reference:  "ref-123",
		CategoryID: "cat-air",
		ProviderID: "p-1",
		Amount:     "500",
		Fields:     map[string]string{"provider": "mtn", "phone": "08012345678", "amount": "500"},
	})
	if err != nil {
		t.Fatalf("SubmitPurchase failed: %v", err)
	}

	if receipt.Reference != "ref-123" {
		t.Errorf("Expected reference echoed, got %s", receipt.Reference)
	}
}

func TestSubmitPurchaseRequiresReference(t *testing.T) {
	client := newTestClient(t, http.NotFoundHandler())

	_, err := client.SubmitPurchase(context.Background(), PurchaseRequest{})
	if err == nil {
		t.Fatal("Expected error for missing reference")
	}
}

func TestSubmitPurchaseIsNotRetried(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	if _, err := client.SubmitPurchase(context.Background(), PurchaseRequest{Reference: "ref-1"}); err == nil {
		t.Fatal("Expected server error")
	}

	if calls != 1 {
		t.Errorf("Purchase submission must not be silently retried, got %d calls", calls)
	}
}

func TestInitializeFunding(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wallet/funding/initialize" {
			http.NotFound(w, r)
			return
		}

		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["amount"] != "5000" || body["reference"] == "" {
			t.Errorf("Unexpected initialize payload: %+v", body)
		}

		json.NewEncoder(w).Encode(FundingHandle{
			Reference:  body["reference"],
			AccessCode: "AC-1",
		})
	}))

	handle, err := client.InitializeFunding(context.Background(), "5000", "fund-ref-1")
	if err != nil {
		t.Fatalf("InitializeFunding failed: %v", err)
	}
	if handle.Reference != "fund-ref-1" {
		t.Errorf("Expected reference echoed, got %s", handle.Reference)
	}
}

func TestVerifyFundingStatuses(t *testing.T) {
	statuses := []VerificationStatus{VerificationPending, VerificationSuccess, VerificationFailed}

	for _, status := range statuses {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("reference"); got != "fund-ref-1" {
				t.Errorf("Expected reference query, got %q", got)
			}
			json.NewEncoder(w).Encode(VerificationResult{Reference: "fund-ref-1", Status: status})
		}))

		result, err := client.VerifyFunding(context.Background(), "fund-ref-1")
		if err != nil {
			t.Fatalf("VerifyFunding failed for %s: %v", status, err)
		}
		if result.Status != status {
			t.Errorf("Expected status %s, got %s", status, result.Status)
		}
	}
}

func TestVerifyFundingRetriesOnServerError(t *testing.T) {
	calls := 0
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(VerificationResult{Status: VerificationPending})
	}))

	result, err := client.VerifyFunding(context.Background(), "fund-ref-1")
	if err != nil {
		t.Fatalf("Expected retry to recover, got %v", err)
	}
	if result.Status != VerificationPending {
		t.Errorf("Expected pending, got %s", result.Status)
	}
	if calls != 2 {
		t.Errorf("Expected 2 calls, got %d", calls)
	}
}

func TestGetBalance(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(WalletBalance{Amount: 12500.50, Currency: "NGN", UpdatedAt: time.Now()})
	}))

	balance, err := client.GetBalance(context.Background())
	if err != nil {
		t.Fatalf("GetBalance failed: %v", err)
	}
	if balance.Amount != 12500.50 || balance.Currency != "NGN" {
		t.Errorf("Unexpected balance: %+v", balance)
	}
}

func TestDeclinedIsNotRetryable(t *testing.T) {
	err := NewStatusError("POST /transactions", http.StatusUnprocessableEntity)

	if err.Type != ErrDeclined {
		t.Errorf("Expected ErrDeclined, got %s", err.Type)
	}
	if err.IsRetryable() {
		t.Error("Declined payments must not be retryable")
	}
}
