package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
)

const defaultBaseURL = "https://api.paystack.co"

// Client talks to the Paystack REST API. All calls run through a circuit
// breaker so a gateway outage fails fast instead of tying up request workers.
// Paystack amounts are integer subunits (pesewas/kobo); conversion happens at
// this boundary and nowhere else.
type Client struct {
	httpClient *http.Client
	secretKey  string
	baseURL    string
	breaker    *gobreaker.CircuitBreaker
}

// NewClient creates a Paystack API client.
func NewClient(secretKey string) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "paystack",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		secretKey:  secretKey,
		baseURL:    defaultBaseURL,
		breaker:    breaker,
	}
}

var _ portssvc.PaymentGateway = (*Client)(nil)

// apiResponse is the envelope every Paystack response uses.
type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) InitializePayment(ctx context.Context, params portssvc.InitializePaymentParams) (*portssvc.PaymentAuthorization, error) {
	body := map[string]any{
		"email":     params.Email,
		"amount":    toSubunit(params.Amount),
		"currency":  params.Currency,
		"reference": params.Reference,
		"metadata":  params.Metadata,
	}

	var data struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	}
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", body, &data); err != nil {
		return nil, err
	}

	return &portssvc.PaymentAuthorization{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

func (c *Client) VerifyPayment(ctx context.Context, reference string) (*portssvc.PaymentVerification, error) {
	var data struct {
		Reference string         `json:"reference"`
		Status    string         `json:"status"`
		Amount    int64          `json:"amount"`
		Currency  string         `json:"currency"`
		Channel   string         `json:"channel"`
		PaidAt    string         `json:"paid_at"`
		Metadata  map[string]any `json:"metadata"`
	}
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	verification := &portssvc.PaymentVerification{
		Reference: data.Reference,
		Status:    data.Status,
		Amount:    fromSubunit(data.Amount),
		Currency:  data.Currency,
		Channel:   data.Channel,
		Metadata:  stringMetadata(data.Metadata),
	}
	if data.PaidAt != "" {
		if paidAt, err := time.Parse(time.RFC3339, data.PaidAt); err == nil {
			verification.PaidAt = &paidAt
		}
	}
	return verification, nil
}

func (c *Client) ListBanks(ctx context.Context) ([]portssvc.Bank, error) {
	var data []struct {
		Name string `json:"name"`
		Code string `json:"code"`
	}
	if err := c.do(ctx, http.MethodGet, "/bank", nil, &data); err != nil {
		return nil, err
	}

	banks := make([]portssvc.Bank, 0, len(data))
	for _, b := range data {
		banks = append(banks, portssvc.Bank{Name: b.Name, Code: b.Code})
	}
	return banks, nil
}

func (c *Client) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*portssvc.ResolvedAccount, error) {
	var data struct {
		AccountNumber string `json:"account_number"`
		AccountName   string `json:"account_name"`
	}
	path := fmt.Sprintf("/bank/resolve?account_number=%s&bank_code=%s", url.QueryEscape(accountNumber), url.QueryEscape(bankCode))
	if err := c.do(ctx, http.MethodGet, path, nil, &data); err != nil {
		return nil, err
	}

	return &portssvc.ResolvedAccount{
		AccountNumber: data.AccountNumber,
		AccountName:   data.AccountName,
	}, nil
}

func (c *Client) CreateTransferRecipient(ctx context.Context, params portssvc.TransferRecipientParams) (string, error) {
	body := map[string]any{
		"type":           params.Type,
		"name":           params.Name,
		"account_number": params.AccountNumber,
		"bank_code":      params.BankCode,
		"currency":       params.Currency,
	}

	var data struct {
		RecipientCode string `json:"recipient_code"`
	}
	if err := c.do(ctx, http.MethodPost, "/transferrecipient", body, &data); err != nil {
		return "", err
	}
	return data.RecipientCode, nil
}

func (c *Client) InitiateTransfer(ctx context.Context, params portssvc.TransferParams) (*portssvc.TransferResult, error) {
	body := map[string]any{
		"source":    "balance",
		"amount":    toSubunit(params.Amount),
		"recipient": params.RecipientCode,
		"reason":    params.Reason,
		"reference": params.Reference,
	}

	var data struct {
		TransferCode string `json:"transfer_code"`
		Status       string `json:"status"`
		Reference    string `json:"reference"`
	}
	if err := c.do(ctx, http.MethodPost, "/transfer", body, &data); err != nil {
		return nil, err
	}

	return &portssvc.TransferResult{
		TransferCode: data.TransferCode,
		Status:       data.Status,
		Reference:    data.Reference,
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	_, err := c.breaker.Execute(func() (any, error) {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("failed to marshal request body: %w", err)
			}
			reader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("paystack request failed: %w", err)
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		if err != nil {
			return nil, fmt.Errorf("failed to read paystack response: %w", err)
		}

		var envelope apiResponse
		if err := json.Unmarshal(respBody, &envelope); err != nil {
			return nil, fmt.Errorf("failed to decode paystack response (http %d): %w", resp.StatusCode, err)
		}
		if resp.StatusCode >= 400 || !envelope.Status {
			return nil, fmt.Errorf("paystack error (http %d): %s", resp.StatusCode, envelope.Message)
		}
		if out != nil && len(envelope.Data) > 0 {
			if err := json.Unmarshal(envelope.Data, out); err != nil {
				return nil, fmt.Errorf("failed to decode paystack data: %w", err)
			}
		}
		return nil, nil
	})
	return err
}

func toSubunit(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).IntPart()
}

func fromSubunit(subunit int64) decimal.Decimal {
	return decimal.NewFromInt(subunit).Div(decimal.NewFromInt(100))
}

func stringMetadata(raw map[string]any) map[string]string {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
