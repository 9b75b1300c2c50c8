package paystack

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"

	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
)

// VerifyWebhookSignature checks the x-paystack-signature header: an
// HMAC-SHA512 of the raw body keyed with the account's secret key. The
// comparison is constant time.
func VerifyWebhookSignature(payload []byte, signature, secretKey string) bool {
	mac := hmac.New(sha512.New, []byte(secretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ParseWebhookEvent extracts the fields the feature layer acts on from a raw
// webhook payload. Callers must verify the signature first.
func ParseWebhookEvent(payload []byte) (portssvc.WebhookEvent, error) {
	var envelope struct {
		Event string `json:"event"`
		Data  struct {
			Reference string         `json:"reference"`
			Status    string         `json:"status"`
			Amount    int64          `json:"amount"`
			Currency  string         `json:"currency"`
			Metadata  map[string]any `json:"metadata"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return portssvc.WebhookEvent{}, fmt.Errorf("failed to decode webhook payload: %w", err)
	}

	return portssvc.WebhookEvent{
		Event:     envelope.Event,
		Reference: envelope.Data.Reference,
		Status:    envelope.Data.Status,
		Amount:    fromSubunit(envelope.Data.Amount),
		Currency:  envelope.Data.Currency,
		Metadata:  stringMetadata(envelope.Data.Metadata),
	}, nil
}
