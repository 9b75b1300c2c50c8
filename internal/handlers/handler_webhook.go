package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsend/vsend_wallet_backend/internal/adapters/paystack"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/middleware"
	"github.com/vsend/vsend_wallet_backend/internal/platform/config"
)

// webhookHandler receives asynchronous gateway events.
type webhookHandler struct {
	topUpService portssvc.TopUpSvcFacade
	secretKey    string
}

// registerWebhookRoutes registers the public gateway webhook endpoint.
func registerWebhookRoutes(r *gin.Engine, cfg *config.Config, topUpService portssvc.TopUpSvcFacade) {
	h := &webhookHandler{topUpService: topUpService, secretKey: cfg.PaystackSecretKey}
	r.POST("/webhooks/paystack", h.paystackWebhook)
}

// paystackWebhook godoc
// @Summary Paystack webhook receiver
// @Description Verifies the HMAC-SHA512 signature and applies the event. Always returns 200 for verified events so the gateway stops retrying.
// @Tags webhooks
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Unreadable payload"
// @Failure 401 {object} map[string]string "Bad signature"
// @Router /webhooks/paystack [post]
func (h *webhookHandler) paystackWebhook(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read payload"})
		return
	}

	signature := c.GetHeader("x-paystack-signature")
	if !paystack.VerifyWebhookSignature(payload, signature, h.secretKey) {
		logger.Warn("Rejected webhook with bad signature")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	event, err := paystack.ParseWebhookEvent(payload)
	if err != nil {
		logger.Warn("Failed to parse webhook payload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	if err := h.topUpService.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		// Non-2xx makes the gateway retry, which is what we want for transient failures
		logger.Error("Failed to handle webhook event", slog.String("event", event.Event), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
