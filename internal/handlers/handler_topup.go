package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/dto"
	"github.com/vsend/vsend_wallet_backend/internal/middleware"
)

// topUpHandler handles HTTP requests for top-ups, withdrawals and banks.
type topUpHandler struct {
	topUpService portssvc.TopUpSvcFacade
}

func newTopUpHandler(ts portssvc.TopUpSvcFacade) *topUpHandler {
	return &topUpHandler{topUpService: ts}
}

// registerTopUpRoutes registers routes related to gateway-backed money movement.
func registerTopUpRoutes(rg *gin.RouterGroup, topUpService portssvc.TopUpSvcFacade) {
	h := newTopUpHandler(topUpService)

	topup := rg.Group("/topup")
	{
		topup.POST("", h.initiateTopUp)
		topup.POST("/complete", h.completeTopUp)
	}
	rg.POST("/withdrawals", h.withdraw)

	banks := rg.Group("/banks")
	{
		banks.GET("", h.listBanks)
		banks.GET("/resolve", h.resolveAccount)
	}
}

// initiateTopUp godoc
// @Summary Start a wallet top-up
// @Description Creates a hosted-checkout session; the wallet is credited only after verification
// @Tags topup
// @Accept json
// @Produce json
// @Param topup body dto.TopUpRequest true "Top-up details"
// @Success 200 {object} dto.TopUpResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Payment gateway unavailable"
// @Security BearerAuth
// @Router /topup [post]
func (h *topUpHandler) initiateTopUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	auth, err := h.topUpService.InitiateTopUp(c.Request.Context(), userID, req.Amount, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAccountNotActive):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			serverError(c, logger, "Failed to initiate top-up", err)
		default:
			logger.Error("Failed to initiate top-up", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to initiate top-up"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTopUpResponse(auth))
}

// completeTopUp godoc
// @Summary Complete a top-up after checkout
// @Description Verifies the payment with the gateway and credits the wallet. Idempotent per reference.
// @Tags topup
// @Accept json
// @Produce json
// @Param completion body dto.CompleteTopUpRequest true "Payment reference"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Payment not successful"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Reference belongs to another wallet"
// @Security BearerAuth
// @Router /topup/complete [post]
func (h *topUpHandler) completeTopUp(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CompleteTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.topUpService.CompleteTopUp(c.Request.Context(), userID, req.Reference)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Reference belongs to another wallet"})
		} else if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else if errors.Is(err, apperrors.ErrStoreUnavailable) {
			logger.Error("Failed to complete top-up", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		} else {
			logger.Error("Failed to complete top-up", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to complete top-up"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// withdraw godoc
// @Summary Withdraw wallet funds to a bank account
// @Description PIN-authorized debit followed by a gateway payout; a failed payout refunds the debit
// @Tags withdrawals
// @Accept json
// @Produce json
// @Param withdrawal body dto.WithdrawRequest true "Withdrawal details"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount or unresolvable bank account"
// @Failure 401 {object} map[string]string "Invalid PIN"
// @Failure 422 {object} map[string]string "Insufficient funds or limit exceeded"
// @Security BearerAuth
// @Router /withdrawals [post]
func (h *topUpHandler) withdraw(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, err := h.topUpService.Withdraw(c.Request.Context(), portssvc.WithdrawParams{
		UserID:        userID,
		Amount:        req.Amount,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Description:   req.Description,
		Pin:           req.Pin,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidPin), errors.Is(err, apperrors.ErrPinNotSetup):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
		case errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, apperrors.ErrDailyLimitExceeded),
			errors.Is(err, apperrors.ErrMonthlyLimitExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidAmount), errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAccountNotActive):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrStoreUnavailable):
			serverError(c, logger, "Failed to withdraw", err)
		default:
			logger.Error("Failed to withdraw", slog.String("error", err.Error()))
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to withdraw"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// listBanks godoc
// @Summary List banks available for withdrawals
// @Tags banks
// @Produce json
// @Success 200 {array} dto.BankResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Payment gateway unavailable"
// @Security BearerAuth
// @Router /banks [get]
func (h *topUpHandler) listBanks(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	banks, err := h.topUpService.ListBanks(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list banks", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list banks"})
		return
	}

	c.JSON(http.StatusOK, dto.ToBankResponses(banks))
}

// resolveAccount godoc
// @Summary Resolve a bank account's owner
// @Tags banks
// @Produce json
// @Param accountNumber query string true "Bank account number"
// @Param bankCode query string true "Bank code"
// @Success 200 {object} dto.ResolveAccountResponse
// @Failure 400 {object} map[string]string "Missing parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Payment gateway unavailable"
// @Security BearerAuth
// @Router /banks/resolve [get]
func (h *topUpHandler) resolveAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ResolveAccountRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resolved, err := h.topUpService.ResolveBankAccount(c.Request.Context(), req.AccountNumber, req.BankCode)
	if err != nil {
		logger.Error("Failed to resolve bank account", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to resolve bank account"})
		return
	}

	c.JSON(http.StatusOK, dto.ToResolveAccountResponse(resolved))
}
