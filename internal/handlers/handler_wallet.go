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

// walletHandler handles HTTP requests for the wallet account and its ledger.
type walletHandler struct {
	walletService portssvc.WalletSvcFacade
}

func newWalletHandler(ws portssvc.WalletSvcFacade) *walletHandler {
	return &walletHandler{walletService: ws}
}

// registerWalletRoutes registers routes related to the caller's wallet.
func registerWalletRoutes(rg *gin.RouterGroup, walletService portssvc.WalletSvcFacade) {
	h := newWalletHandler(walletService)

	wallet := rg.Group("/wallet")
	{
		wallet.GET("", h.getWallet)
		wallet.GET("/balance", h.getBalance)
		wallet.POST("/transfer", h.transfer)
		wallet.GET("/transactions", h.listTransactions)
		wallet.GET("/transactions/:id", h.getTransaction)
	}
}

// getWallet godoc
// @Summary Get the caller's wallet account
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.AccountResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallet [get]
func (h *walletHandler) getWallet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.walletService.GetAccountByUserID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else {
			serverError(c, logger, "Failed to get wallet", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// getBalance godoc
// @Summary Get the caller's wallet balance
// @Tags wallet
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Wallet not found"
// @Security BearerAuth
// @Router /wallet/balance [get]
func (h *walletHandler) getBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	balance, currency, err := h.walletService.GetBalance(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else {
			serverError(c, logger, "Failed to get balance", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{Balance: balance, CurrencyCode: currency})
}

// transfer godoc
// @Summary Transfer funds to another wallet
// @Description PIN-authorized transfer to the wallet behind a phone number. Both legs commit atomically.
// @Tags wallet
// @Accept json
// @Produce json
// @Param transfer body dto.TransferRequest true "Transfer details"
// @Success 200 {object} dto.TransferResponse
// @Failure 400 {object} map[string]string "Validation error, invalid amount, self transfer or currency mismatch"
// @Failure 401 {object} map[string]string "Invalid PIN"
// @Failure 404 {object} map[string]string "Recipient not found"
// @Failure 422 {object} map[string]string "Insufficient funds or limit exceeded"
// @Security BearerAuth
// @Router /wallet/transfer [post]
func (h *walletHandler) transfer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Transfer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	txn, newBalance, err := h.walletService.Transfer(c.Request.Context(), portssvc.TransferFundsParams{
		SenderUserID:   userID,
		RecipientPhone: req.RecipientPhone,
		Amount:         req.Amount,
		Description:    req.Description,
		Pin:            req.Pin,
	})
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidPin), errors.Is(err, apperrors.ErrPinNotSetup):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
		case errors.Is(err, apperrors.ErrRecipientNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		case errors.Is(err, apperrors.ErrInsufficientFunds),
			errors.Is(err, apperrors.ErrDailyLimitExceeded),
			errors.Is(err, apperrors.ErrMonthlyLimitExceeded):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrInvalidAmount),
			errors.Is(err, apperrors.ErrSelfTransfer),
			errors.Is(err, apperrors.ErrCurrencyMismatch),
			errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrAccountNotActive):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			serverError(c, logger, "Failed to transfer", err)
		}
		return
	}

	logger.Info("Transfer completed", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusOK, dto.TransferResponse{
		Transaction: dto.ToTransactionResponse(txn),
		NewBalance:  newBalance,
	})
}

// listTransactions godoc
// @Summary List the caller's transaction history
// @Tags wallet
// @Produce json
// @Param type query string false "Filter by transaction type"
// @Param status query string false "Filter by status"
// @Param startDate query string false "Filter from date (YYYY-MM-DD)"
// @Param endDate query string false "Filter to date (YYYY-MM-DD)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /wallet/transactions [get]
func (h *walletHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListTransactionsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	txns, next, err := h.walletService.ListTransactions(c.Request.Context(), userID, req.ToTransactionFilter(), req.Limit, req.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Wallet not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, logger, "Failed to list transactions", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

// getTransaction godoc
// @Summary Get one of the caller's transactions
// @Tags wallet
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Transaction belongs to another wallet"
// @Failure 404 {object} map[string]string "Transaction not found"
// @Security BearerAuth
// @Router /wallet/transactions/{id} [get]
func (h *walletHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	txn, err := h.walletService.GetTransactionByID(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			serverError(c, logger, "Failed to get transaction", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
