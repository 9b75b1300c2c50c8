package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	"github.com/vsend/vsend_wallet_backend/internal/core/domain"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/dto"
	"github.com/vsend/vsend_wallet_backend/internal/middleware"
)

// receiptHandler handles HTTP requests for receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
}

func newReceiptHandler(rs portssvc.ReceiptSvcFacade) *receiptHandler {
	return &receiptHandler{receiptService: rs}
}

// registerReceiptRoutes registers routes related to receipts.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade) {
	h := newReceiptHandler(receiptService)

	receipts := rg.Group("/receipts")
	{
		receipts.GET("", h.listReceipts)
		receipts.GET("/transaction/:id", h.getByTransaction)
		receipts.GET("/number/:number", h.getByNumber)
	}
}

// listReceipts godoc
// @Summary List the caller's receipts
// @Tags receipts
// @Produce json
// @Param limit query int false "Page size (default 20, max 100)"
// @Param nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListReceiptsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /receipts [get]
func (h *receiptHandler) listReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListReceiptsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	receipts, next, err := h.receiptService.ListReceipts(c.Request.Context(), userID, req.Limit, req.NextToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, logger, "Failed to list receipts", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToListReceiptsResponse(receipts, next))
}

// getByTransaction godoc
// @Summary Get the receipt for a transaction
// @Tags receipts
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Receipt belongs to another user"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/transaction/{id} [get]
func (h *receiptHandler) getByTransaction(c *gin.Context) {
	h.getReceipt(c, func(userID string) (*domain.Receipt, error) {
		return h.receiptService.GetReceiptByTransactionID(c.Request.Context(), userID, c.Param("id"))
	})
}

// getByNumber godoc
// @Summary Get a receipt by its receipt number
// @Tags receipts
// @Produce json
// @Param number path string true "Receipt number"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Receipt belongs to another user"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Security BearerAuth
// @Router /receipts/number/{number} [get]
func (h *receiptHandler) getByNumber(c *gin.Context) {
	h.getReceipt(c, func(userID string) (*domain.Receipt, error) {
		return h.receiptService.GetReceiptByNumber(c.Request.Context(), userID, c.Param("number"))
	})
}

func (h *receiptHandler) getReceipt(c *gin.Context, fetch func(userID string) (*domain.Receipt, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := fetch(userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Receipt not found"})
		} else if errors.Is(err, apperrors.ErrForbidden) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		} else {
			serverError(c, logger, "Failed to get receipt", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}
