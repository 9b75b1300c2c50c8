package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vsend/vsend_wallet_backend/internal/apperrors"
	portssvc "github.com/vsend/vsend_wallet_backend/internal/core/ports/services"
	"github.com/vsend/vsend_wallet_backend/internal/dto"
	"github.com/vsend/vsend_wallet_backend/internal/middleware"
)

// recipientHandler handles transfer-recipient validation.
type recipientHandler struct {
	userService portssvc.UserSvcFacade
}

func newRecipientHandler(us portssvc.UserSvcFacade) *recipientHandler {
	return &recipientHandler{userService: us}
}

// registerRecipientRoutes registers routes related to transfer recipients.
func registerRecipientRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := newRecipientHandler(userService)
	rg.POST("/recipients/validate", h.validateRecipient)
}

// validateRecipient godoc
// @Summary Validate a transfer recipient
// @Description Checks that a phone number belongs to a registered user with an active wallet
// @Tags recipients
// @Accept json
// @Produce json
// @Param recipient body dto.ValidateRecipientRequest true "Recipient phone number"
// @Success 200 {object} dto.RecipientResponse
// @Failure 400 {object} map[string]string "Invalid phone number"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Recipient not found"
// @Security BearerAuth
// @Router /recipients/validate [post]
func (h *recipientHandler) validateRecipient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ValidateRecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	info, err := h.userService.ValidateRecipient(c.Request.Context(), req.PhoneNumber)
	if err != nil {
		if errors.Is(err, apperrors.ErrRecipientNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, logger, "Failed to validate recipient", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToRecipientResponse(info))
}
