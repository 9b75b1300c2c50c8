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

// pinHandler handles HTTP requests for the PIN credential.
type pinHandler struct {
	pinService portssvc.PinSvcFacade
}

func newPinHandler(ps portssvc.PinSvcFacade) *pinHandler {
	return &pinHandler{pinService: ps}
}

// registerPinRoutes registers routes related to the caller's PIN.
func registerPinRoutes(rg *gin.RouterGroup, pinService portssvc.PinSvcFacade) {
	h := newPinHandler(pinService)

	pin := rg.Group("/pin")
	{
		pin.GET("", h.hasPin)
		pin.POST("", h.setupPin)
		pin.PUT("", h.changePin)
		pin.POST("/verify", h.verifyPin)
	}
}

// hasPin godoc
// @Summary Check whether the caller has a PIN
// @Tags pin
// @Produce json
// @Success 200 {object} dto.HasPinResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /pin [get]
func (h *pinHandler) hasPin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	hasPin, err := h.pinService.HasPin(c.Request.Context(), userID)
	if err != nil {
		serverError(c, logger, "Failed to check PIN", err)
		return
	}

	c.JSON(http.StatusOK, dto.HasPinResponse{HasPin: hasPin})
}

// setupPin godoc
// @Summary Set up the caller's PIN
// @Tags pin
// @Accept json
// @Produce json
// @Param pin body dto.SetupPinRequest true "PIN details"
// @Success 204 "PIN created"
// @Failure 400 {object} map[string]string "Invalid PIN format or confirmation mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /pin [post]
func (h *pinHandler) setupPin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SetupPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.pinService.SetupPin(c.Request.Context(), userID, req.Pin, req.ConfirmPin); err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, logger, "Failed to set up PIN", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// changePin godoc
// @Summary Change the caller's PIN
// @Tags pin
// @Accept json
// @Produce json
// @Param pin body dto.ChangePinRequest true "Current and new PIN"
// @Success 204 "PIN rotated"
// @Failure 400 {object} map[string]string "Invalid PIN format or confirmation mismatch"
// @Failure 401 {object} map[string]string "Current PIN is wrong"
// @Security BearerAuth
// @Router /pin [put]
func (h *pinHandler) changePin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if err := h.pinService.ChangePin(c.Request.Context(), userID, req.CurrentPin, req.NewPin, req.ConfirmNewPin); err != nil {
		if errors.Is(err, apperrors.ErrInvalidPin) || errors.Is(err, apperrors.ErrPinNotSetup) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid PIN"})
		} else if errors.Is(err, apperrors.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			serverError(c, logger, "Failed to change PIN", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// verifyPin godoc
// @Summary Verify the caller's PIN
// @Description Checks the PIN without moving money; used by clients before showing sensitive screens
// @Tags pin
// @Accept json
// @Produce json
// @Param pin body dto.VerifyPinRequest true "PIN to verify"
// @Success 200 {object} dto.VerifyPinResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "PIN not set up"
// @Security BearerAuth
// @Router /pin/verify [post]
func (h *pinHandler) verifyPin(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.VerifyPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	valid, err := h.pinService.VerifyPin(c.Request.Context(), userID, req.Pin)
	if err != nil {
		if errors.Is(err, apperrors.ErrPinNotSetup) {
			c.JSON(http.StatusNotFound, gin.H{"error": "PIN not set up"})
		} else {
			serverError(c, logger, "Failed to verify PIN", err)
		}
		return
	}

	c.JSON(http.StatusOK, dto.VerifyPinResponse{Valid: valid})
}
