package handlers

import (
	"net/http"

	"velour/models"
	"velour/services/payment"
	"velour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes STK push checkout and the gateway callback endpoint.
type PaymentHandler struct {
	Orchestrator payment.Orchestrator
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(o payment.Orchestrator) *PaymentHandler {
	return &PaymentHandler{Orchestrator: o}
}

// Checkout handles POST /api/payment/checkout.
func (ph *PaymentHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	att, err := ph.Orchestrator.Checkout(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Payment prompt sent to your phone",
		"attemptId":         att.ID,
		"checkoutRequestId": att.CheckoutRequestID,
	})
}

// Callback handles POST /api/payment/callback. The gateway retries on
// non-200 responses, so every well-formed delivery is acknowledged even when
// it resolves to a no-op.
func (ph *PaymentHandler) Callback(c *gin.Context) {
	var env models.STKCallbackEnvelope
	if err := c.ShouldBindJSON(&env); err != nil {
		zap.L().Warn("malformed payment callback", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"ResultCode": 1, "ResultDesc": "Rejected"})
		return
	}
	if err := ph.Orchestrator.HandleCallback(c.Request.Context(), env); err != nil {
		zap.L().Error("payment callback processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"ResultCode": 1, "ResultDesc": "Rejected"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ResultCode": 0, "ResultDesc": "Accepted"})
}
