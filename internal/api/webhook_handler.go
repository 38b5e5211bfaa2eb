package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/services"
)

// Stripe webhook payloads stay well under this; anything larger is not ours.
const maxWebhookBody = 64 * 1024

// WebhookHandler handles payment provider callbacks
type WebhookHandler struct {
	paymentService services.PaymentService
	log            logger.Logger
}

// NewWebhookHandler creates a new webhook handler with service injection
func NewWebhookHandler(paymentService services.PaymentService, log logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		paymentService: paymentService,
		log:            log,
	}
}

// HandleStripe verifies and processes a Stripe event. The raw body is needed
// for signature verification, so this handler reads it before any binding.
func (h *WebhookHandler) HandleStripe(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := h.paymentService.HandleWebhook(payload, signature); err != nil {
		h.log.Error("stripe webhook rejected", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
