package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aoja-labs/jobscan-api/internal/auth"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/internal/services"
)

// CreditHandler handles credit balance and checkout operations
type CreditHandler struct {
	creditService  services.CreditService
	paymentService services.PaymentService
}

// NewCreditHandler creates a new credit handler with service injection
func NewCreditHandler(creditService services.CreditService, paymentService services.PaymentService) *CreditHandler {
	return &CreditHandler{
		creditService:  creditService,
		paymentService: paymentService,
	}
}

// GetBalance returns the authenticated user's credit balance
func (h *CreditHandler) GetBalance(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	balance, err := h.creditService.Balance(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance)
}

// CreateCheckoutSession starts a hosted checkout for a credit pack
func (h *CreditHandler) CreateCheckoutSession(c *gin.Context) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req repository.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	response, err := h.paymentService.CreateCheckoutSession(userID, req.Credits)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
