package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aoja-labs/jobscan-api/internal/errors"
)

// respondError maps service errors onto HTTP responses. AppError codes carry
// the status; anything else is an opaque 500.
func respondError(c *gin.Context, err error) {
	appErr, ok := errors.AsAppError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Code {
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeInvalidInput, errors.ErrCodeValidationError:
		status = http.StatusBadRequest
	case errors.ErrCodeUnauthorized:
		status = http.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = http.StatusForbidden
	case errors.ErrCodeConflict:
		status = http.StatusConflict
	case errors.ErrCodeInsufficientCredits:
		status = http.StatusPaymentRequired
	case errors.ErrCodePaymentError:
		// Permanent failure. A 5xx would make Stripe retry webhook
		// deliveries that can never succeed.
		status = http.StatusBadRequest
	}

	c.JSON(status, gin.H{"error": appErr.Message, "code": appErr.Code})
}
