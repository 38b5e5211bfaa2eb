package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/aoja-labs/jobscan-api/internal/errors"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/repository"
)

// stubPaymentService plays back a canned webhook outcome
type stubPaymentService struct {
	webhookErr   error
	gotSignature string
}

func (s *stubPaymentService) CreateCheckoutSession(userID uuid.UUID, credits int) (*repository.CheckoutResponse, error) {
	return nil, errors.PaymentError("payments are not configured", nil)
}

func (s *stubPaymentService) HandleWebhook(payload []byte, signature string) error {
	s.gotSignature = signature
	return s.webhookErr
}

func setupWebhookRouter(svc *stubPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewWebhookHandler(svc, logger.NewNop())
	r.POST("/api/v1/webhooks/stripe", h.HandleStripe)
	return r
}

func postWebhook(r *gin.Engine, signature string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/webhooks/stripe", bytes.NewBufferString(`{"type":"checkout.session.completed"}`))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("Stripe-Signature", signature)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleStripe_Acknowledged(t *testing.T) {
	svc := &stubPaymentService{}
	r := setupWebhookRouter(svc)

	w := postWebhook(r, "t=1,v1=sig")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "t=1,v1=sig", svc.gotSignature)
	assert.Contains(t, w.Body.String(), `"received":true`)
}

func TestHandleStripe_BadSignatureMapsTo401(t *testing.T) {
	svc := &stubPaymentService{webhookErr: errors.Unauthorized("invalid webhook signature", nil)}
	r := setupWebhookRouter(svc)

	w := postWebhook(r, "bogus")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHandleStripe_ProcessingErrorMapsTo400(t *testing.T) {
	// A malformed event can never be processed; the response must not be a
	// 5xx or the provider keeps redelivering it.
	svc := &stubPaymentService{webhookErr: errors.PaymentError("checkout session has no valid user reference", nil)}
	r := setupWebhookRouter(svc)

	w := postWebhook(r, "t=1,v1=sig")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), errors.ErrCodePaymentError)
}
