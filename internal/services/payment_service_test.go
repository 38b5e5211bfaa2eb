package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoja-labs/jobscan-api/internal/errors"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

func newTestPaymentService(cfg *config.Config) (PaymentService, *mockUserRepo) {
	users := &mockUserRepo{credits: 0}
	repos := &repository.Repositories{User: users, Scan: &mockScanRepo{}}
	repos.Tx = &mockTx{repos: repos}
	return newPaymentService(repos, cfg, logger.NewNop()), users
}

func TestCreateCheckoutSession_NotConfigured(t *testing.T) {
	svc, _ := newTestPaymentService(&config.Config{})

	_, err := svc.CreateCheckoutSession(uuid.New(), 10)
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodePaymentError, appErr.Code)
}

func TestCreateCheckoutSession_CreditBounds(t *testing.T) {
	cfg := &config.Config{StripeSecretKey: "sk_test_xxx", CreditPriceCents: 500}
	svc, _ := newTestPaymentService(cfg)

	for _, credits := range []int{0, -1, 101} {
		_, err := svc.CreateCheckoutSession(uuid.New(), credits)
		require.Error(t, err, "credits=%d", credits)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrCodeInvalidInput, appErr.Code)
	}
}

func TestHandleWebhook_RejectsBadSignature(t *testing.T) {
	cfg := &config.Config{StripeSecretKey: "sk_test_xxx", StripeWebhookSecret: "whsec_test"}
	svc, users := newTestPaymentService(cfg)

	err := svc.HandleWebhook([]byte(`{"type":"checkout.session.completed"}`), "bogus")
	require.Error(t, err)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeUnauthorized, appErr.Code)
	assert.Equal(t, 0, users.credits, "unverified events must not grant credits")
}

func TestCreditService_Balance(t *testing.T) {
	users := &mockUserRepo{credits: 3}
	repos := &repository.Repositories{User: users, Scan: &mockScanRepo{}}
	repos.Tx = &mockTx{repos: repos}
	svc := newCreditService(repos)

	balance, err := svc.Balance(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 3, balance.CreditsRemaining)
	assert.True(t, balance.CanScan)
}

func TestCreditService_BalanceExhausted(t *testing.T) {
	users := &mockUserRepo{credits: 0}
	repos := &repository.Repositories{User: users, Scan: &mockScanRepo{}}
	repos.Tx = &mockTx{repos: repos}
	svc := newCreditService(repos)

	balance, err := svc.Balance(uuid.New())
	require.NoError(t, err)
	assert.False(t, balance.CanScan)
}

func TestCreditService_GrantRejectsNonPositive(t *testing.T) {
	users := &mockUserRepo{credits: 0}
	repos := &repository.Repositories{User: users, Scan: &mockScanRepo{}}
	repos.Tx = &mockTx{repos: repos}
	svc := newCreditService(repos)

	assert.Error(t, svc.Grant(uuid.New(), 0))
	assert.Error(t, svc.Grant(uuid.New(), -5))
	assert.Equal(t, 0, users.credits)

	require.NoError(t, svc.Grant(uuid.New(), 10))
	assert.Equal(t, 10, users.credits)
}
