package services

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/aoja-labs/jobscan-api/internal/errors"
	"github.com/aoja-labs/jobscan-api/internal/logger"
	"github.com/aoja-labs/jobscan-api/internal/repository"
	"github.com/aoja-labs/jobscan-api/pkg/config"
)

// paymentServiceImpl implements PaymentService on Stripe Checkout
type paymentServiceImpl struct {
	repos *repository.Repositories
	cfg   *config.Config
	log   logger.Logger
}

// newPaymentService creates a new payment service implementation
func newPaymentService(repos *repository.Repositories, cfg *config.Config, log logger.Logger) PaymentService {
	stripe.Key = cfg.StripeSecretKey
	return &paymentServiceImpl{
		repos: repos,
		cfg:   cfg,
		log:   log,
	}
}

// CreateCheckoutSession builds a hosted checkout session for a credit pack.
// The Stripe customer is created lazily on the first purchase.
func (s *paymentServiceImpl) CreateCheckoutSession(userID uuid.UUID, credits int) (*repository.CheckoutResponse, error) {
	if !s.cfg.HasStripeCredentials() {
		return nil, errors.PaymentError("payments are not configured", nil)
	}
	if credits < 1 || credits > 100 {
		return nil, errors.InvalidInput(fmt.Sprintf("credits must be between 1 and 100, got %d", credits), nil)
	}

	user, err := s.repos.User.GetByID(userID)
	if err != nil {
		return nil, errors.NotFound("user not found", err)
	}

	customerID := user.StripeCustomerID
	if customerID == "" {
		cust, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(user.Email),
		})
		if err != nil {
			return nil, errors.PaymentError("failed to create customer", err)
		}
		customerID = cust.ID
		if err := s.repos.User.SetStripeCustomerID(userID, customerID); err != nil {
			return nil, err
		}
	}

	params := &stripe.CheckoutSessionParams{
		Customer:          stripe.String(customerID),
		ClientReferenceID: stripe.String(userID.String()),
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(s.cfg.FrontendURL + "/credits?purchase=success"),
		CancelURL:         stripe.String(s.cfg.FrontendURL + "/credits?purchase=cancelled"),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(int64(credits)),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(s.cfg.CreditPriceCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Job scan credit"),
					},
				},
			},
		},
	}
	params.AddMetadata("credits_to_purchase", strconv.Itoa(credits))

	sess, err := session.New(params)
	if err != nil {
		return nil, errors.PaymentError("failed to create checkout session", err)
	}

	s.log.Info("checkout session created", "user_id", userID.String(), "credits", credits, "session_id", sess.ID)

	return &repository.CheckoutResponse{
		SessionID:   sess.ID,
		CheckoutURL: sess.URL,
	}, nil
}

// HandleWebhook verifies a Stripe event signature and grants purchased
// credits on checkout completion. Unhandled event types are acknowledged
// silently so Stripe stops retrying them.
func (s *paymentServiceImpl) HandleWebhook(payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.StripeWebhookSecret)
	if err != nil {
		return errors.Unauthorized("invalid webhook signature", err)
	}

	if event.Type != "checkout.session.completed" {
		s.log.Debug("ignoring stripe event", "type", string(event.Type))
		return nil
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return errors.PaymentError("failed to parse checkout session", err)
	}

	userID, err := uuid.Parse(sess.ClientReferenceID)
	if err != nil {
		return errors.PaymentError("checkout session has no valid user reference", err)
	}

	credits, err := strconv.Atoi(sess.Metadata["credits_to_purchase"])
	if err != nil || credits < 1 {
		return errors.PaymentError("checkout session has no valid credit amount", err)
	}

	if err := s.repos.User.AddCredits(userID, credits); err != nil {
		return fmt.Errorf("failed to grant purchased credits: %w", err)
	}

	s.log.Info("credits granted", "user_id", userID.String(), "credits", credits, "session_id", sess.ID)
	return nil
}
