package services

import (
	"context"
	"time"

	"github.com/stripe/stripe-go/v72"
	portalsession "github.com/stripe/stripe-go/v72/billingportal/session"
	"github.com/stripe/stripe-go/v72/checkout/session"
	"github.com/stripe/stripe-go/v72/customer"
	"github.com/stripe/stripe-go/v72/sub"
)

// BillingCustomer is the provider-side customer record matched to a
// user by email.
type BillingCustomer struct {
	ID    string
	Email string
}

// ActiveSubscription carries the two facts entitlement resolution needs
// from the provider: when the current period ends, and the unit price
// the tier is derived from.
type ActiveSubscription struct {
	CurrentPeriodEnd time.Time
	UnitAmount       int64
}

type CheckoutParams struct {
	CustomerID    string
	CustomerEmail string
	PlanName      string
	UnitAmount    int64
	SuccessURL    string
	CancelURL     string
}

// BillingProvider is the narrow boundary to the payment processor. The
// processor's ledger, checkout page and portal UI stay on its side;
// this interface only creates sessions and reads subscription state.
type BillingProvider interface {
	// FindCustomerByEmail returns the first matching customer, or nil
	// when none exists.
	FindCustomerByEmail(ctx context.Context, email string) (*BillingCustomer, error)
	// ActiveSubscriptionForCustomer returns the customer's active
	// subscription, or nil when there is none.
	ActiveSubscriptionForCustomer(ctx context.Context, customerID string) (*ActiveSubscription, error)
	// CreateCheckoutSession creates a monthly subscription checkout
	// session and returns its redirect URL.
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (string, error)
	// CreatePortalSession creates a self-service billing portal
	// session for an existing customer and returns its URL.
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

type stripeProvider struct{}

// NewStripeProvider wires the Stripe API key and returns the
// stripe-backed BillingProvider.
func NewStripeProvider(secretKey string) BillingProvider {
	stripe.Key = secretKey
	return &stripeProvider{}
}

func (p *stripeProvider) FindCustomerByEmail(ctx context.Context, email string) (*BillingCustomer, error) {
	params := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	iter := customer.List(params)
	if iter.Next() {
		c := iter.Customer()
		return &BillingCustomer{ID: c.ID, Email: c.Email}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *stripeProvider) ActiveSubscriptionForCustomer(ctx context.Context, customerID string) (*ActiveSubscription, error) {
	params := &stripe.SubscriptionListParams{
		Customer: customerID,
		Status:   string(stripe.SubscriptionStatusActive),
	}
	params.Context = ctx
	params.Filters.AddFilter("limit", "", "1")

	iter := sub.List(params)
	if iter.Next() {
		subscription := iter.Subscription()

		var unitAmount int64
		if len(subscription.Items.Data) > 0 && subscription.Items.Data[0].Price != nil {
			unitAmount = subscription.Items.Data[0].Price.UnitAmount
		}

		return &ActiveSubscription{
			CurrentPeriodEnd: time.Unix(subscription.CurrentPeriodEnd, 0),
			UnitAmount:       unitAmount,
		}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	return nil, nil
}

func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (string, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String("usd"),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(cp.PlanName),
					},
					UnitAmount: stripe.Int64(cp.UnitAmount),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(cp.SuccessURL),
		CancelURL:  stripe.String(cp.CancelURL),
	}
	params.Context = ctx

	// Reuse the existing customer when one was found; otherwise let
	// checkout create one from the email.
	if cp.CustomerID != "" {
		params.Customer = stripe.String(cp.CustomerID)
	} else if cp.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(cp.CustomerEmail)
	}

	s, err := session.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}

func (p *stripeProvider) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx

	s, err := portalsession.New(params)
	if err != nil {
		return "", err
	}
	return s.URL, nil
}
