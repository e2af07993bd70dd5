// Package billing defines the subscription plan catalog and drives app
// subscription charges through the Admin API billing mutation.
package billing

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/shopify"
)

// IntervalEvery30Days is the recurring charge interval for every paid plan.
const IntervalEvery30Days = "EVERY_30_DAYS"

// UnlimitedAnalyses marks plans without a monthly AI analysis cap.
const UnlimitedAnalyses = -1

// Plan keys, cheapest first.
const (
	PlanFree         = "free"
	PlanStarter      = "starter"
	PlanProfessional = "professional"
	PlanEnterprise   = "enterprise"
)

// ErrUnknownPlan is returned when a plan key does not exist in the catalog.
var ErrUnknownPlan = errors.New("billing: unknown plan")

// Plan is one subscription tier.
type Plan struct {
	Key              string
	Name             string
	Price            decimal.Decimal
	Currency         string
	Interval         string
	TrialDays        int
	AnalysesPerMonth int // AI analyses per month, UnlimitedAnalyses for no cap
	Features         []string
}

// IsFree reports whether the plan requires no recurring charge.
func (p Plan) IsFree() bool {
	return p.Price.IsZero()
}

var catalog = []Plan{
	{
		Key:              PlanFree,
		Name:             "Free",
		Price:            decimal.Zero,
		Currency:         "USD",
		Interval:         IntervalEvery30Days,
		AnalysesPerMonth: 5,
		Features: []string{
			"Overview dashboard",
			"Basic sales metrics",
			"5 AI analyses per month",
		},
	},
	{
		Key:              PlanStarter,
		Name:             "Starter",
		Price:            decimal.RequireFromString("19.99"),
		Currency:         "USD",
		Interval:         IntervalEvery30Days,
		TrialDays:        7,
		AnalysesPerMonth: 50,
		Features: []string{
			"All dashboard pages",
			"Revenue heatmap and channel split",
			"50 AI analyses per month",
			"Email alerts",
		},
	},
	{
		Key:              PlanProfessional,
		Name:             "Professional",
		Price:            decimal.RequireFromString("49.99"),
		Currency:         "USD",
		Interval:         IntervalEvery30Days,
		TrialDays:        14,
		AnalysesPerMonth: 500,
		Features: []string{
			"Everything in Starter",
			"Checkout funnel analytics",
			"500 AI analyses per month",
			"Exportable reports",
		},
	},
	{
		Key:              PlanEnterprise,
		Name:             "Enterprise",
		Price:            decimal.RequireFromString("149.99"),
		Currency:         "USD",
		Interval:         IntervalEvery30Days,
		TrialDays:        14,
		AnalysesPerMonth: UnlimitedAnalyses,
		Features: []string{
			"Everything in Professional",
			"Unlimited AI analyses",
			"Custom alert rules",
			"Priority support",
		},
	},
}

// Plans returns the catalog cheapest first.
func Plans() []Plan {
	out := make([]Plan, len(catalog))
	copy(out, catalog)
	return out
}

// PlanByKey looks up a plan.
func PlanByKey(key string) (Plan, bool) {
	for _, plan := range catalog {
		if plan.Key == key {
			return plan, true
		}
	}
	return Plan{}, false
}

// Subscriber creates app subscriptions for plan upgrades.
type Subscriber struct {
	client    shopify.BillingClient
	returnURL string
	test      bool
}

// SubscriberOption configures a Subscriber.
type SubscriberOption func(*Subscriber)

// WithReturnURL sets where the merchant lands after approving the charge.
func WithReturnURL(url string) SubscriberOption {
	return func(s *Subscriber) { s.returnURL = url }
}

// WithTestCharges marks created subscriptions as test charges.
func WithTestCharges(test bool) SubscriberOption {
	return func(s *Subscriber) { s.test = test }
}

// NewSubscriber builds a Subscriber over an Admin API billing client.
func NewSubscriber(client shopify.BillingClient, opts ...SubscriberOption) *Subscriber {
	s := &Subscriber{
		client:    client,
		returnURL: "/app/billing",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe creates the recurring charge for the given plan. Selecting the
// free plan skips the Admin API and returns an active synthetic subscription.
func (s *Subscriber) Subscribe(ctx context.Context, planKey string) (shopify.AppSubscription, error) {
	plan, ok := PlanByKey(planKey)
	if !ok {
		return shopify.AppSubscription{}, fmt.Errorf("%w: %s", ErrUnknownPlan, planKey)
	}
	if plan.IsFree() {
		return shopify.AppSubscription{Name: plan.Name, Status: "ACTIVE"}, nil
	}
	sub, err := s.client.CreateSubscription(ctx, shopify.SubscriptionLineItem{
		PlanName:   plan.Name,
		Price:      shopify.Money{Amount: plan.Price.StringFixed(2), CurrencyCode: plan.Currency},
		Interval:   plan.Interval,
		TrialDays:  plan.TrialDays,
		ReturnURL:  s.returnURL,
		TestCharge: s.test,
	})
	if err != nil {
		return shopify.AppSubscription{}, fmt.Errorf("billing: subscribe to %s: %w", plan.Key, err)
	}
	return sub, nil
}
