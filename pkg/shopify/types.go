package shopify

import (
	"time"

	"github.com/shopspring/decimal"
)

// Money is a currency-tagged amount as returned by the Admin API. Amounts are
// string-encoded decimals; they are never parsed into floats.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

// Decimal parses the amount. Empty or malformed amounts decode to zero so that
// aggregation over partial payloads stays total.
func (m Money) Decimal() decimal.Decimal {
	if m.Amount == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(m.Amount)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsZero reports whether the amount parses to zero.
func (m Money) IsZero() bool {
	return m.Decimal().IsZero()
}

// Shop is the merchant store context.
type Shop struct {
	Name            string
	Email           string
	MyshopifyDomain string
	PlanDisplayName string
	CurrencyCode    string
}

// LineItem is a purchased item within an order.
type LineItem struct {
	Title    string
	Quantity int
}

// OrderCustomer is the buyer reference attached to an order. NumberOfOrders is
// the buyer's lifetime order count at fetch time.
type OrderCustomer struct {
	ID             string
	DisplayName    string
	Email          string
	NumberOfOrders int
}

// Order is one sale fetched from the Admin API. Monetary fields all carry the
// shop-money presentation of the corresponding price set.
type Order struct {
	ID                string
	Name              string
	CreatedAt         time.Time
	FinancialStatus   string
	FulfillmentStatus string
	TotalPrice        Money
	SubtotalPrice     Money
	TotalTax          Money
	TotalShipping     Money
	TotalDiscounts    Money
	TotalRefunded     Money
	LineItems         []LineItem
	Customer          *OrderCustomer
	ChannelName       string
}

// Refunded reports whether any amount was refunded against the order.
func (o Order) Refunded() bool {
	return !o.TotalRefunded.IsZero()
}

// Product is a sellable catalog item.
type Product struct {
	ID             string
	Title          string
	Status         string
	TotalInventory int
	MinPrice       Money
	ProductType    string
	Vendor         string
}

// Customer is a buyer with lifetime aggregates.
type Customer struct {
	ID             string
	DisplayName    string
	Email          string
	NumberOfOrders int
	AmountSpent    Money
	CreatedAt      time.Time
}

// SubscriptionLineItem prices one recurring charge of an app subscription.
type SubscriptionLineItem struct {
	PlanName   string
	Price      Money
	Interval   string // EVERY_30_DAYS or ANNUAL
	TrialDays  int
	ReturnURL  string
	TestCharge bool
}

// AppSubscription is the result of a subscription mutation.
type AppSubscription struct {
	ID              string
	Name            string
	Status          string
	ConfirmationURL string
}
