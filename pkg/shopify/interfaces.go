package shopify

import "context"

// ShopClient fetches the merchant store context.
type ShopClient interface {
	FetchShop(ctx context.Context) (Shop, error)
}

// OrderClient fetches bounded pages of recent orders.
type OrderClient interface {
	FetchOrders(ctx context.Context, first int) ([]Order, error)
}

// ProductClient fetches bounded pages of recent products.
type ProductClient interface {
	FetchProducts(ctx context.Context, first int) ([]Product, error)
}

// CustomerClient fetches bounded pages of recent customers.
type CustomerClient interface {
	FetchCustomers(ctx context.Context, first int) ([]Customer, error)
}

// CheckoutClient counts abandoned checkouts for funnel metrics.
type CheckoutClient interface {
	CountAbandonedCheckouts(ctx context.Context) (int, error)
}

// BillingClient creates recurring app subscriptions.
type BillingClient interface {
	CreateSubscription(ctx context.Context, item SubscriptionLineItem) (AppSubscription, error)
}

// AdminClient is a convenience union for services that use every Admin API call.
type AdminClient interface {
	ShopClient
	OrderClient
	ProductClient
	CustomerClient
	CheckoutClient
	BillingClient
}

var _ AdminClient = (*Client)(nil)
var _ AdminClient = (*MockClient)(nil)
