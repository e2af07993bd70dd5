package shopify

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockData seeds deterministic Admin API responses for tests or local demos.
type MockData struct {
	Shop               Shop
	Orders             []Order
	Products           []Product
	Customers          []Customer
	AbandonedCheckouts int
	CheckoutErr        error
}

// MockClient implements AdminClient using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

// NewMockClient builds a mock Admin API client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// FetchShop returns the configured shop.
func (c *MockClient) FetchShop(context.Context) (Shop, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data.Shop, nil
}

// FetchOrders returns up to first configured orders.
func (c *MockClient) FetchOrders(_ context.Context, first int) ([]Order, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneOrders(boundedSlice(c.data.Orders, first)), nil
}

// FetchProducts returns up to first configured products.
func (c *MockClient) FetchProducts(_ context.Context, first int) ([]Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Product(nil), boundedSlice(c.data.Products, first)...), nil
}

// FetchCustomers returns up to first configured customers.
func (c *MockClient) FetchCustomers(_ context.Context, first int) ([]Customer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Customer(nil), boundedSlice(c.data.Customers, first)...), nil
}

// CountAbandonedCheckouts returns the configured count or error.
func (c *MockClient) CountAbandonedCheckouts(context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data.CheckoutErr != nil {
		return 0, c.data.CheckoutErr
	}
	return c.data.AbandonedCheckouts, nil
}

// CreateSubscription echoes a pending subscription without charging anything.
func (c *MockClient) CreateSubscription(_ context.Context, item SubscriptionLineItem) (AppSubscription, error) {
	if item.PlanName == "" {
		return AppSubscription{}, fmt.Errorf("shopify: subscription plan name is required")
	}
	return AppSubscription{
		ID:              "gid://shopify/AppSubscription/1",
		Name:            item.PlanName,
		Status:          "PENDING",
		ConfirmationURL: "https://admin.shopify.com/charges/confirm/1",
	}, nil
}

func boundedSlice[T any](items []T, first int) []T {
	if first <= 0 || first >= len(items) {
		return items
	}
	return items[:first]
}

func cloneOrders(orders []Order) []Order {
	out := make([]Order, len(orders))
	for i, order := range orders {
		out[i] = order
		out[i].LineItems = append([]LineItem(nil), order.LineItems...)
		if order.Customer != nil {
			customer := *order.Customer
			out[i].Customer = &customer
		}
	}
	return out
}

// DemoData returns a deterministic store fixture spanning several days,
// channels, and customer types. The same fixture always aggregates to the same
// metrics.
func DemoData() MockData {
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	usd := func(amount string) Money { return Money{Amount: amount, CurrencyCode: "USD"} }

	alice := &OrderCustomer{ID: "gid://shopify/Customer/1", DisplayName: "Alice Nguyen", Email: "alice@example.com", NumberOfOrders: 4}
	bruno := &OrderCustomer{ID: "gid://shopify/Customer/2", DisplayName: "Bruno Costa", Email: "bruno@example.com", NumberOfOrders: 1}
	chloe := &OrderCustomer{ID: "gid://shopify/Customer/3", DisplayName: "Chloe Park", Email: "chloe@example.com", NumberOfOrders: 2}

	orders := []Order{
		{
			ID: "gid://shopify/Order/1001", Name: "#1001", CreatedAt: base,
			FinancialStatus: "PAID", FulfillmentStatus: "FULFILLED",
			TotalPrice: usd("120.00"), SubtotalPrice: usd("100.00"), TotalTax: usd("10.00"),
			TotalShipping: usd("10.00"), TotalDiscounts: usd("0.00"), TotalRefunded: usd("0.00"),
			LineItems: []LineItem{{Title: "Trail Bottle", Quantity: 2}},
			Customer:  alice,
		},
		{
			ID: "gid://shopify/Order/1002", Name: "#1002", CreatedAt: base.Add(26 * time.Hour),
			FinancialStatus: "PAID", FulfillmentStatus: "UNFULFILLED",
			TotalPrice: usd("80.00"), SubtotalPrice: usd("72.00"), TotalTax: usd("8.00"),
			TotalShipping: usd("0.00"), TotalDiscounts: usd("5.00"), TotalRefunded: usd("20.00"),
			LineItems: []LineItem{{Title: "Canvas Tote", Quantity: 1}},
			Customer:  bruno, ChannelName: "Point of Sale",
		},
		{
			ID: "gid://shopify/Order/1003", Name: "#1003", CreatedAt: base.Add(50 * time.Hour),
			FinancialStatus: "PENDING", FulfillmentStatus: "UNFULFILLED",
			TotalPrice: usd("45.50"), SubtotalPrice: usd("45.50"), TotalTax: usd("0.00"),
			TotalShipping: usd("0.00"), TotalDiscounts: usd("0.00"), TotalRefunded: usd("0.00"),
			LineItems: []LineItem{{Title: "Enamel Mug", Quantity: 3}},
			Customer:  chloe,
		},
		{
			ID: "gid://shopify/Order/1004", Name: "#1004", CreatedAt: base.Add(74 * time.Hour),
			FinancialStatus: "PAID", FulfillmentStatus: "FULFILLED",
			TotalPrice: usd("210.00"), SubtotalPrice: usd("190.00"), TotalTax: usd("20.00"),
			TotalShipping: usd("0.00"), TotalDiscounts: usd("0.00"), TotalRefunded: usd("0.00"),
			LineItems: []LineItem{{Title: "Wool Blanket", Quantity: 1}},
			Customer:  alice, ChannelName: "Online Store",
		},
	}

	products := []Product{
		{ID: "gid://shopify/Product/1", Title: "Trail Bottle", Status: "ACTIVE", TotalInventory: 42, MinPrice: usd("24.00"), ProductType: "Drinkware", Vendor: "Pulse Goods"},
		{ID: "gid://shopify/Product/2", Title: "Canvas Tote", Status: "ACTIVE", TotalInventory: 3, MinPrice: usd("38.00"), ProductType: "Bags", Vendor: "Pulse Goods"},
		{ID: "gid://shopify/Product/3", Title: "Enamel Mug", Status: "DRAFT", TotalInventory: 120, MinPrice: usd("15.50"), ProductType: "Drinkware", Vendor: "Campline"},
		{ID: "gid://shopify/Product/4", Title: "Wool Blanket", Status: "ACTIVE", TotalInventory: 8, MinPrice: usd("190.00"), ProductType: "Home", Vendor: "Campline"},
	}

	customers := []Customer{
		{ID: alice.ID, DisplayName: alice.DisplayName, Email: alice.Email, NumberOfOrders: 4, AmountSpent: usd("612.00"), CreatedAt: base.AddDate(-1, 0, 0)},
		{ID: bruno.ID, DisplayName: bruno.DisplayName, Email: bruno.Email, NumberOfOrders: 1, AmountSpent: usd("80.00"), CreatedAt: base.AddDate(0, -2, 0)},
		{ID: chloe.ID, DisplayName: chloe.DisplayName, Email: chloe.Email, NumberOfOrders: 2, AmountSpent: usd("131.00"), CreatedAt: base.AddDate(0, -6, 0)},
	}

	return MockData{
		Shop: Shop{
			Name:            "Pulse Demo Store",
			Email:           "owner@pulse-demo.example",
			MyshopifyDomain: "pulse-demo.myshopify.com",
			PlanDisplayName: "Basic",
			CurrencyCode:    "USD",
		},
		Orders:             orders,
		Products:           products,
		Customers:          customers,
		AbandonedCheckouts: 6,
	}
}
