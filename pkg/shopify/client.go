package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultAPIVersion is the Admin API version used when Config leaves it empty.
const DefaultAPIVersion = "2024-10"

// Config configures the Admin API client.
type Config struct {
	ShopDomain  string // e.g. "demo-store.myshopify.com"
	AccessToken string
	APIVersion  string
	HTTPClient  *http.Client
}

// Client talks to the Shopify GraphQL Admin API.
type Client struct {
	endpoint string
	token    string
	client   *http.Client
}

// NewClient builds a client for one shop.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ShopDomain == "" {
		return nil, fmt.Errorf("shopify: shop domain is required")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("shopify: access token is required")
	}
	version := cfg.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	domain := strings.TrimSuffix(cfg.ShopDomain, "/")
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return &Client{
		endpoint: fmt.Sprintf("%s/admin/api/%s/graphql.json", domain, version),
		token:    cfg.AccessToken,
		client:   httpClient,
	}, nil
}

// FetchShop returns the merchant store context.
func (c *Client) FetchShop(ctx context.Context) (Shop, error) {
	var resp shopResponse
	if err := c.do(ctx, shopQuery, nil, &resp); err != nil {
		return Shop{}, err
	}
	return resp.Shop.toShop(), nil
}

// FetchOrders returns up to first recent orders, newest first.
func (c *Client) FetchOrders(ctx context.Context, first int) ([]Order, error) {
	var resp ordersResponse
	if err := c.do(ctx, ordersQuery, map[string]any{"first": boundedFirst(first)}, &resp); err != nil {
		return nil, err
	}
	orders := make([]Order, 0, len(resp.Orders.Edges))
	for _, edge := range resp.Orders.Edges {
		orders = append(orders, edge.Node.toOrder())
	}
	return orders, nil
}

// FetchProducts returns up to first recent products, newest first.
func (c *Client) FetchProducts(ctx context.Context, first int) ([]Product, error) {
	var resp productsResponse
	if err := c.do(ctx, productsQuery, map[string]any{"first": boundedFirst(first)}, &resp); err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(resp.Products.Edges))
	for _, edge := range resp.Products.Edges {
		products = append(products, edge.Node.toProduct())
	}
	return products, nil
}

// FetchCustomers returns up to first recent customers, newest first.
func (c *Client) FetchCustomers(ctx context.Context, first int) ([]Customer, error) {
	var resp customersResponse
	if err := c.do(ctx, customersQuery, map[string]any{"first": boundedFirst(first)}, &resp); err != nil {
		return nil, err
	}
	customers := make([]Customer, 0, len(resp.Customers.Edges))
	for _, edge := range resp.Customers.Edges {
		customers = append(customers, edge.Node.toCustomer())
	}
	return customers, nil
}

// CountAbandonedCheckouts counts started-but-not-completed checkouts within the
// first page of results.
func (c *Client) CountAbandonedCheckouts(ctx context.Context) (int, error) {
	var resp abandonedCheckoutsResponse
	if err := c.do(ctx, abandonedCheckoutsQuery, nil, &resp); err != nil {
		return 0, err
	}
	return len(resp.AbandonedCheckouts.Edges), nil
}

// CreateSubscription issues an appSubscriptionCreate mutation and returns the
// pending subscription plus the confirmation URL the merchant must visit.
func (c *Client) CreateSubscription(ctx context.Context, item SubscriptionLineItem) (AppSubscription, error) {
	if item.PlanName == "" {
		return AppSubscription{}, fmt.Errorf("shopify: subscription plan name is required")
	}
	variables := map[string]any{
		"name":      item.PlanName,
		"returnUrl": item.ReturnURL,
		"trialDays": item.TrialDays,
		"test":      item.TestCharge,
		"lineItems": []map[string]any{{
			"plan": map[string]any{
				"appRecurringPricingDetails": map[string]any{
					"price":    map[string]any{"amount": item.Price.Amount, "currencyCode": item.Price.CurrencyCode},
					"interval": item.Interval,
				},
			},
		}},
	}
	var resp subscriptionCreateResponse
	if err := c.do(ctx, subscriptionCreateMutation, variables, &resp); err != nil {
		return AppSubscription{}, err
	}
	payload := resp.AppSubscriptionCreate
	if len(payload.UserErrors) > 0 {
		first := payload.UserErrors[0]
		return AppSubscription{}, fmt.Errorf("shopify: subscription rejected: %s", first.Message)
	}
	return AppSubscription{
		ID:              payload.AppSubscription.ID,
		Name:            payload.AppSubscription.Name,
		Status:          payload.AppSubscription.Status,
		ConfirmationURL: payload.ConfirmationURL,
	}, nil
}

func (c *Client) do(ctx context.Context, query string, variables map[string]any, target any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("shopify: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return fmt.Errorf("shopify: remote error %d: %s", resp.StatusCode, buf.String())
	}
	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("shopify: decode response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("shopify: graphql error: %s", envelope.Errors[0].Message)
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return fmt.Errorf("shopify: decode data: %w", err)
	}
	return nil
}

func boundedFirst(first int) int {
	if first <= 0 {
		return 50
	}
	if first > 250 {
		return 250
	}
	return first
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type moneyBag struct {
	ShopMoney Money `json:"shopMoney"`
}

type shopResponse struct {
	Shop shopNode `json:"shop"`
}

type shopNode struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	MyshopifyDomain string `json:"myshopifyDomain"`
	Plan            struct {
		DisplayName string `json:"displayName"`
	} `json:"plan"`
	CurrencyCode string `json:"currencyCode"`
}

func (n shopNode) toShop() Shop {
	return Shop{
		Name:            n.Name,
		Email:           n.Email,
		MyshopifyDomain: n.MyshopifyDomain,
		PlanDisplayName: n.Plan.DisplayName,
		CurrencyCode:    n.CurrencyCode,
	}
}

type ordersResponse struct {
	Orders struct {
		Edges []struct {
			Node orderNode `json:"node"`
		} `json:"edges"`
	} `json:"orders"`
}

type orderNode struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	CreatedAt                time.Time `json:"createdAt"`
	DisplayFinancialStatus   string    `json:"displayFinancialStatus"`
	DisplayFulfillmentStatus string    `json:"displayFulfillmentStatus"`
	TotalPriceSet            moneyBag  `json:"totalPriceSet"`
	SubtotalPriceSet         moneyBag  `json:"subtotalPriceSet"`
	TotalTaxSet              moneyBag  `json:"totalTaxSet"`
	TotalShippingPriceSet    moneyBag  `json:"totalShippingPriceSet"`
	TotalDiscountsSet        moneyBag  `json:"totalDiscountsSet"`
	TotalRefundedSet         moneyBag  `json:"totalRefundedSet"`
	LineItems                struct {
		Edges []struct {
			Node struct {
				Title    string `json:"title"`
				Quantity int    `json:"quantity"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"lineItems"`
	Customer *struct {
		ID             string `json:"id"`
		DisplayName    string `json:"displayName"`
		Email          string `json:"email"`
		NumberOfOrders int    `json:"numberOfOrders,string"`
	} `json:"customer"`
	ChannelInformation *struct {
		ChannelDefinition struct {
			ChannelName string `json:"channelName"`
		} `json:"channelDefinition"`
	} `json:"channelInformation"`
}

func (n orderNode) toOrder() Order {
	order := Order{
		ID:                n.ID,
		Name:              n.Name,
		CreatedAt:         n.CreatedAt,
		FinancialStatus:   n.DisplayFinancialStatus,
		FulfillmentStatus: n.DisplayFulfillmentStatus,
		TotalPrice:        n.TotalPriceSet.ShopMoney,
		SubtotalPrice:     n.SubtotalPriceSet.ShopMoney,
		TotalTax:          n.TotalTaxSet.ShopMoney,
		TotalShipping:     n.TotalShippingPriceSet.ShopMoney,
		TotalDiscounts:    n.TotalDiscountsSet.ShopMoney,
		TotalRefunded:     n.TotalRefundedSet.ShopMoney,
	}
	for _, edge := range n.LineItems.Edges {
		order.LineItems = append(order.LineItems, LineItem{Title: edge.Node.Title, Quantity: edge.Node.Quantity})
	}
	if n.Customer != nil {
		order.Customer = &OrderCustomer{
			ID:             n.Customer.ID,
			DisplayName:    n.Customer.DisplayName,
			Email:          n.Customer.Email,
			NumberOfOrders: n.Customer.NumberOfOrders,
		}
	}
	if n.ChannelInformation != nil {
		order.ChannelName = n.ChannelInformation.ChannelDefinition.ChannelName
	}
	return order
}

type productsResponse struct {
	Products struct {
		Edges []struct {
			Node productNode `json:"node"`
		} `json:"edges"`
	} `json:"products"`
}

type productNode struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Status         string `json:"status"`
	TotalInventory int    `json:"totalInventory"`
	ProductType    string `json:"productType"`
	Vendor         string `json:"vendor"`
	PriceRangeV2   struct {
		MinVariantPrice Money `json:"minVariantPrice"`
	} `json:"priceRangeV2"`
}

func (n productNode) toProduct() Product {
	return Product{
		ID:             n.ID,
		Title:          n.Title,
		Status:         n.Status,
		TotalInventory: n.TotalInventory,
		MinPrice:       n.PriceRangeV2.MinVariantPrice,
		ProductType:    n.ProductType,
		Vendor:         n.Vendor,
	}
}

type customersResponse struct {
	Customers struct {
		Edges []struct {
			Node customerNode `json:"node"`
		} `json:"edges"`
	} `json:"customers"`
}

type customerNode struct {
	ID             string    `json:"id"`
	DisplayName    string    `json:"displayName"`
	Email          string    `json:"email"`
	NumberOfOrders int       `json:"numberOfOrders,string"`
	AmountSpent    Money     `json:"amountSpent"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (n customerNode) toCustomer() Customer {
	return Customer{
		ID:             n.ID,
		DisplayName:    n.DisplayName,
		Email:          n.Email,
		NumberOfOrders: n.NumberOfOrders,
		AmountSpent:    n.AmountSpent,
		CreatedAt:      n.CreatedAt,
	}
}

type abandonedCheckoutsResponse struct {
	AbandonedCheckouts struct {
		Edges []struct {
			Node struct {
				ID string `json:"id"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"abandonedCheckouts"`
}

type subscriptionCreateResponse struct {
	AppSubscriptionCreate struct {
		AppSubscription struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"appSubscription"`
		ConfirmationURL string `json:"confirmationUrl"`
		UserErrors      []struct {
			Field   []string `json:"field"`
			Message string   `json:"message"`
		} `json:"userErrors"`
	} `json:"appSubscriptionCreate"`
}
