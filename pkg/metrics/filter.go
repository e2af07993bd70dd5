package metrics

import (
	"strings"

	"github.com/shoppulse/pulse/pkg/shopify"
)

// MatchesQuery reports whether any field contains query case-insensitively.
// The empty query matches everything.
func MatchesQuery(query string, fields ...string) bool {
	if query == "" {
		return true
	}
	needle := strings.ToLower(query)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// FilterOrders keeps orders whose name or customer name contains query.
func FilterOrders(orders []shopify.Order, query string) []shopify.Order {
	if query == "" {
		return orders
	}
	out := make([]shopify.Order, 0, len(orders))
	for _, order := range orders {
		customer := ""
		if order.Customer != nil {
			customer = order.Customer.DisplayName
		}
		if MatchesQuery(query, order.Name, customer) {
			out = append(out, order)
		}
	}
	return out
}

// FilterProducts keeps products whose title contains query.
func FilterProducts(products []shopify.Product, query string) []shopify.Product {
	if query == "" {
		return products
	}
	out := make([]shopify.Product, 0, len(products))
	for _, product := range products {
		if MatchesQuery(query, product.Title) {
			out = append(out, product)
		}
	}
	return out
}

// FilterCustomers keeps customers whose name or email contains query.
func FilterCustomers(customers []shopify.Customer, query string) []shopify.Customer {
	if query == "" {
		return customers
	}
	out := make([]shopify.Customer, 0, len(customers))
	for _, customer := range customers {
		if MatchesQuery(query, customer.DisplayName, customer.Email) {
			out = append(out, customer)
		}
	}
	return out
}
