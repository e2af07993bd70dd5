package metrics

import (
	"testing"

	"github.com/shoppulse/pulse/pkg/shopify"
)

func TestMatchesQueryCaseInsensitive(t *testing.T) {
	if !MatchesQuery("ali", "Alice Nguyen") {
		t.Fatal("expected substring match")
	}
	if !MatchesQuery("NGUYEN", "Alice Nguyen") {
		t.Fatal("expected case-insensitive match")
	}
	if MatchesQuery("bruno", "Alice Nguyen") {
		t.Fatal("expected no match")
	}
	if !MatchesQuery("", "anything") {
		t.Fatal("empty query must match")
	}
}

func TestFilterOrders(t *testing.T) {
	orders := []shopify.Order{
		{Name: "#1001", Customer: &shopify.OrderCustomer{DisplayName: "Alice Nguyen"}},
		{Name: "#1002", Customer: &shopify.OrderCustomer{DisplayName: "Bruno Costa"}},
		{Name: "#1003"},
	}

	if got := FilterOrders(orders, ""); len(got) != 3 {
		t.Fatalf("empty query should return all, got %d", len(got))
	}
	if got := FilterOrders(orders, "alice"); len(got) != 1 || got[0].Name != "#1001" {
		t.Fatalf("expected Alice's order, got %#v", got)
	}
	if got := FilterOrders(orders, "1003"); len(got) != 1 {
		t.Fatalf("expected match on order name, got %#v", got)
	}
	if got := FilterOrders(orders, "nobody"); len(got) != 0 {
		t.Fatalf("expected no matches, got %#v", got)
	}
}

func TestFilterProductsAndCustomers(t *testing.T) {
	products := []shopify.Product{{Title: "Trail Bottle"}, {Title: "Canvas Tote"}}
	if got := FilterProducts(products, "tote"); len(got) != 1 || got[0].Title != "Canvas Tote" {
		t.Fatalf("unexpected products: %#v", got)
	}

	customers := []shopify.Customer{
		{DisplayName: "Alice Nguyen", Email: "alice@example.com"},
		{DisplayName: "Bruno Costa", Email: "bruno@example.com"},
	}
	if got := FilterCustomers(customers, "EXAMPLE.COM"); len(got) != 2 {
		t.Fatalf("expected both customers via email, got %#v", got)
	}
	if got := FilterCustomers(customers, "costa"); len(got) != 1 || got[0].Email != "bruno@example.com" {
		t.Fatalf("unexpected customers: %#v", got)
	}
}
