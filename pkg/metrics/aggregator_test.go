package metrics

import (
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/shopify"
)

func usd(amount string) shopify.Money {
	return shopify.Money{Amount: amount, CurrencyCode: "USD"}
}

func order(name, total, refunded, tax string, created time.Time, channel string, lifetimeOrders int) shopify.Order {
	o := shopify.Order{
		Name:          name,
		CreatedAt:     created,
		TotalPrice:    usd(total),
		SubtotalPrice: usd(total),
		TotalTax:      usd(tax),
		TotalRefunded: usd(refunded),
		ChannelName:   channel,
	}
	if lifetimeOrders > 0 {
		o.Customer = &shopify.OrderCustomer{ID: "c-" + name, NumberOfOrders: lifetimeOrders}
	}
	return o
}

func TestAggregateRefundScenario(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	orders := []shopify.Order{
		order("#1", "100.00", "0.00", "0.00", base, "", 1),
		order("#2", "100.00", "50.00", "0.00", base.Add(24*time.Hour), "", 2),
		order("#3", "100.00", "0.00", "0.00", base.Add(48*time.Hour), "", 1),
	}

	summary := Aggregate(orders, Options{})

	if !summary.TotalRevenue.Equal(decimal.RequireFromString("300.00")) {
		t.Fatalf("expected revenue 300.00, got %s", summary.TotalRevenue)
	}
	if !summary.TotalRefunded.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected refunded 50.00, got %s", summary.TotalRefunded)
	}
	if summary.RefundRate != 33.3 {
		t.Fatalf("expected refund rate 33.3, got %v", summary.RefundRate)
	}
	if !summary.NetRevenue.Equal(decimal.RequireFromString("250.00")) {
		t.Fatalf("expected net revenue 250.00, got %s", summary.NetRevenue)
	}
	if !summary.AverageOrderValue.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected AOV 100.00, got %s", summary.AverageOrderValue)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	summary := Aggregate(nil, Options{})

	if summary.OrderCount != 0 || summary.RefundRate != 0 {
		t.Fatalf("expected zero counts, got %#v", summary)
	}
	if !summary.TotalRevenue.IsZero() || !summary.NetRevenue.IsZero() || !summary.AverageOrderValue.IsZero() {
		t.Fatalf("expected zero money values, got %#v", summary)
	}
	if summary.Currency != DefaultCurrency {
		t.Fatalf("expected default currency, got %q", summary.Currency)
	}
	if len(summary.RevenueByDay) != 0 || len(summary.RevenueByChannel) != 0 {
		t.Fatalf("expected empty groupings, got %#v", summary)
	}
}

func TestAggregateChannelPartition(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	orders := []shopify.Order{
		order("#1", "120.00", "0.00", "0.00", base, "", 1),
		order("#2", "80.00", "0.00", "0.00", base, "Point of Sale", 1),
		order("#3", "45.50", "0.00", "0.00", base, "Online Store", 1),
		order("#4", "210.00", "0.00", "0.00", base, "Point of Sale", 1),
	}

	summary := Aggregate(orders, Options{})

	channelSum := decimal.Zero
	channelOrders := 0
	for _, bucket := range summary.RevenueByChannel {
		channelSum = channelSum.Add(bucket.Revenue)
		channelOrders += bucket.Orders
	}
	if !channelSum.Equal(summary.TotalRevenue) {
		t.Fatalf("channel sums %s != total %s", channelSum, summary.TotalRevenue)
	}
	if channelOrders != summary.OrderCount {
		t.Fatalf("channel orders %d != total %d", channelOrders, summary.OrderCount)
	}
	// no-channel orders merge into the Online Store bucket
	if len(summary.RevenueByChannel) != 2 {
		t.Fatalf("expected 2 channels, got %#v", summary.RevenueByChannel)
	}
	if summary.RevenueByChannel[0].Channel != "Point of Sale" {
		t.Fatalf("expected highest-revenue channel first, got %#v", summary.RevenueByChannel)
	}
}

func TestAggregateDayPartition(t *testing.T) {
	base := time.Date(2026, time.March, 2, 23, 30, 0, 0, time.UTC)
	orders := []shopify.Order{
		order("#1", "10.00", "0.00", "0.00", base, "", 1),
		order("#2", "20.00", "0.00", "0.00", base.Add(time.Hour), "", 1), // crosses into next UTC day
		order("#3", "30.00", "0.00", "0.00", base.Add(2*time.Hour), "", 1),
	}

	summary := Aggregate(orders, Options{})

	daySum := decimal.Zero
	for _, bucket := range summary.RevenueByDay {
		daySum = daySum.Add(bucket.Revenue)
	}
	if !daySum.Equal(summary.TotalRevenue) {
		t.Fatalf("day sums %s != total %s", daySum, summary.TotalRevenue)
	}
	if len(summary.RevenueByDay) != 2 {
		t.Fatalf("expected 2 days, got %#v", summary.RevenueByDay)
	}
	if summary.RevenueByDay[0].Day != "2026-03-02" || summary.RevenueByDay[1].Day != "2026-03-03" {
		t.Fatalf("expected ascending days, got %#v", summary.RevenueByDay)
	}
}

func TestAggregateWindowZeroFills(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	orders := []shopify.Order{order("#1", "10.00", "0.00", "0.00", base, "", 1)}
	window := &Window{From: base.AddDate(0, 0, -2), To: base}

	summary := Aggregate(orders, Options{Window: window})

	if len(summary.RevenueByDay) != 3 {
		t.Fatalf("expected 3 zero-filled days, got %#v", summary.RevenueByDay)
	}
	if !summary.RevenueByDay[0].Revenue.IsZero() || summary.RevenueByDay[0].Day != "2026-02-28" {
		t.Fatalf("expected leading zero day, got %#v", summary.RevenueByDay[0])
	}
	if summary.RevenueByDay[2].Orders != 1 {
		t.Fatalf("expected order on final day, got %#v", summary.RevenueByDay[2])
	}
}

func TestAggregateIdempotent(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	orders := []shopify.Order{
		order("#1", "120.00", "0.00", "10.00", base, "", 4),
		order("#2", "80.00", "20.00", "8.00", base.Add(26*time.Hour), "Point of Sale", 1),
		order("#3", "45.50", "0.00", "0.00", base.Add(50*time.Hour), "", 2),
	}

	first := Aggregate(orders, Options{})
	second := Aggregate(orders, Options{})

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("aggregation not deterministic:\n%#v\n%#v", first, second)
	}
}

func TestAggregateNewVersusReturning(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	orders := []shopify.Order{
		order("#1", "100.00", "0.00", "0.00", base, "", 4), // returning
		order("#2", "60.00", "0.00", "0.00", base, "", 1),  // first order
		order("#3", "40.00", "0.00", "0.00", base, "", 0),  // guest, no customer
	}

	summary := Aggregate(orders, Options{})

	if summary.Returning.Orders != 1 || !summary.Returning.Revenue.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("unexpected returning segment: %#v", summary.Returning)
	}
	if summary.NewCustomers.Orders != 2 || !summary.NewCustomers.Revenue.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("unexpected new segment: %#v", summary.NewCustomers)
	}
	segments := summary.Returning.Revenue.Add(summary.NewCustomers.Revenue)
	if !segments.Equal(summary.TotalRevenue) {
		t.Fatalf("segment sums %s != total %s", segments, summary.TotalRevenue)
	}
}

func TestAggregateHeatmapPlacement(t *testing.T) {
	// 2026-03-02 is a Monday
	created := time.Date(2026, time.March, 2, 14, 5, 0, 0, time.UTC)
	summary := Aggregate([]shopify.Order{order("#1", "42.00", "0.00", "0.00", created, "", 1)}, Options{})

	if summary.Heatmap[0][14] != 42 {
		t.Fatalf("expected revenue in Monday 14:00 cell, got %#v", summary.Heatmap[0])
	}
}

func TestAggregateExcludesForeignCurrency(t *testing.T) {
	base := time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)
	foreign := order("#2", "100.00", "0.00", "0.00", base, "", 1)
	foreign.TotalPrice.CurrencyCode = "EUR"
	orders := []shopify.Order{
		order("#1", "100.00", "0.00", "0.00", base, "", 1),
		foreign,
	}

	summary := Aggregate(orders, Options{})

	if summary.Currency != "USD" {
		t.Fatalf("expected USD summary, got %q", summary.Currency)
	}
	if summary.OrderCount != 1 || !summary.TotalRevenue.Equal(decimal.RequireFromString("100.00")) {
		t.Fatalf("expected foreign order excluded, got %#v", summary)
	}
	if summary.ExcludedOrders != 1 || summary.ExcludedCurrencies["EUR"] != 1 {
		t.Fatalf("expected exclusion recorded, got %#v", summary)
	}
}

func TestPercentZeroDenominator(t *testing.T) {
	if got := Percent(5, 0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Percent(1, 3); got != 33.3 {
		t.Fatalf("expected 33.3, got %v", got)
	}
}

func TestBuildFunnel(t *testing.T) {
	funnel := BuildFunnel(4, 6)
	if funnel.Started != 10 || funnel.ConversionRate != 40 || funnel.AbandonmentRate != 60 {
		t.Fatalf("unexpected funnel: %#v", funnel)
	}

	empty := BuildFunnel(0, 0)
	if empty.ConversionRate != 0 || empty.AbandonmentRate != 0 {
		t.Fatalf("expected zero rates, got %#v", empty)
	}
}
