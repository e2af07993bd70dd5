package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppulse/pulse/pkg/metrics"
	"github.com/shoppulse/pulse/pkg/shopify"
)

func healthyInput(now time.Time) Input {
	return Input{
		Summary: metrics.Summary{
			Currency:          "USD",
			OrderCount:        20,
			TotalRevenue:      decimal.NewFromInt(2400),
			AverageOrderValue: decimal.NewFromInt(120),
			RefundRate:        1.0,
			Returning:         metrics.SegmentRevenue{Orders: 9, Revenue: decimal.NewFromInt(1100)},
			NewCustomers:      metrics.SegmentRevenue{Orders: 11, Revenue: decimal.NewFromInt(1300)},
			Statuses:          metrics.StatusCounts{Paid: 18, Pending: 2, Fulfilled: 17, Unfulfilled: 3},
			RevenueByDay: []metrics.DayRevenue{
				{Day: "2026-03-01", Revenue: decimal.NewFromInt(400)},
				{Day: "2026-03-02", Revenue: decimal.NewFromInt(900)},
				{Day: "2026-03-03", Revenue: decimal.NewFromInt(1100)},
			},
		},
		Products: []shopify.Product{
			{ID: "p1", Title: "Tote", TotalInventory: 40},
			{ID: "p2", Title: "Mug", TotalInventory: 25},
		},
		Funnel: metrics.BuildFunnel(20, 8),
		Now:    now,
	}
}

func TestEvaluateHealthyStore(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	report := Evaluate(healthyInput(now))

	require.Len(t, report.Categories, 4)
	assert.Equal(t, CategorySales, report.Categories[0].Key)
	assert.Equal(t, TrendUp, report.Categories[0].Trend)
	assert.GreaterOrEqual(t, report.OverallScore, 70)
	assert.Equal(t, now, report.GeneratedAt)

	for _, item := range report.ActionItems {
		assert.NotEqual(t, PriorityHigh, item.Priority)
	}
}

func TestEvaluateFlagsLowStock(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	in := healthyInput(now)
	in.Products = append(in.Products, shopify.Product{ID: "p3", Title: "Candle", TotalInventory: 2})

	report := Evaluate(in)

	require.NotEmpty(t, report.ActionItems)
	assert.Equal(t, PriorityHigh, report.ActionItems[0].Priority)
	assert.Equal(t, CategoryInventory, report.ActionItems[0].Category)
	assert.Equal(t, now.AddDate(0, 0, 3), report.ActionItems[0].Deadline)

	inventory := report.Categories[1]
	assert.Equal(t, CategoryInventory, inventory.Key)
	assert.Equal(t, TrendDown, inventory.Trend)
	assert.Less(t, inventory.Score, 95)
}

func TestEvaluateRefundSpikeLowersSalesScore(t *testing.T) {
	in := healthyInput(time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC))
	spiked := in
	spiked.Summary.RefundRate = 15.0

	healthy := Evaluate(in)
	degraded := Evaluate(spiked)

	assert.Less(t, degraded.Categories[0].Score, healthy.Categories[0].Score)

	found := false
	for _, item := range degraded.ActionItems {
		if item.Category == CategorySales && item.Priority == PriorityMedium {
			found = true
		}
	}
	assert.True(t, found, "expected a refund follow-up action item")
}

func TestEvaluateEmptyStore(t *testing.T) {
	report := Evaluate(Input{Now: time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)})

	require.Len(t, report.Categories, 4)
	for _, cat := range report.Categories {
		assert.GreaterOrEqual(t, cat.Score, 0)
		assert.LessOrEqual(t, cat.Score, 100)
	}
	assert.Equal(t, TrendFlat, report.Categories[0].Trend)
}

func TestEvaluateDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	first := Evaluate(healthyInput(now))
	second := Evaluate(healthyInput(now))
	assert.Equal(t, first, second)
}
