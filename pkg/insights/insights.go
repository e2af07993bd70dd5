// Package insights scores store health from already-aggregated commerce data.
// Scoring is deterministic rule evaluation so that the same inputs always
// produce the same report.
package insights

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/metrics"
	"github.com/shoppulse/pulse/pkg/shopify"
)

// Category keys produced by Evaluate.
const (
	CategorySales       = "sales"
	CategoryInventory   = "inventory"
	CategoryCustomers   = "customers"
	CategoryFulfillment = "fulfillment"
)

// Trend directions attached to each category.
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

// Action item priorities, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// LowStockThreshold marks products that need restocking.
const LowStockThreshold = 10

// Category is one scored dimension of store health.
type Category struct {
	Key             string
	Label           string
	Score           int // 0..100
	Trend           string
	Insights        []string
	Recommendations []string
}

// ActionItem is a prioritized merchant follow-up derived from the rules.
type ActionItem struct {
	Title    string
	Category string
	Priority string
	Deadline time.Time
}

// Report is the full output of one evaluation pass.
type Report struct {
	OverallScore int
	Categories   []Category
	ActionItems  []ActionItem
	GeneratedAt  time.Time
}

// Input collects the pre-aggregated data the rules run over. Now defaults to
// the current UTC time when zero.
type Input struct {
	Summary   metrics.Summary
	Products  []shopify.Product
	Customers []shopify.Customer
	Funnel    metrics.Funnel
	Now       time.Time
}

// Evaluate runs every rule and returns the scored report. Categories are
// ordered sales, inventory, customers, fulfillment; action items are ordered
// by priority then deadline.
func Evaluate(in Input) Report {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	categories := []Category{
		scoreSales(in.Summary),
		scoreInventory(in.Products),
		scoreCustomers(in.Summary, in.Customers),
		scoreFulfillment(in.Summary),
	}

	total := 0
	for _, cat := range categories {
		total += cat.Score
	}

	report := Report{
		OverallScore: total / len(categories),
		Categories:   categories,
		ActionItems:  buildActionItems(in, now),
		GeneratedAt:  now,
	}
	return report
}

func scoreSales(summary metrics.Summary) Category {
	cat := Category{Key: CategorySales, Label: "Sales", Score: 70, Trend: revenueTrend(summary.RevenueByDay)}
	if summary.OrderCount == 0 {
		cat.Score = 40
		cat.Trend = TrendFlat
		cat.Insights = append(cat.Insights, "No orders in the selected window")
		cat.Recommendations = append(cat.Recommendations, "Run a promotion to restart sales momentum")
		return cat
	}
	cat.Score += 10
	switch {
	case summary.RefundRate <= 2:
		cat.Score += 15
		cat.Insights = append(cat.Insights, fmt.Sprintf("Refund rate is healthy at %.1f%%", summary.RefundRate))
	case summary.RefundRate <= 5:
		cat.Score += 5
	case summary.RefundRate > 10:
		cat.Score -= 20
		cat.Insights = append(cat.Insights, fmt.Sprintf("Refund rate of %.1f%% is well above normal", summary.RefundRate))
		cat.Recommendations = append(cat.Recommendations, "Review recently refunded orders for a shared cause")
	default:
		cat.Score -= 5
	}
	if summary.AverageOrderValue.GreaterThan(decimal.NewFromInt(75)) {
		cat.Score += 5
		cat.Insights = append(cat.Insights, "Average order value is above $75")
	} else {
		cat.Recommendations = append(cat.Recommendations, "Bundle complementary products to lift average order value")
	}
	cat.Score = clampScore(cat.Score)
	return cat
}

func scoreInventory(products []shopify.Product) Category {
	cat := Category{Key: CategoryInventory, Label: "Inventory", Score: 95, Trend: TrendFlat}
	if len(products) == 0 {
		cat.Score = 50
		cat.Insights = append(cat.Insights, "No products in the catalog")
		return cat
	}
	low := lowStockProducts(products)
	out := 0
	for _, product := range low {
		if product.TotalInventory == 0 {
			out++
		}
	}
	cat.Score -= 10*len(low) + 15*out
	if len(low) > 0 {
		cat.Trend = TrendDown
		cat.Insights = append(cat.Insights, fmt.Sprintf("%d product(s) below %d units", len(low), LowStockThreshold))
		cat.Recommendations = append(cat.Recommendations, "Reorder low-stock items before they sell out")
	} else {
		cat.Insights = append(cat.Insights, "All products are sufficiently stocked")
	}
	cat.Score = clampScore(cat.Score)
	return cat
}

func scoreCustomers(summary metrics.Summary, customers []shopify.Customer) Category {
	cat := Category{Key: CategoryCustomers, Label: "Customers", Score: 50, Trend: TrendFlat}
	share := metrics.Percent(summary.Returning.Orders, summary.OrderCount)
	cat.Score += int(share / 2)
	switch {
	case share >= 40:
		cat.Trend = TrendUp
		cat.Insights = append(cat.Insights, fmt.Sprintf("%.1f%% of orders come from returning customers", share))
	case share > 0:
		cat.Insights = append(cat.Insights, fmt.Sprintf("Returning customers place %.1f%% of orders", share))
		cat.Recommendations = append(cat.Recommendations, "Start a post-purchase email flow to win repeat orders")
	default:
		cat.Recommendations = append(cat.Recommendations, "Launch a loyalty incentive for first-time buyers")
	}
	repeat := 0
	for _, customer := range customers {
		if customer.NumberOfOrders > 1 {
			repeat++
		}
	}
	if repeat > 0 {
		cat.Insights = append(cat.Insights, fmt.Sprintf("%d customer(s) have purchased more than once", repeat))
	}
	cat.Score = clampScore(cat.Score)
	return cat
}

func scoreFulfillment(summary metrics.Summary) Category {
	cat := Category{Key: CategoryFulfillment, Label: "Fulfillment", Score: 100, Trend: TrendFlat}
	if summary.OrderCount == 0 {
		cat.Score = 70
		return cat
	}
	backlog := metrics.Percent(summary.Statuses.Unfulfilled, summary.OrderCount)
	cat.Score -= int(backlog * 0.6)
	if backlog > 50 {
		cat.Trend = TrendDown
		cat.Insights = append(cat.Insights, fmt.Sprintf("%.1f%% of orders are awaiting fulfillment", backlog))
		cat.Recommendations = append(cat.Recommendations, "Clear the fulfillment backlog to protect delivery times")
	} else {
		cat.Insights = append(cat.Insights, fmt.Sprintf("%d of %d orders fulfilled", summary.Statuses.Fulfilled, summary.OrderCount))
	}
	cat.Score = clampScore(cat.Score)
	return cat
}

func buildActionItems(in Input, now time.Time) []ActionItem {
	var items []ActionItem
	if low := lowStockProducts(in.Products); len(low) > 0 {
		items = append(items, ActionItem{
			Title:    fmt.Sprintf("Restock %d product(s) below %d units", len(low), LowStockThreshold),
			Category: CategoryInventory,
			Priority: PriorityHigh,
			Deadline: now.AddDate(0, 0, 3),
		})
	}
	if in.Summary.RefundRate > 5 {
		items = append(items, ActionItem{
			Title:    "Investigate elevated refund rate",
			Category: CategorySales,
			Priority: PriorityMedium,
			Deadline: now.AddDate(0, 0, 7),
		})
	}
	if in.Funnel.AbandonmentRate > 50 {
		items = append(items, ActionItem{
			Title:    "Set up abandoned checkout recovery emails",
			Category: CategorySales,
			Priority: PriorityMedium,
			Deadline: now.AddDate(0, 0, 7),
		})
	}
	if metrics.Percent(in.Summary.Returning.Orders, in.Summary.OrderCount) < 30 {
		items = append(items, ActionItem{
			Title:    "Plan a repeat-purchase campaign",
			Category: CategoryCustomers,
			Priority: PriorityLow,
			Deadline: now.AddDate(0, 0, 14),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := priorityRank(items[i].Priority), priorityRank(items[j].Priority)
		if pi != pj {
			return pi < pj
		}
		return items[i].Deadline.Before(items[j].Deadline)
	})
	return items
}

func lowStockProducts(products []shopify.Product) []shopify.Product {
	var low []shopify.Product
	for _, product := range products {
		if product.TotalInventory < LowStockThreshold {
			low = append(low, product)
		}
	}
	return low
}

// revenueTrend compares the back half of the daily series against the front
// half.
func revenueTrend(days []metrics.DayRevenue) string {
	if len(days) < 2 {
		return TrendFlat
	}
	mid := len(days) / 2
	front, back := decimal.Zero, decimal.Zero
	for _, day := range days[:mid] {
		front = front.Add(day.Revenue)
	}
	for _, day := range days[mid:] {
		back = back.Add(day.Revenue)
	}
	switch back.Cmp(front) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	default:
		return TrendFlat
	}
}

func priorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
