// Package metrics reduces raw Admin API records into the aggregate KPIs the
// dashboard pages render. All monetary math runs on decimal values parsed from
// the API's string-encoded amounts; floats only appear at the presentation
// boundary (percentages, heatmap cells).
package metrics

import (
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/shopify"
)

// DefaultCurrency is assumed when no order carries a currency code.
const DefaultCurrency = "USD"

// Window bounds the calendar days zero-filled in RevenueByDay. Both ends are
// inclusive and interpreted in UTC.
type Window struct {
	From time.Time
	To   time.Time
}

// Options tunes one aggregation pass.
type Options struct {
	// Currency pins the summary currency. Empty means the first order's
	// currency, falling back to DefaultCurrency.
	Currency string
	// Window, when set, zero-fills RevenueByDay for days without orders.
	Window *Window
}

// DayRevenue is one calendar day's slice of revenue.
type DayRevenue struct {
	Day     string // YYYY-MM-DD, UTC
	Revenue decimal.Decimal
	Orders  int
}

// ChannelRevenue is one sales channel's slice of revenue.
type ChannelRevenue struct {
	Channel string
	Revenue decimal.Decimal
	Orders  int
}

// SegmentRevenue splits revenue by customer segment.
type SegmentRevenue struct {
	Revenue decimal.Decimal
	Orders  int
}

// StatusCounts tallies orders by financial and fulfillment status.
type StatusCounts struct {
	Paid        int
	Pending     int
	Fulfilled   int
	Unfulfilled int
}

// Summary is the fixed-shape result of one aggregation pass. A zero-order
// input produces a valid Summary with zero values throughout.
type Summary struct {
	Currency          string
	OrderCount        int
	RefundedCount     int
	TotalRevenue      decimal.Decimal
	Subtotal          decimal.Decimal
	TotalTax          decimal.Decimal
	TotalShipping     decimal.Decimal
	TotalDiscounts    decimal.Decimal
	TotalRefunded     decimal.Decimal
	NetRevenue        decimal.Decimal // revenue minus refunds minus tax
	GrossProfit       decimal.Decimal // subtotal minus refunds
	AverageOrderValue decimal.Decimal
	RefundRate        float64 // percent of orders with any refund, one decimal
	RevenueByDay      []DayRevenue
	Heatmap           [7][24]float64 // weekday (Mon=0) x UTC hour
	NewCustomers      SegmentRevenue
	Returning         SegmentRevenue
	RevenueByChannel  []ChannelRevenue
	Statuses          StatusCounts

	// Orders whose currency differs from Currency are excluded from every
	// monetary bucket instead of being summed without conversion.
	ExcludedOrders     int
	ExcludedCurrencies map[string]int
}

// OnlineStoreChannel is the channel bucket for orders without channel info.
const OnlineStoreChannel = "Online Store"

// Aggregate reduces an already-fetched order list into a Summary. It is pure:
// the same input always yields the same output, and no input is mutated.
func Aggregate(orders []shopify.Order, opts Options) Summary {
	summary := Summary{Currency: summaryCurrency(orders, opts)}

	days := map[string]*DayRevenue{}
	channels := map[string]*ChannelRevenue{}

	for _, order := range orders {
		if code := order.TotalPrice.CurrencyCode; code != "" && code != summary.Currency {
			summary.ExcludedOrders++
			if summary.ExcludedCurrencies == nil {
				summary.ExcludedCurrencies = map[string]int{}
			}
			summary.ExcludedCurrencies[code]++
			continue
		}

		total := order.TotalPrice.Decimal()
		summary.OrderCount++
		summary.TotalRevenue = summary.TotalRevenue.Add(total)
		summary.Subtotal = summary.Subtotal.Add(order.SubtotalPrice.Decimal())
		summary.TotalTax = summary.TotalTax.Add(order.TotalTax.Decimal())
		summary.TotalShipping = summary.TotalShipping.Add(order.TotalShipping.Decimal())
		summary.TotalDiscounts = summary.TotalDiscounts.Add(order.TotalDiscounts.Decimal())
		summary.TotalRefunded = summary.TotalRefunded.Add(order.TotalRefunded.Decimal())
		if order.Refunded() {
			summary.RefundedCount++
		}

		day := order.CreatedAt.UTC().Format(time.DateOnly)
		bucket, ok := days[day]
		if !ok {
			bucket = &DayRevenue{Day: day}
			days[day] = bucket
		}
		bucket.Revenue = bucket.Revenue.Add(total)
		bucket.Orders++

		channel := order.ChannelName
		if channel == "" {
			channel = OnlineStoreChannel
		}
		chBucket, ok := channels[channel]
		if !ok {
			chBucket = &ChannelRevenue{Channel: channel}
			channels[channel] = chBucket
		}
		chBucket.Revenue = chBucket.Revenue.Add(total)
		chBucket.Orders++

		created := order.CreatedAt.UTC()
		weekday := (int(created.Weekday()) + 6) % 7 // Monday first
		summary.Heatmap[weekday][created.Hour()] += total.InexactFloat64()

		if order.Customer != nil && order.Customer.NumberOfOrders > 1 {
			summary.Returning.Revenue = summary.Returning.Revenue.Add(total)
			summary.Returning.Orders++
		} else {
			summary.NewCustomers.Revenue = summary.NewCustomers.Revenue.Add(total)
			summary.NewCustomers.Orders++
		}

		countStatus(&summary.Statuses, order)
	}

	summary.NetRevenue = summary.TotalRevenue.Sub(summary.TotalRefunded).Sub(summary.TotalTax)
	summary.GrossProfit = summary.Subtotal.Sub(summary.TotalRefunded)
	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.TotalRevenue.Div(decimal.NewFromInt(int64(summary.OrderCount))).Round(2)
	}
	summary.RefundRate = Percent(summary.RefundedCount, summary.OrderCount)
	summary.RevenueByDay = sortedDays(days, opts.Window)
	summary.RevenueByChannel = sortedChannels(channels)
	return summary
}

func summaryCurrency(orders []shopify.Order, opts Options) string {
	if opts.Currency != "" {
		return opts.Currency
	}
	for _, order := range orders {
		if code := order.TotalPrice.CurrencyCode; code != "" {
			return code
		}
	}
	return DefaultCurrency
}

func countStatus(counts *StatusCounts, order shopify.Order) {
	switch order.FinancialStatus {
	case "PAID":
		counts.Paid++
	case "PENDING":
		counts.Pending++
	}
	switch order.FulfillmentStatus {
	case "FULFILLED":
		counts.Fulfilled++
	default:
		counts.Unfulfilled++
	}
}

func sortedDays(days map[string]*DayRevenue, window *Window) []DayRevenue {
	if window != nil {
		for cursor := window.From.UTC(); !cursor.After(window.To.UTC()); cursor = cursor.AddDate(0, 0, 1) {
			day := cursor.Format(time.DateOnly)
			if _, ok := days[day]; !ok {
				days[day] = &DayRevenue{Day: day}
			}
		}
	}
	out := make([]DayRevenue, 0, len(days))
	for _, bucket := range days {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

func sortedChannels(channels map[string]*ChannelRevenue) []ChannelRevenue {
	out := make([]ChannelRevenue, 0, len(channels))
	for _, bucket := range channels {
		out = append(out, *bucket)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// Percent computes num/den as a percentage rounded to one decimal place,
// reporting 0 when the denominator is zero.
func Percent(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return math.Round(float64(num)/float64(den)*1000) / 10
}

// Funnel is the checkout conversion funnel for the sales page.
type Funnel struct {
	Started         int // completed orders plus abandoned checkouts
	Completed       int
	Abandoned       int
	ConversionRate  float64 // percent, one decimal
	AbandonmentRate float64 // percent, one decimal
}

// BuildFunnel derives the conversion funnel from an order count and an
// abandoned-checkout count. Negative inputs clamp to zero.
func BuildFunnel(orderCount, abandoned int) Funnel {
	if orderCount < 0 {
		orderCount = 0
	}
	if abandoned < 0 {
		abandoned = 0
	}
	started := orderCount + abandoned
	return Funnel{
		Started:         started,
		Completed:       orderCount,
		Abandoned:       abandoned,
		ConversionRate:  Percent(orderCount, started),
		AbandonmentRate: Percent(abandoned, started),
	}
}
