// Package alerts evaluates rule-based store notifications over aggregated
// commerce data and keeps a read/unread feed of the results.
package alerts

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/metrics"
	"github.com/shoppulse/pulse/pkg/shopify"
)

// Severity levels, mildest first.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityCritical = "critical"
)

// Rule names attached to generated alerts.
const (
	RuleRefundSpike    = "refund_spike"
	RuleLowStock       = "low_stock"
	RuleSalesMilestone = "sales_milestone"
	RuleAbandonment    = "abandonment"
)

// Thresholds used by Evaluate.
const (
	refundWarningRate   = 5.0
	refundCriticalRate  = 10.0
	lowStockUnits       = 10
	abandonmentWarnRate = 60.0
)

var milestones = []int64{100, 1000, 10000, 100000}

// Alert is one triggered notification. IDs are deterministic per rule and
// subject so read state survives re-evaluation.
type Alert struct {
	ID          string
	Rule        string
	Severity    string
	Title       string
	Message     string
	TriggeredAt time.Time
	Read        bool
}

// Input collects the data the rules run over. Now defaults to the current UTC
// time when zero.
type Input struct {
	Summary  metrics.Summary
	Products []shopify.Product
	Funnel   metrics.Funnel
	Now      time.Time
}

// Evaluate runs every rule and returns triggered alerts, most severe first.
func Evaluate(in Input) []Alert {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	var out []Alert

	if in.Summary.RefundRate > refundCriticalRate {
		out = append(out, Alert{
			ID:          RuleRefundSpike,
			Rule:        RuleRefundSpike,
			Severity:    SeverityCritical,
			Title:       "Refund spike",
			Message:     fmt.Sprintf("%.1f%% of orders were refunded", in.Summary.RefundRate),
			TriggeredAt: now,
		})
	} else if in.Summary.RefundRate > refundWarningRate {
		out = append(out, Alert{
			ID:          RuleRefundSpike,
			Rule:        RuleRefundSpike,
			Severity:    SeverityWarning,
			Title:       "Elevated refunds",
			Message:     fmt.Sprintf("%.1f%% of orders were refunded", in.Summary.RefundRate),
			TriggeredAt: now,
		})
	}

	for _, product := range in.Products {
		if product.TotalInventory >= lowStockUnits {
			continue
		}
		severity := SeverityWarning
		title := "Low inventory"
		if product.TotalInventory == 0 {
			severity = SeverityCritical
			title = "Out of stock"
		}
		out = append(out, Alert{
			ID:          RuleLowStock + ":" + product.ID,
			Rule:        RuleLowStock,
			Severity:    severity,
			Title:       title,
			Message:     fmt.Sprintf("%s has %d unit(s) left", product.Title, product.TotalInventory),
			TriggeredAt: now,
		})
	}

	if milestone := reachedMilestone(in.Summary.TotalRevenue); milestone > 0 {
		out = append(out, Alert{
			ID:          fmt.Sprintf("%s:%d", RuleSalesMilestone, milestone),
			Rule:        RuleSalesMilestone,
			Severity:    SeverityInfo,
			Title:       "Sales milestone",
			Message:     fmt.Sprintf("Revenue passed %s %d", in.Summary.Currency, milestone),
			TriggeredAt: now,
		})
	}

	if in.Funnel.AbandonmentRate > abandonmentWarnRate {
		out = append(out, Alert{
			ID:          RuleAbandonment,
			Rule:        RuleAbandonment,
			Severity:    SeverityWarning,
			Title:       "High checkout abandonment",
			Message:     fmt.Sprintf("%.1f%% of checkouts were abandoned", in.Funnel.AbandonmentRate),
			TriggeredAt: now,
		})
	}

	sortBySeverity(out)
	return out
}

func reachedMilestone(revenue decimal.Decimal) int64 {
	reached := int64(0)
	for _, milestone := range milestones {
		if revenue.GreaterThanOrEqual(decimal.NewFromInt(milestone)) {
			reached = milestone
		}
	}
	return reached
}

func sortBySeverity(alerts []Alert) {
	rank := func(severity string) int {
		switch severity {
		case SeverityCritical:
			return 0
		case SeverityWarning:
			return 1
		default:
			return 2
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return rank(alerts[i].Severity) < rank(alerts[j].Severity)
	})
}
