package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shoppulse/pulse/pkg/metrics"
)

// RevenueTrendProvider composes the per-day revenue series into a line chart.
type RevenueTrendProvider struct {
	sales    SalesSummaryRepository
	renderer *EChartsProvider
}

// NewRevenueTrendProvider builds a provider backed by the given repository.
func NewRevenueTrendProvider(sales SalesSummaryRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider("line")
	}
	return &RevenueTrendProvider{
		sales:    sales,
		renderer: renderer,
	}
}

// Fetch renders the revenue trend widget.
func (p *RevenueTrendProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	if p.sales == nil {
		return nil, fmt.Errorf("revenue trend provider: repository is required")
	}

	cfg := meta.Instance.Configuration
	if cfg == nil {
		cfg = map[string]any{}
	}

	days := intValue(cfg["days"], 30)
	metric := strings.ToLower(stringValue(cfg["metric"], "revenue"))

	summary, err := p.sales.FetchSalesSummary(ctx, SalesQuery{
		Days:   days,
		Viewer: meta.Viewer,
	})
	if err != nil {
		return nil, fmt.Errorf("revenue trend provider: %w", err)
	}

	temp := meta
	temp.Instance = meta.Instance
	temp.Instance.Configuration = map[string]any{
		"title":    titleize(metric),
		"subtitle": fmt.Sprintf("Last %d days", days),
		"x_axis":   trendAxisLabels(summary.RevenueByDay),
		"series": []map[string]any{{
			"name": titleize(metric),
			"data": trendValues(summary.RevenueByDay, metric),
		}},
		"dynamic":          boolValue(cfg["dynamic"]),
		"refresh_endpoint": cfg["refresh_endpoint"],
		"theme":            cfg["theme"],
		"footer_note":      cfg["footer_note"],
	}

	data, err := p.renderer.Fetch(ctx, temp)
	if err != nil {
		return nil, err
	}

	data["source"] = map[string]any{
		"metric":   metric,
		"days":     days,
		"currency": summary.Currency,
	}
	return data, nil
}

func trendValues(days []metrics.DayRevenue, metric string) []float64 {
	values := make([]float64, len(days))
	for i, day := range days {
		if metric == "orders" {
			values[i] = float64(day.Orders)
			continue
		}
		values[i] = day.Revenue.InexactFloat64()
	}
	return values
}

func trendAxisLabels(days []metrics.DayRevenue) []string {
	labels := make([]string, len(days))
	for i, day := range days {
		if parsed, err := time.Parse(time.DateOnly, day.Day); err == nil {
			labels[i] = parsed.Format("Jan 2")
			continue
		}
		labels[i] = day.Day
	}
	return labels
}

func titleize(value string) string {
	if value == "" {
		return value
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(string(lower[0])) + lower[1:]
}
