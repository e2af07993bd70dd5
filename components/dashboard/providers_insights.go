package dashboard

import (
	"context"
	"time"

	"github.com/shoppulse/pulse/pkg/alerts"
	"github.com/shoppulse/pulse/pkg/billing"
	"github.com/shoppulse/pulse/pkg/insights"
	"github.com/shoppulse/pulse/pkg/shopify"
)

// InsightSources bundles the repositories the scoring rules read from.
type InsightSources struct {
	Sales     SalesSummaryRepository
	Products  ProductListRepository
	Customers CustomerListRepository
	Funnel    CheckoutFunnelRepository
}

func (s InsightSources) gather(ctx context.Context, viewer ViewerContext) insights.Input {
	in := insights.Input{}
	if s.Sales != nil {
		if summary, err := s.Sales.FetchSalesSummary(ctx, SalesQuery{Viewer: viewer}); err == nil {
			in.Summary = summary
		}
	}
	if s.Products != nil {
		if products, err := s.Products.FetchProducts(ctx, ListQuery{Viewer: viewer}); err == nil {
			in.Products = products
		}
	}
	if s.Customers != nil {
		if customers, err := s.Customers.FetchCustomers(ctx, ListQuery{Viewer: viewer}); err == nil {
			in.Customers = customers
		}
	}
	if s.Funnel != nil {
		if funnel, err := s.Funnel.FetchFunnel(ctx); err == nil {
			in.Funnel = funnel
		}
	}
	return in
}

type storeHealthProvider struct {
	sources InsightSources
}

// NewStoreHealthProvider scores overall store health for the insights page.
func NewStoreHealthProvider(sources InsightSources) Provider {
	return &storeHealthProvider{sources: sources}
}

func (p *storeHealthProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report := insights.Evaluate(p.sources.gather(ctx, meta.Viewer))
	wanted := stringSliceValue(meta.Instance.Configuration["categories"])
	categories := make([]map[string]any, 0, len(report.Categories))
	for _, cat := range report.Categories {
		if len(wanted) > 0 && !containsString(wanted, cat.Key) {
			continue
		}
		categories = append(categories, map[string]any{
			"key":             cat.Key,
			"label":           cat.Label,
			"score":           cat.Score,
			"trend":           cat.Trend,
			"insights":        cat.Insights,
			"recommendations": cat.Recommendations,
		})
	}
	return WidgetData{
		"overall_score": report.OverallScore,
		"categories":    categories,
		"generated_at":  report.GeneratedAt.Format(time.RFC3339),
	}, nil
}

type actionItemsProvider struct {
	sources InsightSources
}

// NewActionItemsProvider lists prioritized merchant follow-ups.
func NewActionItemsProvider(sources InsightSources) Provider {
	return &actionItemsProvider{sources: sources}
}

func (p *actionItemsProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	report := insights.Evaluate(p.sources.gather(ctx, meta.Viewer))
	limit := intValue(meta.Instance.Configuration["limit"], 5)
	items := report.ActionItems
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	payload := make([]map[string]any, 0, len(items))
	for _, item := range items {
		payload = append(payload, map[string]any{
			"title":    item.Title,
			"category": item.Category,
			"priority": item.Priority,
			"deadline": item.Deadline.Format(time.DateOnly),
		})
	}
	return WidgetData{"items": payload, "empty": len(payload) == 0}, nil
}

type alertFeedProvider struct {
	feed    *alerts.Feed
	sources InsightSources
}

// NewAlertFeedProvider re-evaluates alert rules on each fetch and serves the
// feed with read state preserved.
func NewAlertFeedProvider(feed *alerts.Feed, sources InsightSources) Provider {
	if feed == nil {
		feed = alerts.NewFeed()
	}
	return &alertFeedProvider{feed: feed, sources: sources}
}

func (p *alertFeedProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	in := p.sources.gather(ctx, meta.Viewer)
	p.feed.Replace(alerts.Evaluate(alerts.Input{
		Summary:  in.Summary,
		Products: in.Products,
		Funnel:   in.Funnel,
	}))

	cfg := meta.Instance.Configuration
	listed := p.feed.List(intValue(cfg["limit"], 20), stringSliceValue(cfg["severity"]))
	payload := make([]map[string]any, 0, len(listed))
	for _, alert := range listed {
		payload = append(payload, map[string]any{
			"id":           alert.ID,
			"rule":         alert.Rule,
			"severity":     alert.Severity,
			"title":        alert.Title,
			"message":      alert.Message,
			"triggered_at": alert.TriggeredAt.Format(time.RFC3339),
			"read":         alert.Read,
		})
	}
	return WidgetData{
		"alerts": payload,
		"unread": p.feed.UnreadCount(),
		"empty":  len(payload) == 0,
	}, nil
}

type billingPlansProvider struct {
	shop ShopInfoRepository
}

// NewBillingPlansProvider lists subscription tiers, marking the merchant's
// current Shopify plan name when the shop repository is available.
func NewBillingPlansProvider(shop ShopInfoRepository) Provider {
	return &billingPlansProvider{shop: shop}
}

func (p *billingPlansProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	highlight := stringValue(meta.Instance.Configuration["highlight"], "")
	var shop shopify.Shop
	if p.shop != nil {
		if fetched, err := p.shop.FetchShopInfo(ctx); err == nil {
			shop = fetched
		}
	}
	plans := billing.Plans()
	payload := make([]map[string]any, 0, len(plans))
	for _, plan := range plans {
		analyses := any(plan.AnalysesPerMonth)
		if plan.AnalysesPerMonth == billing.UnlimitedAnalyses {
			analyses = "unlimited"
		}
		payload = append(payload, map[string]any{
			"key":         plan.Key,
			"name":        plan.Name,
			"price":       plan.Price.StringFixed(2),
			"currency":    plan.Currency,
			"interval":    plan.Interval,
			"trial_days":  plan.TrialDays,
			"analyses":    analyses,
			"features":    plan.Features,
			"highlighted": plan.Key == highlight,
		})
	}
	return WidgetData{
		"plans":     payload,
		"shop_plan": shop.PlanDisplayName,
	}, nil
}

// ReportDefinition is one entry in the exportable report catalog.
type ReportDefinition struct {
	Key         string
	Name        string
	Description string
	Format      string
}

var defaultReportCatalog = []ReportDefinition{
	{Key: "sales_summary", Name: "Sales Summary", Description: "Revenue, orders, and refunds for a date range", Format: "csv"},
	{Key: "order_export", Name: "Order Export", Description: "Full order list with status and totals", Format: "csv"},
	{Key: "inventory_levels", Name: "Inventory Levels", Description: "Stock on hand per product", Format: "csv"},
	{Key: "customer_lifetime", Name: "Customer Lifetime Value", Description: "Per-customer spend and order counts", Format: "csv"},
	{Key: "channel_performance", Name: "Channel Performance", Description: "Revenue split by sales channel", Format: "csv"},
}

// DefaultReportCatalog returns copies of the built-in report definitions.
func DefaultReportCatalog() []ReportDefinition {
	out := make([]ReportDefinition, len(defaultReportCatalog))
	copy(out, defaultReportCatalog)
	return out
}

type reportCatalogProvider struct{}

// NewReportCatalogProvider lists the available report definitions.
func NewReportCatalogProvider() Provider {
	return reportCatalogProvider{}
}

func (reportCatalogProvider) Fetch(_ context.Context, _ WidgetContext) (WidgetData, error) {
	reports := DefaultReportCatalog()
	payload := make([]map[string]any, 0, len(reports))
	for _, report := range reports {
		payload = append(payload, map[string]any{
			"key":         report.Key,
			"name":        report.Name,
			"description": report.Description,
			"format":      report.Format,
		})
	}
	return WidgetData{"reports": payload}, nil
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
