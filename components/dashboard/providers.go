package dashboard

import (
	"context"
)

// demoRepo backs the default providers so a registry works out of the box.
// Hosts wire live Admin API repositories through NewCommerceProviders.
var demoRepo = NewDemoCommerceRepository()

var defaultProviders = buildProviderMap(CommerceProviderOptions{
	Sales:     demoRepo,
	Orders:    demoRepo,
	Products:  demoRepo,
	Customers: demoRepo,
	Shop:      demoRepo,
	Funnel:    demoRepo,
})

// CommerceProviderOptions names the repositories behind each widget provider.
type CommerceProviderOptions struct {
	Sales     SalesSummaryRepository
	Orders    OrderListRepository
	Products  ProductListRepository
	Customers CustomerListRepository
	Shop      ShopInfoRepository
	Funnel    CheckoutFunnelRepository
	Activity  ActivityFeed
}

// NewCommerceProviders builds the full widget-code to provider map over the
// given repositories. Use with Registry.RegisterProvider to replace the demo
// data with live Admin API data.
func NewCommerceProviders(opts CommerceProviderOptions) map[string]Provider {
	return buildProviderMap(opts)
}

func buildProviderMap(opts CommerceProviderOptions) map[string]Provider {
	sources := InsightSources{
		Sales:     opts.Sales,
		Products:  opts.Products,
		Customers: opts.Customers,
		Funnel:    opts.Funnel,
	}
	return map[string]Provider{
		"pulse.widget.kpi_row":           NewKPIRowProvider(opts.Sales, opts.Products, opts.Customers),
		"pulse.widget.revenue_trend":     NewRevenueTrendProvider(opts.Sales, NewEChartsProvider("line")),
		"pulse.widget.revenue_heatmap":   NewRevenueHeatmapProvider(opts.Sales, NewEChartsProvider("heatmap")),
		"pulse.widget.channel_split":     NewChannelSplitProvider(opts.Sales, NewEChartsProvider("pie")),
		"pulse.widget.customer_split":    NewCustomerSplitProvider(opts.Sales, NewEChartsProvider("pie")),
		"pulse.widget.conversion_funnel": NewConversionFunnelProvider(opts.Funnel),
		"pulse.widget.order_list":        NewOrderListProvider(opts.Orders),
		"pulse.widget.product_list":      NewProductListProvider(opts.Products),
		"pulse.widget.customer_list":     NewCustomerListProvider(opts.Customers),
		"pulse.widget.order_status":      NewOrderStatusProvider(opts.Sales),
		"pulse.widget.store_health":      NewStoreHealthProvider(sources),
		"pulse.widget.action_items":      NewActionItemsProvider(sources),
		"pulse.widget.alert_feed":        NewAlertFeedProvider(nil, sources),
		"pulse.widget.report_catalog":    NewReportCatalogProvider(),
		"pulse.widget.billing_plans":     NewBillingPlansProvider(opts.Shop),
		"pulse.widget.shop_profile":      NewShopProfileProvider(opts.Shop),
		"pulse.widget.recent_activity":   newRecentActivityProvider(opts.Activity),
	}
}

func newRecentActivityProvider(feed ActivityFeed) Provider {
	return ProviderFunc(func(ctx context.Context, meta WidgetContext) (WidgetData, error) {
		if feed == nil {
			feed = DefaultActivityFeed()
		}
		limit := intValue(meta.Instance.Configuration["limit"], 10)
		items, err := feed.Recent(ctx, meta.Viewer, limit)
		if err != nil {
			return nil, err
		}
		payload := make([]map[string]any, 0, len(items))
		for _, item := range items {
			payload = append(payload, map[string]any{
				"user":    item.User,
				"action":  item.Action,
				"details": item.Details,
				"ago":     item.Ago,
			})
		}
		return WidgetData{"items": payload}, nil
	})
}
