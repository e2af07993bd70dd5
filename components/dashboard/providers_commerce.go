package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shoppulse/pulse/pkg/metrics"
	"github.com/shoppulse/pulse/pkg/shopify"
)

// SalesQuery bounds one aggregation pass over recent orders.
type SalesQuery struct {
	Days   int
	First  int
	Viewer ViewerContext
}

// SalesSummaryRepository produces aggregate metrics for dashboard widgets.
type SalesSummaryRepository interface {
	FetchSalesSummary(ctx context.Context, query SalesQuery) (metrics.Summary, error)
}

// ListQuery bounds and optionally filters a list fetch.
type ListQuery struct {
	First  int
	Search string
	Viewer ViewerContext
}

// OrderListRepository loads recent orders for table widgets.
type OrderListRepository interface {
	FetchOrders(ctx context.Context, query ListQuery) ([]shopify.Order, error)
}

// ProductListRepository loads recent products for table widgets.
type ProductListRepository interface {
	FetchProducts(ctx context.Context, query ListQuery) ([]shopify.Product, error)
}

// CustomerListRepository loads recent customers for table widgets.
type CustomerListRepository interface {
	FetchCustomers(ctx context.Context, query ListQuery) ([]shopify.Customer, error)
}

// ShopInfoRepository loads the merchant store context.
type ShopInfoRepository interface {
	FetchShopInfo(ctx context.Context) (shopify.Shop, error)
}

// CheckoutFunnelRepository derives the checkout conversion funnel.
type CheckoutFunnelRepository interface {
	FetchFunnel(ctx context.Context) (metrics.Funnel, error)
}

// NewAdminSalesRepository aggregates orders fetched from the Admin API.
func NewAdminSalesRepository(client shopify.OrderClient) SalesSummaryRepository {
	return &adminSalesRepository{client: client}
}

type adminSalesRepository struct {
	client shopify.OrderClient
}

func (r *adminSalesRepository) FetchSalesSummary(ctx context.Context, query SalesQuery) (metrics.Summary, error) {
	first := query.First
	if first <= 0 {
		first = 100
	}
	orders, err := r.client.FetchOrders(ctx, first)
	if err != nil {
		return metrics.Summary{}, err
	}
	opts := metrics.Options{}
	if query.Days > 0 {
		to := time.Now().UTC()
		opts.Window = &metrics.Window{From: to.AddDate(0, 0, -(query.Days - 1)), To: to}
	}
	return metrics.Aggregate(orders, opts), nil
}

// NewAdminOrderRepository serves order tables from the Admin API.
func NewAdminOrderRepository(client shopify.OrderClient) OrderListRepository {
	return &adminOrderRepository{client: client}
}

type adminOrderRepository struct {
	client shopify.OrderClient
}

func (r *adminOrderRepository) FetchOrders(ctx context.Context, query ListQuery) ([]shopify.Order, error) {
	orders, err := r.client.FetchOrders(ctx, listFirst(query))
	if err != nil {
		return nil, err
	}
	return metrics.FilterOrders(orders, query.Search), nil
}

// NewAdminProductRepository serves product tables from the Admin API.
func NewAdminProductRepository(client shopify.ProductClient) ProductListRepository {
	return &adminProductRepository{client: client}
}

type adminProductRepository struct {
	client shopify.ProductClient
}

func (r *adminProductRepository) FetchProducts(ctx context.Context, query ListQuery) ([]shopify.Product, error) {
	products, err := r.client.FetchProducts(ctx, listFirst(query))
	if err != nil {
		return nil, err
	}
	return metrics.FilterProducts(products, query.Search), nil
}

// NewAdminCustomerRepository serves customer tables from the Admin API.
func NewAdminCustomerRepository(client shopify.CustomerClient) CustomerListRepository {
	return &adminCustomerRepository{client: client}
}

type adminCustomerRepository struct {
	client shopify.CustomerClient
}

func (r *adminCustomerRepository) FetchCustomers(ctx context.Context, query ListQuery) ([]shopify.Customer, error) {
	customers, err := r.client.FetchCustomers(ctx, listFirst(query))
	if err != nil {
		return nil, err
	}
	return metrics.FilterCustomers(customers, query.Search), nil
}

// NewAdminShopRepository serves the shop profile from the Admin API.
func NewAdminShopRepository(client shopify.ShopClient) ShopInfoRepository {
	return &adminShopRepository{client: client}
}

type adminShopRepository struct {
	client shopify.ShopClient
}

func (r *adminShopRepository) FetchShopInfo(ctx context.Context) (shopify.Shop, error) {
	return r.client.FetchShop(ctx)
}

// NewAdminFunnelRepository builds the conversion funnel from order and
// abandoned-checkout counts. A failed checkout query falls back to zero rather
// than failing the widget.
func NewAdminFunnelRepository(orders shopify.OrderClient, checkouts shopify.CheckoutClient) CheckoutFunnelRepository {
	return &adminFunnelRepository{orders: orders, checkouts: checkouts}
}

type adminFunnelRepository struct {
	orders    shopify.OrderClient
	checkouts shopify.CheckoutClient
}

func (r *adminFunnelRepository) FetchFunnel(ctx context.Context) (metrics.Funnel, error) {
	orders, err := r.orders.FetchOrders(ctx, 100)
	if err != nil {
		return metrics.Funnel{}, err
	}
	abandoned := 0
	if r.checkouts != nil {
		if count, err := r.checkouts.CountAbandonedCheckouts(ctx); err == nil {
			abandoned = count
		}
	}
	return metrics.BuildFunnel(len(orders), abandoned), nil
}

func listFirst(query ListQuery) int {
	if query.First <= 0 {
		return 50
	}
	return query.First
}

// KPI tiles

type kpiRowProvider struct {
	sales     SalesSummaryRepository
	products  ProductListRepository
	customers CustomerListRepository
}

// NewKPIRowProvider builds the summary tile row shown on the overview and
// sales pages. Upstream failures degrade to zero-valued tiles.
func NewKPIRowProvider(sales SalesSummaryRepository, products ProductListRepository, customers CustomerListRepository) Provider {
	return &kpiRowProvider{sales: sales, products: products, customers: customers}
}

func (p *kpiRowProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	summary := p.fetchSummary(ctx, meta, cfg)

	tiles := []map[string]any{
		{"id": "total_revenue", "label": "Total Revenue", "value": formatMoney(summary.TotalRevenue, summary.Currency)},
		{"id": "total_orders", "label": "Total Orders", "value": summary.OrderCount},
		{"id": "avg_order_value", "label": "Avg Order Value", "value": formatMoney(summary.AverageOrderValue, summary.Currency)},
		{"id": "net_revenue", "label": "Net Revenue", "value": formatMoney(summary.NetRevenue, summary.Currency)},
		{"id": "refund_rate", "label": "Refund Rate", "value": summary.RefundRate, "suffix": "%"},
	}
	if p.products != nil {
		if products, err := p.products.FetchProducts(ctx, ListQuery{Viewer: meta.Viewer}); err == nil {
			tiles = append(tiles, map[string]any{"id": "total_products", "label": "Products", "value": len(products)})
		}
	}
	if p.customers != nil {
		if customers, err := p.customers.FetchCustomers(ctx, ListQuery{Viewer: meta.Viewer}); err == nil {
			tiles = append(tiles, map[string]any{"id": "total_customers", "label": "Customers", "value": len(customers)})
		}
	}
	return WidgetData{
		"tiles":    tiles,
		"currency": summary.Currency,
	}, nil
}

func (p *kpiRowProvider) fetchSummary(ctx context.Context, meta WidgetContext, cfg map[string]any) metrics.Summary {
	if p.sales == nil {
		return metrics.Summary{Currency: metrics.DefaultCurrency}
	}
	summary, err := p.sales.FetchSalesSummary(ctx, SalesQuery{
		Days:   intValue(cfg["days"], 30),
		Viewer: meta.Viewer,
	})
	if err != nil {
		return metrics.Summary{Currency: metrics.DefaultCurrency}
	}
	return summary
}

// Channel / customer splits rendered as pie charts

type channelSplitProvider struct {
	sales    SalesSummaryRepository
	renderer *EChartsProvider
}

// NewChannelSplitProvider renders revenue per sales channel as a pie chart.
func NewChannelSplitProvider(sales SalesSummaryRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider("pie")
	}
	return &channelSplitProvider{sales: sales, renderer: renderer}
}

func (p *channelSplitProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	summary := fetchSummaryOrZero(ctx, p.sales, meta)
	points := make([]map[string]any, 0, len(summary.RevenueByChannel))
	for _, bucket := range summary.RevenueByChannel {
		points = append(points, map[string]any{
			"name":  bucket.Channel,
			"value": bucket.Revenue.InexactFloat64(),
		})
	}
	if len(points) == 0 {
		return WidgetData{"empty": true, "title": "Revenue by Channel"}, nil
	}
	return renderChartData(ctx, p.renderer, meta, map[string]any{
		"title":  "Revenue by Channel",
		"series": []map[string]any{{"name": "Channels", "data": points}},
	})
}

type customerSplitProvider struct {
	sales    SalesSummaryRepository
	renderer *EChartsProvider
}

// NewCustomerSplitProvider renders new vs returning revenue as a pie chart.
func NewCustomerSplitProvider(sales SalesSummaryRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider("pie")
	}
	return &customerSplitProvider{sales: sales, renderer: renderer}
}

func (p *customerSplitProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	summary := fetchSummaryOrZero(ctx, p.sales, meta)
	if summary.OrderCount == 0 {
		return WidgetData{"empty": true, "title": "New vs Returning"}, nil
	}
	return renderChartData(ctx, p.renderer, meta, map[string]any{
		"title": "New vs Returning",
		"series": []map[string]any{{
			"name": "Customers",
			"data": []map[string]any{
				{"name": "New", "value": summary.NewCustomers.Revenue.InexactFloat64()},
				{"name": "Returning", "value": summary.Returning.Revenue.InexactFloat64()},
			},
		}},
	})
}

// Revenue heatmap

var heatmapDayLabels = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

type revenueHeatmapProvider struct {
	sales    SalesSummaryRepository
	renderer *EChartsProvider
}

// NewRevenueHeatmapProvider renders the hour-of-day by day-of-week revenue grid.
func NewRevenueHeatmapProvider(sales SalesSummaryRepository, renderer *EChartsProvider) Provider {
	if renderer == nil {
		renderer = NewEChartsProvider("heatmap")
	}
	return &revenueHeatmapProvider{sales: sales, renderer: renderer}
}

func (p *revenueHeatmapProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	summary := fetchSummaryOrZero(ctx, p.sales, meta)
	points := make([]map[string]any, 0, 7*24)
	for day := range summary.Heatmap {
		for hour, value := range summary.Heatmap[day] {
			if value == 0 {
				continue
			}
			points = append(points, map[string]any{"x": hour, "y": day, "value": value})
		}
	}
	if len(points) == 0 {
		return WidgetData{"empty": true, "title": "Revenue by Hour"}, nil
	}
	hours := make([]string, 24)
	for i := range hours {
		hours[i] = time.Date(0, 1, 1, i, 0, 0, 0, time.UTC).Format("15:04")
	}
	return renderChartData(ctx, p.renderer, meta, map[string]any{
		"title":  "Revenue by Hour",
		"x_axis": hours,
		"y_axis": heatmapDayLabels,
		"series": []map[string]any{{"name": "Revenue", "data": points}},
	})
}

// Conversion funnel

type conversionFunnelProvider struct {
	repo CheckoutFunnelRepository
}

// NewConversionFunnelProvider wires the checkout funnel into a widget.
func NewConversionFunnelProvider(repo CheckoutFunnelRepository) Provider {
	return &conversionFunnelProvider{repo: repo}
}

func (p *conversionFunnelProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	funnel := metrics.Funnel{}
	if p.repo != nil {
		if fetched, err := p.repo.FetchFunnel(ctx); err == nil {
			funnel = fetched
		}
	}
	return WidgetData{
		"stages": []map[string]any{
			{"label": "Checkouts Started", "value": funnel.Started},
			{"label": "Orders Completed", "value": funnel.Completed},
			{"label": "Checkouts Abandoned", "value": funnel.Abandoned},
		},
		"conversion_rate":  funnel.ConversionRate,
		"abandonment_rate": funnel.AbandonmentRate,
	}, nil
}

// Order status tallies

type orderStatusProvider struct {
	sales SalesSummaryRepository
}

// NewOrderStatusProvider tallies orders by financial/fulfillment status.
func NewOrderStatusProvider(sales SalesSummaryRepository) Provider {
	return &orderStatusProvider{sales: sales}
}

func (p *orderStatusProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	summary := fetchSummaryOrZero(ctx, p.sales, meta)
	return WidgetData{
		"paid":        summary.Statuses.Paid,
		"pending":     summary.Statuses.Pending,
		"fulfilled":   summary.Statuses.Fulfilled,
		"unfulfilled": summary.Statuses.Unfulfilled,
		"total":       summary.OrderCount,
	}, nil
}

// List tables

type orderListProvider struct {
	repo OrderListRepository
}

// NewOrderListProvider builds the orders table widget.
func NewOrderListProvider(repo OrderListRepository) Provider {
	return &orderListProvider{repo: repo}
}

func (p *orderListProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	query := ListQuery{
		First:  intValue(cfg["limit"], 50),
		Search: stringValue(cfg["search"], ""),
		Viewer: meta.Viewer,
	}
	orders, err := p.repo.FetchOrders(ctx, query)
	if err != nil {
		return WidgetData{"rows": []map[string]any{}, "empty": true}, nil
	}
	rows := make([]map[string]any, 0, len(orders))
	for _, order := range orders {
		customer := ""
		if order.Customer != nil {
			customer = order.Customer.DisplayName
		}
		rows = append(rows, map[string]any{
			"id":                 order.ID,
			"name":               order.Name,
			"created_at":         order.CreatedAt.Format(time.DateOnly),
			"customer":           customer,
			"total":              formatMoney(order.TotalPrice.Decimal(), order.TotalPrice.CurrencyCode),
			"financial_status":   order.FinancialStatus,
			"fulfillment_status": order.FulfillmentStatus,
		})
	}
	return WidgetData{
		"rows":       rows,
		"empty":      len(rows) == 0,
		"search":     query.Search,
		"searchable": []string{"name", "customer"},
	}, nil
}

type productListProvider struct {
	repo ProductListRepository
}

// NewProductListProvider builds the products table widget.
func NewProductListProvider(repo ProductListRepository) Provider {
	return &productListProvider{repo: repo}
}

func (p *productListProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	query := ListQuery{
		First:  intValue(cfg["limit"], 50),
		Search: stringValue(cfg["search"], ""),
		Viewer: meta.Viewer,
	}
	products, err := p.repo.FetchProducts(ctx, query)
	if err != nil {
		return WidgetData{"rows": []map[string]any{}, "empty": true}, nil
	}
	rows := make([]map[string]any, 0, len(products))
	lowStock := 0
	for _, product := range products {
		if product.TotalInventory < 10 {
			lowStock++
		}
		rows = append(rows, map[string]any{
			"id":        product.ID,
			"title":     product.Title,
			"status":    product.Status,
			"inventory": product.TotalInventory,
			"price":     formatMoney(product.MinPrice.Decimal(), product.MinPrice.CurrencyCode),
			"type":      product.ProductType,
			"vendor":    product.Vendor,
		})
	}
	return WidgetData{
		"rows":       rows,
		"empty":      len(rows) == 0,
		"low_stock":  lowStock,
		"search":     query.Search,
		"searchable": []string{"title"},
	}, nil
}

type customerListProvider struct {
	repo CustomerListRepository
}

// NewCustomerListProvider builds the customers table widget.
func NewCustomerListProvider(repo CustomerListRepository) Provider {
	return &customerListProvider{repo: repo}
}

func (p *customerListProvider) Fetch(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	cfg := meta.Instance.Configuration
	query := ListQuery{
		First:  intValue(cfg["limit"], 50),
		Search: stringValue(cfg["search"], ""),
		Viewer: meta.Viewer,
	}
	customers, err := p.repo.FetchCustomers(ctx, query)
	if err != nil {
		return WidgetData{"rows": []map[string]any{}, "empty": true}, nil
	}
	rows := make([]map[string]any, 0, len(customers))
	returning := 0
	for _, customer := range customers {
		if customer.NumberOfOrders > 1 {
			returning++
		}
		rows = append(rows, map[string]any{
			"id":           customer.ID,
			"name":         customer.DisplayName,
			"email":        customer.Email,
			"orders":       customer.NumberOfOrders,
			"total_spent":  formatMoney(customer.AmountSpent.Decimal(), customer.AmountSpent.CurrencyCode),
			"member_since": customer.CreatedAt.Format(time.DateOnly),
		})
	}
	return WidgetData{
		"rows":       rows,
		"empty":      len(rows) == 0,
		"returning":  returning,
		"search":     query.Search,
		"searchable": []string{"name", "email"},
	}, nil
}

// Shop profile

type shopProfileProvider struct {
	repo ShopInfoRepository
}

// NewShopProfileProvider shows store name/plan/contact on the settings page.
func NewShopProfileProvider(repo ShopInfoRepository) Provider {
	return &shopProfileProvider{repo: repo}
}

func (p *shopProfileProvider) Fetch(ctx context.Context, _ WidgetContext) (WidgetData, error) {
	if p.repo == nil {
		return WidgetData{"empty": true}, nil
	}
	shop, err := p.repo.FetchShopInfo(ctx)
	if err != nil {
		return WidgetData{"empty": true}, nil
	}
	return WidgetData{
		"name":     shop.Name,
		"email":    shop.Email,
		"domain":   shop.MyshopifyDomain,
		"plan":     shop.PlanDisplayName,
		"currency": shop.CurrencyCode,
	}, nil
}

// Shared helpers

func fetchSummaryOrZero(ctx context.Context, sales SalesSummaryRepository, meta WidgetContext) metrics.Summary {
	if sales == nil {
		return metrics.Summary{Currency: metrics.DefaultCurrency}
	}
	cfg := meta.Instance.Configuration
	summary, err := sales.FetchSalesSummary(ctx, SalesQuery{
		Days:   intValue(cfg["days"], 30),
		Viewer: meta.Viewer,
	})
	if err != nil {
		return metrics.Summary{Currency: metrics.DefaultCurrency}
	}
	return summary
}

func renderChartData(ctx context.Context, renderer *EChartsProvider, meta WidgetContext, chartCfg map[string]any) (WidgetData, error) {
	temp := meta
	temp.Instance.Configuration = chartCfg
	if theme, ok := meta.Instance.Configuration["theme"]; ok {
		chartCfg["theme"] = theme
	}
	return renderer.Fetch(ctx, temp)
}

var currencySymbols = map[string]string{
	"USD": "$",
	"CAD": "$",
	"AUD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
}

func formatMoney(amount decimal.Decimal, currency string) string {
	if symbol, ok := currencySymbols[currency]; ok {
		return symbol + amount.StringFixed(2)
	}
	if currency == "" {
		return amount.StringFixed(2)
	}
	return currency + " " + amount.StringFixed(2)
}

// DemoCommerceRepository serves every repository interface from the packaged
// demo fixture. Useful for local demos and tests.
type DemoCommerceRepository struct {
	client *shopify.MockClient
}

// NewDemoCommerceRepository builds a repository over shopify.DemoData.
func NewDemoCommerceRepository() *DemoCommerceRepository {
	return &DemoCommerceRepository{client: shopify.NewMockClient(shopify.DemoData())}
}

// FetchSalesSummary aggregates the fixture orders.
func (r *DemoCommerceRepository) FetchSalesSummary(ctx context.Context, query SalesQuery) (metrics.Summary, error) {
	return NewAdminSalesRepository(r.client).FetchSalesSummary(ctx, SalesQuery{First: query.First, Viewer: query.Viewer})
}

// FetchOrders lists the fixture orders.
func (r *DemoCommerceRepository) FetchOrders(ctx context.Context, query ListQuery) ([]shopify.Order, error) {
	return NewAdminOrderRepository(r.client).FetchOrders(ctx, query)
}

// FetchProducts lists the fixture products.
func (r *DemoCommerceRepository) FetchProducts(ctx context.Context, query ListQuery) ([]shopify.Product, error) {
	return NewAdminProductRepository(r.client).FetchProducts(ctx, query)
}

// FetchCustomers lists the fixture customers.
func (r *DemoCommerceRepository) FetchCustomers(ctx context.Context, query ListQuery) ([]shopify.Customer, error) {
	return NewAdminCustomerRepository(r.client).FetchCustomers(ctx, query)
}

// FetchShopInfo returns the fixture shop.
func (r *DemoCommerceRepository) FetchShopInfo(ctx context.Context) (shopify.Shop, error) {
	return r.client.FetchShop(ctx)
}

// FetchFunnel derives the fixture funnel.
func (r *DemoCommerceRepository) FetchFunnel(ctx context.Context) (metrics.Funnel, error) {
	return NewAdminFunnelRepository(r.client, r.client).FetchFunnel(ctx)
}
