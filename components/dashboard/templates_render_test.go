package dashboard

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppulse/pulse/pkg/metrics"
	"github.com/shoppulse/pulse/pkg/shopify"
)

func renderedPage(t *testing.T, registry *Registry, definitionID, pageCode string) string {
	t.Helper()
	ctx := context.Background()
	store := NewMemoryWidgetStore()
	svc := NewService(Options{WidgetStore: store, Providers: registry})
	require.NoError(t, svc.AddWidget(ctx, AddWidgetRequest{
		DefinitionID: definitionID,
		PageCode:     pageCode,
	}))

	renderer, err := NewTemplateRenderer()
	require.NoError(t, err)
	controller := NewController(ControllerOptions{Service: svc, Renderer: renderer})

	var buf bytes.Buffer
	viewer := ViewerContext{UserID: "merchant@example.com", ShopDomain: "demo-shop.myshopify.com", Locale: "en"}
	require.NoError(t, controller.RenderPage(ctx, viewer, pageCode, &buf))
	return buf.String()
}

func TestRenderPageShowsKPITiles(t *testing.T) {
	registry := NewRegistry()
	repo := &fakeCommerce{summary: metrics.Summary{Currency: "USD"}}
	require.NoError(t, registry.RegisterProvider("pulse.widget.kpi_row", NewKPIRowProvider(repo, repo, repo)))

	html := renderedPage(t, registry, "pulse.widget.kpi_row", "pulse.page.overview")
	assert.Contains(t, html, "Key Metrics")
	assert.Contains(t, html, "Total Revenue")
	assert.Contains(t, html, "$0.00")
	assert.Contains(t, html, `data-metric="total_orders"`)
}

func TestRenderPageShowsOrderRows(t *testing.T) {
	registry := NewRegistry()
	repo := &fakeCommerce{orders: []shopify.Order{{
		ID:                "gid://shopify/Order/1001",
		Name:              "#1001",
		CreatedAt:         time.Date(2026, 8, 12, 10, 0, 0, 0, time.UTC),
		FinancialStatus:   "PAID",
		FulfillmentStatus: "FULFILLED",
		TotalPrice:        shopify.Money{Amount: "149.95", CurrencyCode: "USD"},
		Customer:          &shopify.OrderCustomer{DisplayName: "Ana Alvarez"},
	}}}
	require.NoError(t, registry.RegisterProvider("pulse.widget.order_list", NewOrderListProvider(repo)))

	html := renderedPage(t, registry, "pulse.widget.order_list", "pulse.page.orders")
	assert.Contains(t, html, "#1001")
	assert.Contains(t, html, "Ana Alvarez")
	assert.Contains(t, html, "$149.95")
	assert.Contains(t, html, "2026-08-12")
}

func TestRenderPageShowsEmptyState(t *testing.T) {
	registry := NewRegistry()
	require.NoError(t, registry.RegisterProvider("pulse.widget.shop_profile", ProviderFunc(func(context.Context, WidgetContext) (WidgetData, error) {
		return WidgetData{"empty": true}, nil
	})))

	html := renderedPage(t, registry, "pulse.widget.shop_profile", "pulse.page.overview")
	assert.Contains(t, html, "No data yet.")
}
