package dashboard

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
)

// Navigation sections shown in the app shell sidebar.
const (
	SectionDashboard    = "Dashboard"
	SectionIntelligence = "Intelligence"
	SectionSettings     = "Settings"
)

var defaultPageDefinitions = []PageDefinition{
	{Code: "pulse.page.overview", Title: "Overview", Path: "/app", Section: SectionDashboard, Description: "Store performance at a glance"},
	{Code: "pulse.page.sales", Title: "Sales Analytics", Path: "/app/sales", Section: SectionDashboard, Description: "Revenue trends and channel breakdown"},
	{Code: "pulse.page.orders", Title: "Orders", Path: "/app/orders", Section: SectionDashboard, Description: "Recent orders and fulfillment state"},
	{Code: "pulse.page.products", Title: "Products", Path: "/app/products", Section: SectionDashboard, Description: "Catalog and inventory levels"},
	{Code: "pulse.page.customers", Title: "Customers", Path: "/app/customers", Section: SectionDashboard, Description: "Customer base and repeat purchase behavior"},
	{Code: "pulse.page.ai_insights", Title: "AI Insights", Path: "/app/ai-insights", Section: SectionIntelligence, Description: "Scored store health and recommendations"},
	{Code: "pulse.page.alerts", Title: "Alerts", Path: "/app/alerts", Section: SectionIntelligence, Description: "Rule-based store notifications"},
	{Code: "pulse.page.reports", Title: "Reports", Path: "/app/reports", Section: SectionIntelligence, Description: "Exportable report catalog"},
	{Code: "pulse.page.settings", Title: "Settings", Path: "/app/settings", Section: SectionSettings, Description: "Store profile and display preferences"},
	{Code: "pulse.page.billing", Title: "Billing", Path: "/app/billing", Section: SectionSettings, Description: "Subscription plans and usage"},
}

var defaultWidgetDefinitions = []WidgetDefinition{
	{
		Code: "pulse.widget.kpi_row",
		Name: "Key Metrics",
		NameLocalized: map[string]string{
			"es": "Métricas clave",
		},
		Description: "Revenue, orders, AOV, and refund tiles",
		Category:    "metrics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.revenue_trend",
		Name:        "Revenue Trend",
		Description: "Revenue per day line chart",
		Category:    "charts",
		Schema:      revenueTrendSchema(),
	},
	{
		Code:        "pulse.widget.revenue_heatmap",
		Name:        "Revenue Heatmap",
		Description: "Revenue by day of week and hour",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
				"theme": map[string]any{
					"type": "string",
					"enum": chartThemes(),
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.channel_split",
		Name:        "Revenue by Channel",
		Description: "Revenue split across sales channels",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.customer_split",
		Name:        "New vs Returning",
		Description: "Revenue split between new and returning customers",
		Category:    "charts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.conversion_funnel",
		Name:        "Checkout Funnel",
		Description: "Checkouts started, completed, and abandoned",
		Category:    "analytics",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code: "pulse.widget.order_list",
		Name: "Recent Orders",
		NameLocalized: map[string]string{
			"es": "Pedidos recientes",
		},
		Description: "Order table with status and totals",
		Category:    "tables",
		Schema:      listSchema(),
	},
	{
		Code:        "pulse.widget.product_list",
		Name:        "Products",
		Description: "Product table with inventory levels",
		Category:    "tables",
		Schema:      listSchema(),
	},
	{
		Code: "pulse.widget.customer_list",
		Name: "Customers",
		NameLocalized: map[string]string{
			"es": "Clientes",
		},
		Description: "Customer table with lifetime spend",
		Category:    "tables",
		Schema:      listSchema(),
	},
	{
		Code:        "pulse.widget.order_status",
		Name:        "Order Status",
		Description: "Paid/pending and fulfillment tallies",
		Category:    "metrics",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"days": map[string]any{"type": "integer", "minimum": 1, "maximum": 365, "default": 30},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.store_health",
		Name:        "Store Health",
		Description: "Scored health across sales, inventory, customers, fulfillment",
		Category:    "insights",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"categories": map[string]any{
					"type":        "array",
					"items":       map[string]any{"type": "string"},
					"uniqueItems": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.action_items",
		Name:        "Action Items",
		Description: "Prioritized merchant follow-ups",
		Category:    "insights",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 20, "default": 5},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.alert_feed",
		Name:        "Alerts",
		Description: "Latest triggered store alerts",
		Category:    "alerts",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 20},
				"severity": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type": "string",
						"enum": []string{"info", "warning", "critical"},
					},
					"uniqueItems": true,
				},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.report_catalog",
		Name:        "Reports",
		Description: "Available report definitions",
		Category:    "reports",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.billing_plans",
		Name:        "Plans",
		Description: "Subscription plans and the active tier",
		Category:    "billing",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"highlight": map[string]any{"type": "string"},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.shop_profile",
		Name:        "Store Profile",
		Description: "Shop name, plan, and contact details",
		Category:    "settings",
		Schema: map[string]any{
			"type":                 "object",
			"properties":           map[string]any{},
			"additionalProperties": false,
		},
	},
	{
		Code: "pulse.widget.recent_activity",
		Name: "Recent Activity",
		NameLocalized: map[string]string{
			"es": "Actividad reciente",
		},
		Description: "Latest store activity entries",
		Category:    "activity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"limit": map[string]any{"type": "integer", "minimum": 1, "maximum": 50, "default": 10},
			},
			"additionalProperties": false,
		},
	},
	{
		Code:        "pulse.widget.bar_chart",
		Name:        "Bar Chart",
		Description: "Interactive bar chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "pulse.widget.line_chart",
		Name:        "Line Chart",
		Description: "Interactive line chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "pulse.widget.pie_chart",
		Name:        "Pie Chart",
		Description: "Interactive pie chart visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        "pulse.widget.scatter_chart",
		Name:        "Scatter Chart",
		Description: "Value-vs-value scatter visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
	{
		Code:        "pulse.widget.gauge_chart",
		Name:        "Gauge Chart",
		Description: "Single-value gauge visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(false),
	},
	{
		Code:        "pulse.widget.heatmap_chart",
		Name:        "Heatmap Chart",
		Description: "Grid intensity visualization.",
		Category:    "charts",
		Schema:      chartConfigSchema(true),
	},
}

func chartThemes() []string {
	return []string{
		string(types.ThemeWesteros),
		string(types.ThemeWalden),
		string(types.ThemeWonderland),
		string(types.ThemeChalk),
	}
}

func listSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"limit":  map[string]any{"type": "integer", "minimum": 1, "maximum": 250, "default": 50},
			"search": map[string]any{"type": "string"},
		},
		"additionalProperties": false,
	}
}

func chartSeriesSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "data"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":    "string",
				"default": "Series",
			},
			"data": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"oneOf": []map[string]any{
						{"type": "number"},
						{
							"type":     "object",
							"required": []string{"value"},
							"properties": map[string]any{
								"name":  map[string]any{"type": "string"},
								"value": map[string]any{"type": "number"},
								"x":     map[string]any{"type": "number"},
								"y":     map[string]any{"type": "number"},
							},
						},
						{
							"type":     "object",
							"required": []string{"x", "y"},
							"properties": map[string]any{
								"name": map[string]any{"type": "string"},
								"x":    map[string]any{"type": "number"},
								"y":    map[string]any{"type": "number"},
							},
						},
						{
							"type":     "array",
							"minItems": 2,
							"items": map[string]any{
								"type": "number",
							},
						},
					},
				},
			},
		},
	}
}

func chartConfigSchema(includeAxis bool) map[string]any {
	props := map[string]any{
		"title": map[string]any{
			"type":    "string",
			"default": "Chart",
		},
		"subtitle": map[string]any{
			"type": "string",
		},
		"series": map[string]any{
			"type":     "array",
			"items":    chartSeriesSchema(),
			"minItems": 1,
		},
		"footer_note": map[string]any{
			"type": "string",
		},
		"theme": map[string]any{
			"type": "string",
			"enum": chartThemes(),
		},
		"dynamic": map[string]any{
			"type":    "boolean",
			"default": false,
		},
		"refresh_endpoint": map[string]any{
			"type": "string",
		},
		"show_chart_title": map[string]any{
			"type":    "boolean",
			"default": false,
		},
	}
	if includeAxis {
		props["x_axis"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
			},
		}
		props["y_axis"] = map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "string",
			},
		}
	}
	return map[string]any{
		"type":       "object",
		"required":   []string{"series"},
		"properties": props,
	}
}

func revenueTrendSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"days": map[string]any{
				"type":    "integer",
				"enum":    []int{7, 14, 30, 60, 90, 180},
				"default": 30,
			},
			"metric": map[string]any{
				"type":    "string",
				"enum":    []string{"revenue", "orders"},
				"default": "revenue",
			},
			"dynamic": map[string]any{
				"type":    "boolean",
				"default": false,
			},
			"refresh_endpoint": map[string]any{
				"type": "string",
			},
			"theme": map[string]any{
				"type": "string",
				"enum": chartThemes(),
			},
			"show_chart_title": map[string]any{
				"type":    "boolean",
				"default": false,
			},
			"footer_note": map[string]any{
				"type": "string",
			},
		},
		"additionalProperties": false,
	}
}

var defaultSeedConfigs = []AddWidgetRequest{
	{
		DefinitionID:  "pulse.widget.kpi_row",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"days": 30},
	},
	{
		DefinitionID:  "pulse.widget.revenue_trend",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"days": 30, "metric": "revenue"},
	},
	{
		DefinitionID:  "pulse.widget.channel_split",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"days": 30},
	},
	{
		DefinitionID:  "pulse.widget.order_status",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"days": 30},
	},
	{
		DefinitionID:  "pulse.widget.action_items",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"limit": 5},
	},
	{
		DefinitionID:  "pulse.widget.recent_activity",
		PageCode:      "pulse.page.overview",
		Configuration: map[string]any{"limit": 10},
	},
	{
		DefinitionID:  "pulse.widget.kpi_row",
		PageCode:      "pulse.page.sales",
		Configuration: map[string]any{"days": 90},
	},
	{
		DefinitionID:  "pulse.widget.revenue_trend",
		PageCode:      "pulse.page.sales",
		Configuration: map[string]any{"days": 90, "metric": "revenue"},
	},
	{
		DefinitionID:  "pulse.widget.revenue_heatmap",
		PageCode:      "pulse.page.sales",
		Configuration: map[string]any{"days": 30},
	},
	{
		DefinitionID:  "pulse.widget.channel_split",
		PageCode:      "pulse.page.sales",
		Configuration: map[string]any{"days": 90},
	},
	{
		DefinitionID:  "pulse.widget.order_list",
		PageCode:      "pulse.page.orders",
		Configuration: map[string]any{"limit": 50},
	},
	{
		DefinitionID:  "pulse.widget.order_status",
		PageCode:      "pulse.page.orders",
		Configuration: map[string]any{"days": 30},
	},
	{
		DefinitionID:  "pulse.widget.product_list",
		PageCode:      "pulse.page.products",
		Configuration: map[string]any{"limit": 50},
	},
	{
		DefinitionID:  "pulse.widget.customer_list",
		PageCode:      "pulse.page.customers",
		Configuration: map[string]any{"limit": 50},
	},
	{
		DefinitionID:  "pulse.widget.customer_split",
		PageCode:      "pulse.page.customers",
		Configuration: map[string]any{"days": 90},
	},
	{
		DefinitionID:  "pulse.widget.store_health",
		PageCode:      "pulse.page.ai_insights",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "pulse.widget.action_items",
		PageCode:      "pulse.page.ai_insights",
		Configuration: map[string]any{"limit": 10},
	},
	{
		DefinitionID:  "pulse.widget.conversion_funnel",
		PageCode:      "pulse.page.ai_insights",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "pulse.widget.alert_feed",
		PageCode:      "pulse.page.alerts",
		Configuration: map[string]any{"limit": 20},
	},
	{
		DefinitionID:  "pulse.widget.report_catalog",
		PageCode:      "pulse.page.reports",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "pulse.widget.shop_profile",
		PageCode:      "pulse.page.settings",
		Configuration: map[string]any{},
	},
	{
		DefinitionID:  "pulse.widget.billing_plans",
		PageCode:      "pulse.page.billing",
		Configuration: map[string]any{},
	},
}

// DefaultPageDefinitions returns copies of built-in page definitions.
func DefaultPageDefinitions() []PageDefinition {
	out := make([]PageDefinition, len(defaultPageDefinitions))
	copy(out, defaultPageDefinitions)
	return out
}

// DefaultPageCodes returns the built-in page codes in navigation order.
func DefaultPageCodes() []string {
	codes := make([]string, len(defaultPageDefinitions))
	for i, def := range defaultPageDefinitions {
		codes[i] = def.Code
	}
	return codes
}

// PageByPath returns the built-in page definition mounted at the given route.
func PageByPath(path string) (PageDefinition, bool) {
	for _, def := range defaultPageDefinitions {
		if def.Path == path {
			return def, true
		}
	}
	return PageDefinition{}, false
}

// DefaultWidgetDefinitions returns copies of built-in widget definitions.
func DefaultWidgetDefinitions() []WidgetDefinition {
	out := make([]WidgetDefinition, len(defaultWidgetDefinitions))
	copy(out, defaultWidgetDefinitions)
	return out
}

// DefaultSeedWidgets returns starter widget configurations.
func DefaultSeedWidgets() []AddWidgetRequest {
	out := make([]AddWidgetRequest, len(defaultSeedConfigs))
	for i, cfg := range defaultSeedConfigs {
		copyCfg := cfg
		if cfg.StartAt != nil {
			start := *cfg.StartAt
			copyCfg.StartAt = &start
		}
		if cfg.EndAt != nil {
			end := *cfg.EndAt
			copyCfg.EndAt = &end
		}
		out[i] = copyCfg
	}
	return out
}

// DefaultWidgetVisibility returns a permissive visibility configuration for seeds.
func DefaultWidgetVisibility() WidgetVisibility {
	now := time.Now().UTC()
	return WidgetVisibility{
		StartAt: &now,
	}
}
