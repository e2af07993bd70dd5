package dashboard

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEChartsBarProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar")
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title":  "Test Chart",
		"x_axis": []string{"A", "B", "C"},
		"series": []map[string]any{
			{"name": "Series 1", "data": []float64{10, 20, 30}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, "bar", data["chart_type"])
	assert.Equal(t, "Test Chart", data["title"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsLineProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line")
	ctx := sampleChartContext("pulse.widget.line_chart", map[string]any{
		"title":  "Line Test",
		"x_axis": []string{"Day 1", "Day 2", "Day 3"},
		"series": []map[string]any{
			{"name": "Metric", "data": []float64{100, 150, 120}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "line", data["chart_type"])
	assert.Equal(t, "Line Test", data["title"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsPieProvider(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("pie")
	ctx := sampleChartContext("pulse.widget.pie_chart", map[string]any{
		"title": "Pie Test",
		"series": []map[string]any{
			{
				"name": "Categories",
				"data": []map[string]any{
					{"name": "Cat A", "value": 100},
					{"name": "Cat B", "value": 200},
				},
			},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "pie", data["chart_type"])
	assert.Equal(t, "Pie Test", data["title"])
	assert.Contains(t, html(data), "echarts")
}

func TestEChartsProviderInvalidType(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bubble")
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title": "Unsupported",
		"series": []map[string]any{
			{"name": "Series", "data": []float64{1}},
		},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestEChartsProviderRequiresSeries(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar")
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title": "No Data",
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "series")
}

func TestEChartsProviderUsesCache(t *testing.T) {
	t.Parallel()
	cache := &countingCache{}
	provider := NewEChartsProvider("bar", WithChartCache(cache))
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title":  "Cached",
		"series": []map[string]any{{"name": "Series", "data": []float64{1, 2}}},
	})

	_, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	_, err = provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), cache.calls)
}

func TestEChartsProviderConfigThemeBeatsResolver(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartThemeResolver(func(viewer ViewerContext) string {
		return string(types.ThemeWalden)
	}))
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title": "Theme Override",
		"series": []map[string]any{
			{"name": "Series", "data": []float64{5, 6}},
		},
		"theme": "wonderland",
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, "wonderland", data["theme"])
}

func TestEChartsProviderThemeResolver(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("bar", WithChartThemeResolver(func(viewer ViewerContext) string {
		return string(types.ThemeWalden)
	}))
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title":  "Resolver Theme",
		"x_axis": []string{"A", "B"},
		"series": []map[string]any{
			{"name": "Series", "data": []float64{1, 2}},
		},
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, string(types.ThemeWalden), data["theme"])
}

func TestEChartsProviderDynamicConfig(t *testing.T) {
	t.Parallel()
	provider := NewEChartsProvider("line")
	ctx := sampleChartContext("pulse.widget.line_chart", map[string]any{
		"title":            "Dynamic",
		"series":           []map[string]any{{"name": "S", "data": []float64{1, 2}}},
		"dynamic":          true,
		"refresh_endpoint": "/app/widgets/refresh",
	})

	data, err := provider.Fetch(context.Background(), ctx)
	require.NoError(t, err)
	assert.Equal(t, true, data["dynamic"])
	assert.Equal(t, "/app/widgets/refresh", data["refresh_endpoint"])
}

func TestServiceIntegratesEChartsProvider(t *testing.T) {
	store := NewMemoryWidgetStore()
	registry := NewRegistry()
	service := NewService(Options{
		WidgetStore:     store,
		Providers:       registry,
		ConfigValidator: noopConfigValidator{},
	})
	err := service.AddWidget(context.Background(), AddWidgetRequest{
		DefinitionID: "pulse.widget.bar_chart",
		PageCode:     "pulse.page.reports",
		Configuration: map[string]any{
			"title":  "Layout Chart",
			"x_axis": []string{"Mon", "Tue"},
			"series": []map[string]any{
				{"name": "Series", "data": []float64{1, 2}},
			},
		},
	})
	require.NoError(t, err)

	layout, err := service.ConfigureLayout(context.Background(), ViewerContext{UserID: "integration"})
	require.NoError(t, err)

	page := layout.Pages["pulse.page.reports"]
	require.NotEmpty(t, page)

	var chart WidgetInstance
	for _, widget := range page {
		if widget.DefinitionID == "pulse.widget.bar_chart" {
			chart = widget
			break
		}
	}
	require.NotNil(t, chart.Metadata)
	data, ok := chart.Metadata["data"].(WidgetData)
	require.True(t, ok, "chart metadata should include widget data")

	assert.Contains(t, data["title"], "Layout Chart")
	assert.Contains(t, data["chart_type"], "bar")
	assert.Contains(t, html(data), "echarts")
}

func sampleChartContext(definition string, cfg map[string]any) WidgetContext {
	return WidgetContext{
		Instance: WidgetInstance{
			ID:            definition + "-instance",
			DefinitionID:  definition,
			Configuration: cfg,
		},
		Viewer: ViewerContext{UserID: "tester", Locale: "en"},
	}
}

func html(data WidgetData) string {
	val, _ := data["chart_html"].(string)
	return strings.ToLower(val)
}

type countingCache struct {
	calls int32
	value string
}

func (c *countingCache) GetOrRender(_ string, render func() (string, error)) (string, error) {
	if c.value != "" {
		return c.value, nil
	}
	html, err := render()
	if err != nil {
		return "", err
	}
	atomic.AddInt32(&c.calls, 1)
	c.value = html
	return html, nil
}

func BenchmarkEChartsBarChart(b *testing.B) {
	provider := NewEChartsProvider("bar")
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title":  "Benchmark",
		"x_axis": []string{"A", "B", "C", "D", "E"},
		"series": []map[string]any{
			{"name": "S1", "data": []float64{10, 20, 30, 40, 50}},
			{"name": "S2", "data": []float64{11, 21, 31, 41, 51}},
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEChartsBarChartCached(b *testing.B) {
	cache := NewChartCache(5 * time.Minute)
	provider := NewEChartsProvider("bar", WithChartCache(cache))
	ctx := sampleChartContext("pulse.widget.bar_chart", map[string]any{
		"title":  "Cached Benchmark",
		"x_axis": []string{"A", "B", "C", "D", "E"},
		"series": []map[string]any{
			{"name": "S1", "data": []float64{10, 20, 30, 40, 50}},
			{"name": "S2", "data": []float64{11, 21, 31, 41, 51}},
		},
	})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := provider.Fetch(context.Background(), ctx); err != nil {
			b.Fatal(err)
		}
	}
}
