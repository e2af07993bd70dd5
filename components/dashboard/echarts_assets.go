package dashboard

import (
	"os"
	"strings"
)

const (
	// DefaultEChartsCDN serves the ECharts runtime and themes when no override
	// is configured. The runtime loads client-side only; server rendering emits
	// a fixed-height container plus a deferred script tag.
	DefaultEChartsCDN = "https://go-echarts.github.io/go-echarts-assets/assets/"
	// envEChartsCDN overrides the assets host (e.g. a self-hosted bucket).
	envEChartsCDN = "PULSE_ECHARTS_CDN"
)

// DefaultEChartsAssetsHost returns the assets host, respecting PULSE_ECHARTS_CDN.
func DefaultEChartsAssetsHost() string {
	if host := strings.TrimSpace(os.Getenv(envEChartsCDN)); host != "" {
		return ensureTrailingSlash(host)
	}
	return DefaultEChartsCDN
}

func ensureTrailingSlash(value string) string {
	if value == "" {
		return ""
	}
	if strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
