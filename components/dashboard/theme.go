package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-echarts/go-echarts/v2/types"
)

// ThemeProvider resolves a theme selector into design tokens, assets, and
// chart styling. It is optional; when absent the dashboard renders with the
// template defaults.
type ThemeProvider interface {
	SelectTheme(ctx context.Context, selector ThemeSelector) (*ThemeSelection, error)
}

// ThemeSelectorFunc chooses the theme name/variant for a given viewer.
type ThemeSelectorFunc func(ctx context.Context, viewer ViewerContext) ThemeSelector

// ThemeSelector describes the desired theme/variant.
type ThemeSelector struct {
	Name    string
	Variant string
}

// ThemeSelection carries resolved theme details (tokens, assets, templates).
type ThemeSelection struct {
	Name       string
	Variant    string
	Tokens     map[string]string
	Assets     ThemeAssets
	Templates  map[string]string
	ChartTheme string
}

// ThemeAssets provides asset metadata plus optional prefix/resolver.
type ThemeAssets struct {
	Values   map[string]string
	Prefix   string
	Resolver func(string) string
}

// AssetURL resolves the final URL for a named asset (logo, favicon, etc.).
func (assets ThemeAssets) AssetURL(name string) string {
	if len(assets.Values) == 0 {
		return ""
	}
	path := assets.Values[name]
	if path == "" {
		return ""
	}
	if assets.Resolver != nil {
		if resolved := assets.Resolver(path); resolved != "" {
			return resolved
		}
	}
	if assets.Prefix != "" {
		return strings.TrimRight(assets.Prefix, "/") + "/" + strings.TrimLeft(path, "/")
	}
	return path
}

// Resolved returns a map of asset keys to resolved URLs.
func (assets ThemeAssets) Resolved() map[string]string {
	if len(assets.Values) == 0 {
		return nil
	}
	out := make(map[string]string, len(assets.Values))
	for key := range assets.Values {
		if url := assets.AssetURL(key); url != "" {
			out[key] = url
		}
	}
	return out
}

// CSSVariables normalizes token keys into CSS variable names.
func (theme *ThemeSelection) CSSVariables() map[string]string {
	if theme == nil || len(theme.Tokens) == 0 {
		return nil
	}
	vars := make(map[string]string, len(theme.Tokens))
	for key, value := range theme.Tokens {
		name := normalizeCSSVariable(key)
		if name == "" {
			continue
		}
		vars[name] = value
	}
	return vars
}

// CSSVariablesInline renders the CSS variable map as a style string.
func (theme *ThemeSelection) CSSVariablesInline() string {
	vars := theme.CSSVariables()
	if len(vars) == 0 {
		return ""
	}
	var builder strings.Builder
	for key, value := range vars {
		if value == "" {
			continue
		}
		builder.WriteString(key)
		builder.WriteString(": ")
		builder.WriteString(value)
		builder.WriteString("; ")
	}
	return strings.TrimSpace(builder.String())
}

// AssetURL resolves a named asset using the selection assets.
func (theme *ThemeSelection) AssetURL(name string) string {
	if theme == nil {
		return ""
	}
	return theme.Assets.AssetURL(name)
}

// TemplatePath retrieves a theme-specific template if present.
func (theme *ThemeSelection) TemplatePath(key string) string {
	if theme == nil || len(theme.Templates) == 0 {
		return ""
	}
	return theme.Templates[key]
}

func normalizeCSSVariable(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if strings.HasPrefix(name, "--") {
		return name
	}
	return "--" + name
}

// NewStaticThemeProvider serves the built-in light and dark themes, keyed by
// the preference theme names.
func NewStaticThemeProvider() ThemeProvider {
	return staticThemeProvider{}
}

type staticThemeProvider struct{}

func (staticThemeProvider) SelectTheme(_ context.Context, selector ThemeSelector) (*ThemeSelection, error) {
	name := selector.Name
	if name == "" {
		name = ThemeLight
	}
	selection, ok := builtinThemes[name]
	if !ok {
		return nil, fmt.Errorf("dashboard: unknown theme %q", name)
	}
	return cloneThemeSelection(selection), nil
}

var builtinThemes = map[string]*ThemeSelection{
	ThemeLight: {
		Name:       ThemeLight,
		ChartTheme: string(types.ThemeWesteros),
		Tokens: map[string]string{
			"pulse-bg":      "#f6f6f7",
			"pulse-surface": "#ffffff",
			"pulse-text":    "#202223",
			"pulse-muted":   "#6d7175",
			"pulse-accent":  "#008060",
			"pulse-border":  "#e1e3e5",
		},
	},
	ThemeDark: {
		Name:       ThemeDark,
		ChartTheme: string(types.ThemeChalk),
		Tokens: map[string]string{
			"pulse-bg":      "#1a1c1d",
			"pulse-surface": "#202223",
			"pulse-text":    "#e3e5e7",
			"pulse-muted":   "#8c9196",
			"pulse-accent":  "#00a47c",
			"pulse-border":  "#3e4345",
		},
	},
}

// ChartThemeResolver adapts a theme provider into the per-viewer resolver the
// chart renderer accepts.
func ChartThemeResolver(themes ThemeProvider, selector ThemeSelectorFunc) ThemeResolver {
	return func(viewer ViewerContext) string {
		if themes == nil {
			return ""
		}
		ctx := context.Background()
		sel := ThemeSelector{}
		if selector != nil {
			sel = selector(ctx, viewer)
		}
		selection, err := themes.SelectTheme(ctx, sel)
		if err != nil || selection == nil {
			return ""
		}
		return selection.ChartTheme
	}
}

func cloneThemeSelection(selection *ThemeSelection) *ThemeSelection {
	if selection == nil {
		return nil
	}
	cloned := *selection
	if len(selection.Tokens) > 0 {
		cloned.Tokens = make(map[string]string, len(selection.Tokens))
		for key, value := range selection.Tokens {
			cloned.Tokens[key] = value
		}
	}
	if len(selection.Templates) > 0 {
		cloned.Templates = make(map[string]string, len(selection.Templates))
		for key, value := range selection.Templates {
			cloned.Templates[key] = value
		}
	}
	if len(selection.Assets.Values) > 0 {
		cloned.Assets.Values = make(map[string]string, len(selection.Assets.Values))
		for key, value := range selection.Assets.Values {
			cloned.Assets.Values[key] = value
		}
	}
	return &cloned
}
