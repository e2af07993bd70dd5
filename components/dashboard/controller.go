package dashboard

import (
	"context"
	"errors"
	"io"
)

// ControllerService is the service surface the controller renders from.
type ControllerService interface {
	ConfigureLayout(ctx context.Context, viewer ViewerContext) (Layout, error)
}

// Optional service surfaces. The controller degrades gracefully when the
// configured service does not implement them.
type pageResolver interface {
	ResolvePage(ctx context.Context, viewer ViewerContext, pageCode string) (ResolvedPage, error)
}

type preferenceReader interface {
	Preferences(ctx context.Context, viewer ViewerContext) (Preferences, error)
}

// ControllerOptions wires the controller's collaborators.
type ControllerOptions struct {
	Service       ControllerService
	Renderer      Renderer
	Template      string
	PageTemplate  string
	Pages         []PageDefinition
	Themes        ThemeProvider
	ThemeSelector ThemeSelectorFunc
}

// Controller renders dashboard pages as HTML and exposes JSON payloads for
// transports.
type Controller struct {
	opts ControllerOptions
}

// NewController wires the service and renderer into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = "dashboard.html"
	}
	if opts.PageTemplate == "" {
		opts.PageTemplate = "page.html"
	}
	if len(opts.Pages) == 0 {
		opts.Pages = DefaultPageDefinitions()
	}
	return &Controller{opts: opts}
}

// Render resolves the layout for a viewer and returns it to the caller.
func (c *Controller) Render(ctx context.Context, viewer ViewerContext) (Layout, error) {
	if c.opts.Service == nil {
		return Layout{}, nil
	}
	return c.opts.Service.ConfigureLayout(ctx, viewer)
}

// RenderTemplate writes the full dashboard HTML shell for the viewer.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller requires a renderer")
	}
	payload, err := c.LayoutPayload(ctx, viewer)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, payload, out)
	return err
}

// RenderPage writes the HTML for a single dashboard page.
func (c *Controller) RenderPage(ctx context.Context, viewer ViewerContext, pageCode string, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errors.New("dashboard: controller requires a renderer")
	}
	payload, err := c.PagePayload(ctx, viewer, pageCode)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.PageTemplate, payload, out)
	return err
}

// LayoutPayload resolves the full layout plus navigation and preferences into
// a template/JSON payload.
func (c *Controller) LayoutPayload(ctx context.Context, viewer ViewerContext) (map[string]any, error) {
	layout, err := c.Render(ctx, viewer)
	if err != nil {
		return nil, err
	}
	payload := map[string]any{
		"layout":     layout,
		"pages":      layout.Pages,
		"page_views": c.pageViews(layout),
		"navigation": c.navigation(),
		"viewer":     viewer,
	}
	c.attachPreferences(ctx, viewer, payload)
	c.attachTheme(ctx, viewer, payload)
	return payload, nil
}

// PageView pairs a page definition with its resolved widgets for templates.
type PageView struct {
	Page    PageDefinition
	Widgets []WidgetInstance
}

func (c *Controller) pageViews(layout Layout) []PageView {
	views := make([]PageView, 0, len(c.opts.Pages))
	for _, page := range c.opts.Pages {
		views = append(views, PageView{
			Page:    page,
			Widgets: layout.Pages[page.Code],
		})
	}
	return views
}

// PagePayload resolves one page into a template/JSON payload.
func (c *Controller) PagePayload(ctx context.Context, viewer ViewerContext, pageCode string) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("dashboard: controller requires a service")
	}
	var (
		resolved ResolvedPage
		err      error
	)
	if resolver, ok := c.opts.Service.(pageResolver); ok {
		resolved, err = resolver.ResolvePage(ctx, viewer, pageCode)
		if err != nil {
			return nil, err
		}
	} else {
		layout, layoutErr := c.opts.Service.ConfigureLayout(ctx, viewer)
		if layoutErr != nil {
			return nil, layoutErr
		}
		resolved = ResolvedPage{PageCode: pageCode, Widgets: layout.Pages[pageCode]}
	}
	payload := map[string]any{
		"page":       c.pageDefinition(pageCode),
		"widgets":    resolved.Widgets,
		"navigation": c.navigation(),
		"viewer":     viewer,
	}
	c.attachPreferences(ctx, viewer, payload)
	c.attachTheme(ctx, viewer, payload)
	return payload, nil
}

func (c *Controller) attachPreferences(ctx context.Context, viewer ViewerContext, payload map[string]any) {
	reader, ok := c.opts.Service.(preferenceReader)
	if !ok {
		return
	}
	prefs, err := reader.Preferences(ctx, viewer)
	if err != nil {
		return
	}
	payload["preferences"] = prefs
	payload["theme"] = prefs.Theme
	payload["layout_unlocked"] = prefs.LayoutUnlocked
}

// attachTheme resolves the viewer's theme into CSS variables and chart
// styling. Selection falls back to the saved preference theme name.
func (c *Controller) attachTheme(ctx context.Context, viewer ViewerContext, payload map[string]any) {
	if c.opts.Themes == nil {
		return
	}
	selector := ThemeSelector{}
	if c.opts.ThemeSelector != nil {
		selector = c.opts.ThemeSelector(ctx, viewer)
	} else if name, ok := payload["theme"].(string); ok {
		selector.Name = name
	}
	selection, err := c.opts.Themes.SelectTheme(ctx, selector)
	if err != nil || selection == nil {
		return
	}
	payload["theme_selection"] = selection
	if css := selection.CSSVariablesInline(); css != "" {
		payload["theme_css"] = css
	}
	if assets := selection.Assets.Resolved(); len(assets) > 0 {
		payload["theme_assets"] = assets
	}
	if selection.ChartTheme != "" {
		payload["chart_theme"] = selection.ChartTheme
	}
}

// NavSection groups pages for the sidebar.
type NavSection struct {
	Name  string
	Pages []PageDefinition
}

func (c *Controller) navigation() []NavSection {
	var sections []NavSection
	index := map[string]int{}
	for _, page := range c.opts.Pages {
		pos, ok := index[page.Section]
		if !ok {
			pos = len(sections)
			index[page.Section] = pos
			sections = append(sections, NavSection{Name: page.Section})
		}
		sections[pos].Pages = append(sections[pos].Pages, page)
	}
	return sections
}

func (c *Controller) pageDefinition(code string) PageDefinition {
	for _, page := range c.opts.Pages {
		if page.Code == code {
			return page
		}
	}
	return PageDefinition{Code: code}
}
