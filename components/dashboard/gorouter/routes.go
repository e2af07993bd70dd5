package gorouter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	router "github.com/goliatone/go-router"

	"github.com/shoppulse/pulse/components/dashboard"
	"github.com/shoppulse/pulse/components/dashboard/commands"
	"github.com/shoppulse/pulse/components/dashboard/httpapi"
)

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// Config wires go-router with dashboard controllers, APIs, and hooks.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Pages          []dashboard.PageDefinition
	Routes         RouteConfig
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	HTML        string
	Page        string
	Layout      string
	Widgets     string
	WidgetID    string
	Reorder     string
	Refresh     string
	Preferences string
	Order       string
	Theme       string
	Lock        string
	WebSocket   string
}

// Register mounts dashboard routes (HTML, JSON, REST, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	routes := cfg.routes()
	base := cfg.BasePath
	if base == "" {
		base = "/app"
	}
	pages := cfg.Pages
	if len(pages) == 0 {
		pages = dashboard.DefaultPageDefinitions()
	}
	viewerResolver := cfg.ViewerResolver
	if viewerResolver == nil {
		viewerResolver = defaultViewerResolver
	}

	group := cfg.Router.Group(base)

	group.Get(routes.HTML, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderTemplate(ctx.Context(), viewer, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		slug := ctx.Param("page")
		code, ok := pageCodeForSlug(pages, slug)
		if !ok {
			return respondError(ctx, http.StatusNotFound, errors.New("unknown page "+slug))
		}
		viewer := viewerResolver(ctx)
		var buf bytes.Buffer
		if err := cfg.Controller.RenderPage(ctx.Context(), viewer, code, &buf); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
		return ctx.Send(buf.Bytes())
	}))

	group.Get(routes.Layout, router.WrapHandler(func(ctx router.Context) error {
		viewer := viewerResolver(ctx)
		payload, err := cfg.Controller.LayoutPayload(ctx.Context(), viewer)
		if err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, payload)
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, viewerResolver, routes)
	}

	if cfg.Broadcast != nil {
		registerWebSocket(group, cfg.Broadcast, routes.WebSocket)
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, resolver ViewerResolver, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload dashboard.AddWidgetRequest
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Assign(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemoveWidgetInput{WidgetID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		var payload commands.UpdateWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.WidgetID = id
		if err := api.Update(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Post(routes.Reorder, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.ReorderWidgetsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Reorder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "reordered"})
	}))

	r.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.RefreshWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Refresh(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusAccepted, map[string]string{"status": "queued"})
	}))

	r.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SavePreferencesInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.Preferences(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Order, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SaveWidgetOrderInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.WidgetOrder(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))

	r.Post(routes.Theme, router.WrapHandler(func(ctx router.Context) error {
		payload := commands.ToggleThemeInput{Viewer: resolver(ctx)}
		if err := api.ToggleTheme(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "toggled"})
	}))

	r.Post(routes.Lock, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetLayoutLockInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		payload.Viewer = resolver(ctx)
		if err := api.SetLayoutLock(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func registerWebSocket[T any](r router.Router[T], hook *dashboard.BroadcastHook, path string) {
	cfg := router.DefaultWebSocketConfig()
	r.WebSocket(path, cfg, func(ws router.WebSocketContext) error {
		events, cancel := hook.Subscribe()
		defer cancel()
		for {
			select {
			case event, ok := <-events:
				if !ok {
					return nil
				}
				if err := ws.WriteJSON(event); err != nil {
					return err
				}
			case <-ws.Context().Done():
				return ws.Close()
			}
		}
	})
}

// pageCodeForSlug resolves the trailing path segment of a page definition
// ("sales" for "/app/sales") to its page code.
func pageCodeForSlug(pages []dashboard.PageDefinition, slug string) (string, bool) {
	slug = strings.Trim(strings.ToLower(slug), "/")
	if slug == "" {
		return "", false
	}
	for _, page := range pages {
		path := strings.Trim(page.Path, "/")
		if idx := strings.LastIndex(path, "/"); idx >= 0 {
			path = path[idx+1:]
		}
		if path == slug {
			return page.Code, true
		}
	}
	return "", false
}

func defaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	var viewer dashboard.ViewerContext
	if v, ok := ctx.Locals("user_id").(string); ok {
		viewer.UserID = v
	}
	if shop, ok := ctx.Locals("shop_domain").(string); ok {
		viewer.ShopDomain = shop
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx router.Context) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Param("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return ""
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func (cfg Config[T]) routes() RouteConfig {
	routes := defaultRouteConfig(cfg.Routes)
	return routes
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.HTML == "" {
		routes.HTML = "/"
	}
	if routes.Page == "" {
		routes.Page = "/:page"
	}
	if routes.Layout == "" {
		routes.Layout = "/_layout"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/widgets/:id"
	}
	if routes.Reorder == "" {
		routes.Reorder = "/widgets/reorder"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/widgets/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/preferences"
	}
	if routes.Order == "" {
		routes.Order = "/preferences/order"
	}
	if routes.Theme == "" {
		routes.Theme = "/preferences/theme"
	}
	if routes.Lock == "" {
		routes.Lock = "/preferences/lock"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/ws"
	}
	return routes
}
