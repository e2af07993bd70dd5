package dashboard

import (
	"fmt"
	"sort"
	"sync"
)

// WidgetHook lets host packages contribute widgets during init(), before any
// registry exists. Hooks run against every registry built afterwards.
type WidgetHook func(reg *Registry) error

var (
	globalHookMu sync.Mutex
	globalHooks  []WidgetHook
)

// RegisterWidgetHook queues a hook for future registries.
func RegisterWidgetHook(h WidgetHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// WidgetManifest pairs a definition with a live provider for programmatic
// registration. File-based packs go through LoadManifestFile instead.
type WidgetManifest struct {
	Definition WidgetDefinition
	Provider   Provider
}

// Registry is the widget catalog: definitions, their data providers, and any
// pack metadata. It implements ProviderRegistry for the service.
type Registry struct {
	mu           sync.RWMutex
	definitions  map[string]WidgetDefinition
	providers    map[string]Provider
	manifestMeta map[string]ManifestProvider
}

// NewRegistry builds a registry preloaded with the pulse widget catalog and
// applies any global hooks.
func NewRegistry() *Registry {
	reg := &Registry{
		definitions:  map[string]WidgetDefinition{},
		providers:    map[string]Provider{},
		manifestMeta: map[string]ManifestProvider{},
	}
	for _, def := range DefaultWidgetDefinitions() {
		_ = reg.RegisterDefinition(def)
		if provider, ok := defaultProviders[def.Code]; ok {
			_ = reg.RegisterProvider(def.Code, provider)
		}
	}
	_ = reg.ApplyHooks()
	return reg
}

// ApplyHooks executes the queued widget hooks against this registry.
func (r *Registry) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(r); err != nil {
			return err
		}
	}
	return nil
}

// LoadManifest registers definition/provider pairs built in code.
func (r *Registry) LoadManifest(items []WidgetManifest) error {
	for _, item := range items {
		if err := r.RegisterDefinition(item.Definition); err != nil {
			return err
		}
		if item.Provider != nil {
			if err := r.RegisterProvider(item.Definition.Code, item.Provider); err != nil {
				return err
			}
		}
	}
	return nil
}

// RegisterDefinition adds or replaces a widget definition. Localized name and
// description keys are normalized on the way in.
func (r *Registry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return fmt.Errorf("widget definition code is required")
	}
	def.normalizeLocalizedFields()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.definitions[def.Code] = def
	return nil
}

// RegisterProvider binds a data provider to an already registered definition.
func (r *Registry) RegisterProvider(code string, provider Provider) error {
	if code == "" {
		return fmt.Errorf("widget definition code is required to register provider")
	}
	if provider == nil {
		return fmt.Errorf("provider cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.definitions[code]; !ok {
		return fmt.Errorf("widget definition %s not found", code)
	}
	r.providers[code] = provider
	return nil
}

// Definition fetches a widget definition by code.
func (r *Registry) Definition(code string) (WidgetDefinition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.definitions[code]
	return def, ok
}

// Provider fetches the data provider bound to a widget code.
func (r *Registry) Provider(code string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.providers[code]
	return provider, ok
}

// ProviderMetadata returns pack metadata recorded for a widget, if any.
func (r *Registry) ProviderMetadata(code string) (ManifestProvider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.manifestMeta[code]
	return meta, ok
}

// Definitions lists every registered definition ordered by code.
func (r *Registry) Definitions() []WidgetDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]WidgetDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Code < defs[j].Code })
	return defs
}

func (r *Registry) recordProviderMetadata(code string, meta ManifestProvider) {
	if meta.isZero() {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.manifestMeta[code] = meta
}
