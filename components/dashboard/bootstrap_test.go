package dashboard

import (
	"context"
	"errors"
	"testing"
)

type memoryStore struct {
	pages       map[string]PageDefinition
	defs        map[string]WidgetDefinition
	instances   map[string]WidgetInstance
	assignCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		pages:     map[string]PageDefinition{},
		defs:      map[string]WidgetDefinition{},
		instances: map[string]WidgetInstance{},
	}
}

func (m *memoryStore) EnsurePage(ctx context.Context, def PageDefinition) (bool, error) {
	if _, ok := m.pages[def.Code]; ok {
		return false, nil
	}
	m.pages[def.Code] = def
	return true, nil
}

func (m *memoryStore) EnsureDefinition(ctx context.Context, def WidgetDefinition) (bool, error) {
	if _, ok := m.defs[def.Code]; ok {
		return false, nil
	}
	m.defs[def.Code] = def
	return true, nil
}

func (m *memoryStore) CreateInstance(ctx context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error) {
	instance := WidgetInstance{ID: input.DefinitionID + "-instance", DefinitionID: input.DefinitionID}
	m.instances[instance.ID] = instance
	return instance, nil
}

func (m *memoryStore) UpdateInstance(ctx context.Context, instanceID string, input UpdateWidgetInstanceInput) (WidgetInstance, error) {
	instance, ok := m.instances[instanceID]
	if !ok {
		return WidgetInstance{}, errors.New("instance not found")
	}
	return instance, nil
}

func (m *memoryStore) Instance(ctx context.Context, instanceID string) (WidgetInstance, error) {
	instance, ok := m.instances[instanceID]
	if !ok {
		return WidgetInstance{}, errors.New("instance not found")
	}
	return instance, nil
}

func (m *memoryStore) DeleteInstance(context.Context, string) error { return nil }

func (m *memoryStore) AssignInstance(context.Context, AssignWidgetInput) error {
	m.assignCalls++
	return nil
}

func (m *memoryStore) ReorderPage(context.Context, ReorderPageInput) error { return nil }

func (m *memoryStore) ResolvePage(context.Context, ResolvePageInput) (ResolvedPage, error) {
	return ResolvedPage{Widgets: []WidgetInstance{}}, nil
}

type fakeRegistry struct {
	count int
}

func (f *fakeRegistry) RegisterDefinition(def WidgetDefinition) error {
	if def.Code == "" {
		return errors.New("missing code")
	}
	f.count++
	return nil
}

func (fakeRegistry) RegisterProvider(string, Provider) error { return nil }
func (fakeRegistry) Definition(string) (WidgetDefinition, bool) {
	return WidgetDefinition{}, false
}
func (fakeRegistry) Provider(string) (Provider, bool) { return nil, false }
func (fakeRegistry) Definitions() []WidgetDefinition  { return nil }

func TestRegisterPagesIdempotent(t *testing.T) {
	store := newMemoryStore()
	ctx := context.Background()
	if err := RegisterPages(ctx, store); err != nil {
		t.Fatalf("RegisterPages returned error: %v", err)
	}
	firstCount := len(store.pages)
	if firstCount != len(DefaultPageDefinitions()) {
		t.Fatalf("expected %d pages, got %d", len(DefaultPageDefinitions()), firstCount)
	}
	if err := RegisterPages(ctx, store); err != nil {
		t.Fatalf("RegisterPages second run returned error: %v", err)
	}
	if len(store.pages) != firstCount {
		t.Fatalf("expected idempotent page registration")
	}
}

func TestRegisterDefinitionsRegistersRegistry(t *testing.T) {
	store := newMemoryStore()
	reg := &fakeRegistry{}
	if err := RegisterDefinitions(context.Background(), store, reg); err != nil {
		t.Fatalf("RegisterDefinitions returned error: %v", err)
	}
	if len(store.defs) != len(DefaultWidgetDefinitions()) {
		t.Fatalf("expected %d defs, got %d", len(DefaultWidgetDefinitions()), len(store.defs))
	}
	if reg.count != len(DefaultWidgetDefinitions()) {
		t.Fatalf("expected registry to receive %d defs, got %d", len(DefaultWidgetDefinitions()), reg.count)
	}
}

func TestSeedLayoutAddsWidgets(t *testing.T) {
	store := newMemoryStore()
	service := NewService(Options{WidgetStore: store})
	if err := SeedLayout(context.Background(), service); err != nil {
		t.Fatalf("SeedLayout returned error: %v", err)
	}
	if store.assignCalls != len(DefaultSeedWidgets()) {
		t.Fatalf("expected %d assign calls, got %d", len(DefaultSeedWidgets()), store.assignCalls)
	}
}
