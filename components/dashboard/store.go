package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MemoryWidgetStore is a concurrency-safe WidgetStore for hosts without a
// durable backend. Demos, tests, and single-process deployments use it as is;
// production hosts implement WidgetStore over their own storage.
type MemoryWidgetStore struct {
	mu          sync.Mutex
	pages       map[string]PageDefinition
	definitions map[string]WidgetDefinition
	instances   map[string]WidgetInstance
	assignments map[string][]string
}

// NewMemoryWidgetStore creates an empty store.
func NewMemoryWidgetStore() *MemoryWidgetStore {
	return &MemoryWidgetStore{
		pages:       map[string]PageDefinition{},
		definitions: map[string]WidgetDefinition{},
		instances:   map[string]WidgetInstance{},
		assignments: map[string][]string{},
	}
}

// EnsurePage upserts a page definition. Returns true when newly created.
func (s *MemoryWidgetStore) EnsurePage(_ context.Context, def PageDefinition) (bool, error) {
	if def.Code == "" {
		return false, fmt.Errorf("dashboard: page code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.pages[def.Code]
	s.pages[def.Code] = def
	return !exists, nil
}

// EnsureDefinition upserts a widget definition. Returns true when newly created.
func (s *MemoryWidgetStore) EnsureDefinition(_ context.Context, def WidgetDefinition) (bool, error) {
	if def.Code == "" {
		return false, fmt.Errorf("dashboard: widget definition code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.definitions[def.Code]
	s.definitions[def.Code] = def
	return !exists, nil
}

// CreateInstance stores a new widget instance with a generated ID.
func (s *MemoryWidgetStore) CreateInstance(_ context.Context, input CreateWidgetInstanceInput) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance := WidgetInstance{
		ID:            uuid.NewString(),
		DefinitionID:  input.DefinitionID,
		Configuration: cloneAnyMap(input.Configuration),
		Metadata:      cloneAnyMap(input.Metadata),
	}
	s.instances[instance.ID] = instance
	return instance, nil
}

// UpdateInstance replaces configuration/metadata when provided.
func (s *MemoryWidgetStore) UpdateInstance(_ context.Context, instanceID string, input UpdateWidgetInstanceInput) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.instances[instanceID]
	if !ok {
		return WidgetInstance{}, fmt.Errorf("dashboard: widget instance %s not found", instanceID)
	}
	if input.Configuration != nil {
		instance.Configuration = cloneAnyMap(input.Configuration)
	}
	if input.Metadata != nil {
		instance.Metadata = cloneAnyMap(input.Metadata)
	}
	s.instances[instanceID] = instance
	return instance, nil
}

// Instance fetches a widget instance by ID.
func (s *MemoryWidgetStore) Instance(_ context.Context, instanceID string) (WidgetInstance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.instances[instanceID]
	if !ok {
		return WidgetInstance{}, fmt.Errorf("dashboard: widget instance %s not found", instanceID)
	}
	return instance, nil
}

// DeleteInstance removes the instance and all of its page assignments.
func (s *MemoryWidgetStore) DeleteInstance(_ context.Context, instanceID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.instances, instanceID)
	for page, ids := range s.assignments {
		s.assignments[page] = removeID(ids, instanceID)
	}
	return nil
}

// AssignInstance places the instance on a page, honoring an explicit position.
func (s *MemoryWidgetStore) AssignInstance(_ context.Context, input AssignWidgetInput) error {
	if input.PageCode == "" {
		return fmt.Errorf("dashboard: page code is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	instance, ok := s.instances[input.InstanceID]
	if !ok {
		return fmt.Errorf("dashboard: widget instance %s not found", input.InstanceID)
	}
	instance.PageCode = input.PageCode
	s.instances[input.InstanceID] = instance

	order := removeID(s.assignments[input.PageCode], input.InstanceID)
	if input.Position != nil && *input.Position >= 0 && *input.Position <= len(order) {
		idx := *input.Position
		order = append(order[:idx], append([]string{input.InstanceID}, order[idx:]...)...)
	} else {
		order = append(order, input.InstanceID)
	}
	s.assignments[input.PageCode] = order
	return nil
}

// ReorderPage replaces the page's default widget order.
func (s *MemoryWidgetStore) ReorderPage(_ context.Context, input ReorderPageInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assignments[input.PageCode] = append([]string{}, input.WidgetIDs...)
	return nil
}

// ResolvePage returns the page's widget instances in stored order.
func (s *MemoryWidgetStore) ResolvePage(_ context.Context, input ResolvePageInput) (ResolvedPage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := s.assignments[input.PageCode]
	widgets := make([]WidgetInstance, 0, len(ids))
	for _, id := range ids {
		if instance, ok := s.instances[id]; ok {
			widgets = append(widgets, instance)
		}
	}
	return ResolvedPage{
		PageCode: input.PageCode,
		Widgets:  widgets,
	}, nil
}

var _ WidgetStore = (*MemoryWidgetStore)(nil)

func removeID(ids []string, drop string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

func cloneAnyMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
