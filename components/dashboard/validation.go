package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigValidator checks a widget configuration against the definition's
// declared schema before the instance is created or updated.
type ConfigValidator interface {
	Validate(def WidgetDefinition, config map[string]any) error
}

// JSONSchemaValidator validates widget settings (date ranges, row limits,
// thresholds) with jsonschema v5. Compiled schemas are cached per widget code
// since definitions rarely change at runtime.
type JSONSchemaValidator struct {
	mu      sync.RWMutex
	schemas map[string]*jsonschema.Schema
}

// NewJSONSchemaValidator builds an empty validator.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{schemas: make(map[string]*jsonschema.Schema)}
}

// Validate checks config against the widget's schema. Definitions without a
// schema accept any configuration; a nil config validates as an empty object.
func (v *JSONSchemaValidator) Validate(def WidgetDefinition, config map[string]any) error {
	if len(def.Schema) == 0 {
		return nil
	}
	schema, err := v.compiledSchema(def)
	if err != nil {
		return err
	}
	payload, err := normalizeConfig(def.Code, config)
	if err != nil {
		return err
	}
	if err := schema.Validate(payload); err != nil {
		return fmt.Errorf("dashboard: configuration for %s failed validation: %w", def.Code, err)
	}
	return nil
}

// normalizeConfig round-trips the config through JSON so typed values (ints,
// decimals) compare the way the schema expects.
func normalizeConfig(code string, config map[string]any) (map[string]any, error) {
	if config == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal config for %s: %w", code, err)
	}
	var payload map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("dashboard: normalize config for %s: %w", code, err)
	}
	return payload, nil
}

func (v *JSONSchemaValidator) compiledSchema(def WidgetDefinition) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.schemas[def.Code]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(def.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", def.Code, err)
	}
	compiler := jsonschema.NewCompiler()
	name := def.Code + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", def.Code, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", def.Code, err)
	}
	v.mu.Lock()
	v.schemas[def.Code] = compiled
	v.mu.Unlock()
	return compiled, nil
}

type noopConfigValidator struct{}

func (noopConfigValidator) Validate(WidgetDefinition, map[string]any) error { return nil }
