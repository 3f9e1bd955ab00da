package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// PayloadValidator validates editor widget payloads against the
// descriptor schema for their type.
type PayloadValidator interface {
	Validate(desc WidgetDescriptor, payload map[string]any) error
}

// JSONSchemaValidator compiles descriptor schemas once and validates
// payload maps against them.
type JSONSchemaValidator struct {
	mu       sync.RWMutex
	compiled map[WidgetType]*jsonschema.Schema
}

// NewJSONSchemaValidator builds a validator backed by jsonschema v5.
func NewJSONSchemaValidator() *JSONSchemaValidator {
	return &JSONSchemaValidator{
		compiled: make(map[WidgetType]*jsonschema.Schema),
	}
}

// Validate ensures the payload satisfies the widget type's schema.
func (v *JSONSchemaValidator) Validate(desc WidgetDescriptor, payload map[string]any) error {
	if len(desc.Schema) == 0 {
		return nil
	}
	schema, err := v.schemaFor(desc)
	if err != nil {
		return err
	}
	normalized := map[string]any{}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("dashboard: marshal payload for %s: %w", desc.Type, err)
		}
		if err := json.Unmarshal(data, &normalized); err != nil {
			return fmt.Errorf("dashboard: normalize payload for %s: %w", desc.Type, err)
		}
	}
	if err := schema.Validate(normalized); err != nil {
		return fmt.Errorf("dashboard: payload for %s failed validation: %w", desc.Type, err)
	}
	return nil
}

func (v *JSONSchemaValidator) schemaFor(desc WidgetDescriptor) (*jsonschema.Schema, error) {
	v.mu.RLock()
	schema, ok := v.compiled[desc.Type]
	v.mu.RUnlock()
	if ok {
		return schema, nil
	}
	data, err := json.Marshal(desc.Schema)
	if err != nil {
		return nil, fmt.Errorf("dashboard: marshal schema %s: %w", desc.Type, err)
	}
	compiler := jsonschema.NewCompiler()
	name := string(desc.Type) + ".json"
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("dashboard: load schema %s: %w", desc.Type, err)
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("dashboard: compile schema %s: %w", desc.Type, err)
	}
	v.mu.Lock()
	v.compiled[desc.Type] = compiled
	v.mu.Unlock()
	return compiled, nil
}
