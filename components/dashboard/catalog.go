package dashboard

import (
	"fmt"
	"sync"
)

// CatalogHook lets packages register widget descriptors during init().
type CatalogHook func(c *Catalog) error

var (
	globalHookMu sync.Mutex
	globalHooks  []CatalogHook
)

// RegisterCatalogHook registers a hook executed against new catalogs.
func RegisterCatalogHook(h CatalogHook) {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	globalHooks = append(globalHooks, h)
}

// WidgetDescriptor describes one widget type the editor can offer: its
// display metadata and the JSON schema its payload must satisfy.
type WidgetDescriptor struct {
	Type        WidgetType
	Name        string
	Description string
	Category    string
	Schema      map[string]any
}

// Catalog stores widget descriptors discoverable via hooks or defaults.
type Catalog struct {
	mu          sync.RWMutex
	descriptors map[WidgetType]WidgetDescriptor
}

// NewCatalog builds a catalog seeded with the built-in widget types and
// applies global hooks.
func NewCatalog() *Catalog {
	c := &Catalog{descriptors: map[WidgetType]WidgetDescriptor{}}
	for _, desc := range DefaultWidgetDescriptors() {
		_ = c.Register(desc)
	}
	_ = c.ApplyHooks()
	return c
}

// ApplyHooks executes registered catalog hooks.
func (c *Catalog) ApplyHooks() error {
	globalHookMu.Lock()
	defer globalHookMu.Unlock()
	for _, hook := range globalHooks {
		if err := hook(c); err != nil {
			return err
		}
	}
	return nil
}

// Register stores a widget descriptor.
func (c *Catalog) Register(desc WidgetDescriptor) error {
	if desc.Type == "" {
		return fmt.Errorf("widget descriptor type is required")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.descriptors[desc.Type] = desc
	return nil
}

// Descriptor fetches a widget descriptor by type.
func (c *Catalog) Descriptor(t WidgetType) (WidgetDescriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	desc, ok := c.descriptors[t]
	return desc, ok
}

// Descriptors returns all registered descriptors.
func (c *Catalog) Descriptors() []WidgetDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]WidgetDescriptor, 0, len(c.descriptors))
	for _, desc := range c.descriptors {
		out = append(out, desc)
	}
	return out
}
