package dashboard

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// DashboardManifestDocument models a YAML manifest describing a starter
// dashboard: a named set of widgets seeded into an empty board.
type DashboardManifestDocument struct {
	Version     string           `json:"version" yaml:"version"`
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Widgets     []ManifestWidget `json:"widgets" yaml:"widgets"`
	Source      string           `json:"-" yaml:"-"`
}

// ManifestWidget is a single widget entry within a manifest.
type ManifestWidget struct {
	Widget Widget   `json:"widget" yaml:"widget"`
	Tags   []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ReadManifest loads a manifest file from disk.
func ReadManifest(path string) (*DashboardManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*DashboardManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc DashboardManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *DashboardManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Widgets))
	for idx, entry := range doc.Widgets {
		if entry.Widget.Type == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing widget.type", idx)
		}
		if !knownWidgetType(entry.Widget.Type) {
			return fmt.Errorf("dashboard: manifest widget at index %d has unknown type %q", idx, entry.Widget.Type)
		}
		if id := entry.Widget.ID; id != "" {
			if _, exists := seen[id]; exists {
				return fmt.Errorf("dashboard: manifest duplicates widget id %s", id)
			}
			seen[id] = struct{}{}
		}
	}
	return nil
}

// Apply seeds every manifest widget into the store, in document order.
func (doc *DashboardManifestDocument) Apply(ctx context.Context, store *Store) []Widget {
	added := make([]Widget, 0, len(doc.Widgets))
	for _, entry := range doc.Widgets {
		added = append(added, store.AddWidget(ctx, entry.Widget))
	}
	return added
}

func (doc *DashboardManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
