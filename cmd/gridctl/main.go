package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-gridboard/components/dashboard"
)

type cli struct {
	Repair   repairCmd   `cmd:"" help:"Normalize a persisted dashboard snapshot file in place."`
	Scaffold scaffoldCmd `cmd:"" help:"Add a widget entry to a starter dashboard manifest."`
}

type repairCmd struct {
	Path   string `arg:"" type:"path" help:"Path to the persisted snapshot JSON file."`
	Out    string `type:"path" help:"Write the repaired snapshot here instead of in place."`
	Pretty bool   `help:"Indent the output JSON."`
}

type scaffoldCmd struct {
	ManifestPath string   `required:"" type:"path" help:"Path to the manifest YAML file to update."`
	Title        string   `required:"" help:"Display title for the widget."`
	Type         string   `default:"kpi" help:"Widget type (kpi, bar, line, area, pie, milestone)."`
	Size         string   `default:"medium" help:"Widget size (small, medium, large)."`
	Period       string   `default:"week" help:"Aggregation period (day, week, month)."`
	GroupBy      string   `name:"group-by" default:"none" help:"Grouping field (none, assignee, status, project)."`
	StatusFilter string   `name:"status-filter" default:"all" help:"Status scope (all, active, final, cancelled, custom)."`
	Tag          []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Overwrite    bool     `help:"Replace an existing entry with the same id."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Dashboard snapshot and manifest utility for go-gridboard."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

// Run loads the snapshot blob, runs it through widget and layout
// normalization, and writes the repaired pair back out.
func (cmd *repairCmd) Run(_ context.Context) error {
	data, err := os.ReadFile(cmd.Path)
	if err != nil {
		return fmt.Errorf("gridctl: read snapshot: %w", err)
	}
	store := dashboard.NewStore(dashboard.StoreOptions{})
	store.Restore(dashboard.DecodeSnapshot(data))

	snap := store.Snapshot()
	var out []byte
	if cmd.Pretty {
		out, err = json.MarshalIndent(snap, "", "  ")
	} else {
		out, err = dashboard.EncodeSnapshot(snap)
	}
	if err != nil {
		return fmt.Errorf("gridctl: encode snapshot: %w", err)
	}

	target := cmd.Out
	if target == "" {
		target = cmd.Path
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return fmt.Errorf("gridctl: write snapshot: %w", err)
	}
	fmt.Fprintf(os.Stdout, "✓ Repaired %s (%d widgets)\n", target, len(snap.Widgets))
	return nil
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("gridctl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}

	id := strcase.ToKebab(cmd.Title)
	entry := dashboard.ManifestWidget{
		Widget: dashboard.Widget{
			ID:           id,
			Title:        cmd.Title,
			Type:         dashboard.WidgetType(cmd.Type),
			Period:       dashboard.Period(cmd.Period),
			GroupBy:      dashboard.GroupBy(cmd.GroupBy),
			Size:         dashboard.WidgetSize(cmd.Size),
			StatusFilter: dashboard.StatusFilter(cmd.StatusFilter),
		},
		Tags: cmd.Tag,
	}

	replaced := false
	for idx := range doc.Widgets {
		if doc.Widgets[idx].Widget.ID != id {
			continue
		}
		if !cmd.Overwrite {
			return fmt.Errorf("gridctl: manifest already defines widget %s (use --overwrite to replace)", id)
		}
		doc.Widgets[idx] = entry
		replaced = true
		break
	}
	if !replaced {
		doc.Widgets = append(doc.Widgets, entry)
	}
	sort.Slice(doc.Widgets, func(i, j int) bool {
		return doc.Widgets[i].Widget.ID < doc.Widgets[j].Widget.ID
	})

	if err := doc.Validate(); err != nil {
		return err
	}
	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", id, manifestPath)
	return nil
}

func loadOrInitManifest(path string) (*dashboard.DashboardManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &dashboard.DashboardManifestDocument{
				Version: dashboard.ManifestVersion,
				Name:    deriveManifestName(path),
				Widgets: []dashboard.ManifestWidget{},
				Source:  path,
			}, nil
		}
		return nil, fmt.Errorf("gridctl: stat manifest: %w", err)
	}
	return dashboard.ReadManifest(path)
}

func writeManifest(path string, doc *dashboard.DashboardManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("gridctl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("gridctl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("gridctl: write manifest: %w", err)
	}
	return nil
}

func deriveManifestName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" {
		return "Dashboard"
	}
	return strcase.ToCase(base, strcase.TitleCase, ' ')
}
