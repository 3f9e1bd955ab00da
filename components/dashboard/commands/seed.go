package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// SeedDashboardInput controls what an empty board is seeded with: a
// manifest document when provided, the built-in starter widgets
// otherwise.
type SeedDashboardInput struct {
	Manifest *dashboard.DashboardManifestDocument
	Force    bool
}

type seedBoard interface {
	AddWidget(ctx context.Context, w dashboard.Widget) dashboard.Widget
	Widgets() []dashboard.Widget
}

// SeedDashboardCommand populates an empty board with starter widgets.
type SeedDashboardCommand struct {
	board     seedBoard
	telemetry Telemetry
}

// NewSeedDashboardCommand wires dependencies.
func NewSeedDashboardCommand(board seedBoard, telemetry Telemetry) *SeedDashboardCommand {
	return &SeedDashboardCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SeedDashboardInput] = (*SeedDashboardCommand)(nil)

// Execute seeds the board. Non-empty boards are left alone unless Force
// is set, so re-running bootstrap never duplicates widgets.
func (c *SeedDashboardCommand) Execute(ctx context.Context, msg SeedDashboardInput) error {
	if c.board == nil {
		return errors.New("seed command requires board")
	}
	if !msg.Force && len(c.board.Widgets()) > 0 {
		return nil
	}
	widgets := dashboard.DefaultSeedWidgets()
	source := "defaults"
	if msg.Manifest != nil {
		if err := msg.Manifest.Validate(); err != nil {
			return err
		}
		widgets = make([]dashboard.Widget, 0, len(msg.Manifest.Widgets))
		for _, entry := range msg.Manifest.Widgets {
			widgets = append(widgets, entry.Widget)
		}
		source = "manifest"
	}
	for _, w := range widgets {
		c.board.AddWidget(ctx, w)
	}
	c.telemetry.Record(ctx, "dashboard.seed", map[string]any{
		"source":  source,
		"widgets": len(widgets),
	})
	return nil
}
