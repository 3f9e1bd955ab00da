package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// UpdateWidgetInput captures a partial widget update.
type UpdateWidgetInput struct {
	WidgetID string                `json:"widget_id"`
	Patch    dashboard.WidgetPatch `json:"patch"`
}

type updateBoard interface {
	UpdateWidget(ctx context.Context, id string, patch dashboard.WidgetPatch)
}

// UpdateWidgetCommand wraps Store.UpdateWidget.
type UpdateWidgetCommand struct {
	board     updateBoard
	telemetry Telemetry
}

// NewUpdateWidgetCommand creates the command.
func NewUpdateWidgetCommand(board updateBoard, telemetry Telemetry) *UpdateWidgetCommand {
	return &UpdateWidgetCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[UpdateWidgetInput] = (*UpdateWidgetCommand)(nil)

// Execute merges the patch into the widget.
func (c *UpdateWidgetCommand) Execute(ctx context.Context, msg UpdateWidgetInput) error {
	if c.board == nil {
		return errors.New("update command requires board")
	}
	if msg.WidgetID == "" {
		return errors.New("update command requires widget id")
	}
	c.board.UpdateWidget(ctx, msg.WidgetID, msg.Patch)
	c.telemetry.Record(ctx, "dashboard.command.widget.update", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
