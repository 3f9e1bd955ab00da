package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
)

// RemoveWidgetInput identifies the widget to drop from the board.
type RemoveWidgetInput struct {
	WidgetID string `json:"widget_id"`
}

type removeBoard interface {
	RemoveWidget(ctx context.Context, id string)
}

// RemoveWidgetCommand wraps Store.RemoveWidget.
type RemoveWidgetCommand struct {
	board     removeBoard
	telemetry Telemetry
}

// NewRemoveWidgetCommand creates the command.
func NewRemoveWidgetCommand(board removeBoard, telemetry Telemetry) *RemoveWidgetCommand {
	return &RemoveWidgetCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RemoveWidgetInput] = (*RemoveWidgetCommand)(nil)

// Execute removes the widget and its tiles.
func (c *RemoveWidgetCommand) Execute(ctx context.Context, msg RemoveWidgetInput) error {
	if c.board == nil {
		return errors.New("remove command requires board")
	}
	if msg.WidgetID == "" {
		return errors.New("remove command requires widget id")
	}
	c.board.RemoveWidget(ctx, msg.WidgetID)
	c.telemetry.Record(ctx, "dashboard.command.widget.remove", map[string]any{
		"widget_id": msg.WidgetID,
	})
	return nil
}
