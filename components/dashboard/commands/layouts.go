package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// SetLayoutsInput carries raw drag/resize results from a client grid.
type SetLayoutsInput struct {
	Layouts dashboard.Layouts `json:"layouts"`
}

type layoutBoard interface {
	SetLayouts(ctx context.Context, raw dashboard.Layouts)
}

// SetLayoutsCommand wraps Store.SetLayouts; the board normalizes the
// untrusted input before adopting it.
type SetLayoutsCommand struct {
	board     layoutBoard
	telemetry Telemetry
}

// NewSetLayoutsCommand creates the command.
func NewSetLayoutsCommand(board layoutBoard, telemetry Telemetry) *SetLayoutsCommand {
	return &SetLayoutsCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[SetLayoutsInput] = (*SetLayoutsCommand)(nil)

// Execute replaces the board layouts.
func (c *SetLayoutsCommand) Execute(ctx context.Context, msg SetLayoutsInput) error {
	if c.board == nil {
		return errors.New("layouts command requires board")
	}
	c.board.SetLayouts(ctx, msg.Layouts)
	c.telemetry.Record(ctx, "dashboard.command.layout.set", map[string]any{
		"breakpoints": len(msg.Layouts),
	})
	return nil
}
