package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-gridboard/components/dashboard"
)

// AddWidgetInput carries the widget a transport wants to place on the
// board. The board normalizes it, so partially filled widgets are fine.
type AddWidgetInput struct {
	Widget dashboard.Widget `json:"widget"`
}

type addBoard interface {
	AddWidget(ctx context.Context, w dashboard.Widget) dashboard.Widget
}

// AddWidgetCommand wraps Store.AddWidget so transports can place
// widgets without linking directly against the store. When a catalog
// and validator are provided, the incoming widget is schema-checked
// before it reaches the board.
type AddWidgetCommand struct {
	board     addBoard
	catalog   *dashboard.Catalog
	validator dashboard.PayloadValidator
	telemetry Telemetry
}

// NewAddWidgetCommand creates a command instance.
func NewAddWidgetCommand(board addBoard, telemetry Telemetry) *AddWidgetCommand {
	return &AddWidgetCommand{board: board, telemetry: normalizeTelemetry(telemetry)}
}

// WithValidation enables schema validation against catalog descriptors.
func (c *AddWidgetCommand) WithValidation(catalog *dashboard.Catalog, validator dashboard.PayloadValidator) *AddWidgetCommand {
	c.catalog = catalog
	c.validator = validator
	return c
}

var _ gocommand.Commander[AddWidgetInput] = (*AddWidgetCommand)(nil)

// Execute validates and places the widget.
func (c *AddWidgetCommand) Execute(ctx context.Context, msg AddWidgetInput) error {
	if c.board == nil {
		return errors.New("add command requires board")
	}
	if err := c.validate(msg.Widget); err != nil {
		return err
	}
	added := c.board.AddWidget(ctx, msg.Widget)
	c.telemetry.Record(ctx, "dashboard.command.widget.add", map[string]any{
		"widget_id": added.ID,
		"type":      string(added.Type),
	})
	return nil
}

func (c *AddWidgetCommand) validate(w dashboard.Widget) error {
	if c.catalog == nil || c.validator == nil {
		return nil
	}
	desc, ok := c.catalog.Descriptor(w.Type)
	if !ok {
		return fmt.Errorf("add command: unknown widget type %q", w.Type)
	}
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("add command: marshal widget: %w", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return fmt.Errorf("add command: normalize widget: %w", err)
	}
	// Blank optional fields mean "unset"; the board fills defaults, so
	// validate them as absent rather than as empty enum values.
	for k, v := range payload {
		if s, ok := v.(string); ok && s == "" {
			delete(payload, k)
		}
	}
	return c.validator.Validate(desc, payload)
}
