package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-gridboard/components/dashboard"
	"github.com/goliatone/go-gridboard/components/dashboard/commands"
)

// BoardReader exposes the read side of a dashboard store.
type BoardReader interface {
	Snapshot() dashboard.Snapshot
}

// Executor is the command surface transports invoke. It decouples route
// layers from concrete command types so tests can stub the whole API.
type Executor interface {
	Add(ctx context.Context, input commands.AddWidgetInput) error
	Update(ctx context.Context, input commands.UpdateWidgetInput) error
	Remove(ctx context.Context, input commands.RemoveWidgetInput) error
	SetLayouts(ctx context.Context, input commands.SetLayoutsInput) error
}

// CommandExecutor adapts the shared commands into an Executor.
type CommandExecutor struct {
	AddCmd     gocommand.Commander[commands.AddWidgetInput]
	UpdateCmd  gocommand.Commander[commands.UpdateWidgetInput]
	RemoveCmd  gocommand.Commander[commands.RemoveWidgetInput]
	LayoutsCmd gocommand.Commander[commands.SetLayoutsInput]
}

var _ Executor = (*CommandExecutor)(nil)

func (e *CommandExecutor) Add(ctx context.Context, input commands.AddWidgetInput) error {
	return e.AddCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Update(ctx context.Context, input commands.UpdateWidgetInput) error {
	return e.UpdateCmd.Execute(ctx, input)
}

func (e *CommandExecutor) Remove(ctx context.Context, input commands.RemoveWidgetInput) error {
	return e.RemoveCmd.Execute(ctx, input)
}

func (e *CommandExecutor) SetLayouts(ctx context.Context, input commands.SetLayoutsInput) error {
	return e.LayoutsCmd.Execute(ctx, input)
}

// Handlers exposes HTTP endpoints backed by shared commands.
type Handlers struct {
	Board BoardReader
	API   Executor
}

// HandleSnapshot returns the persistable {widgets, layouts} pair.
func (h *Handlers) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.Board.Snapshot())
}

// HandleAddWidget places a widget from the request body.
func (h *Handlers) HandleAddWidget(w http.ResponseWriter, r *http.Request) {
	var payload commands.AddWidgetInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.Add(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

// HandleUpdateWidget merges a patch into the widget with the given id.
func (h *Handlers) HandleUpdateWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	var patch dashboard.WidgetPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	input := commands.UpdateWidgetInput{WidgetID: widgetID, Patch: patch}
	if err := h.API.Update(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleRemoveWidget drops the widget with the given id.
func (h *Handlers) HandleRemoveWidget(w http.ResponseWriter, r *http.Request, widgetID string) {
	input := commands.RemoveWidgetInput{WidgetID: widgetID}
	if err := h.API.Remove(r.Context(), input); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSetLayouts replaces the board layouts with client drag results.
func (h *Handlers) HandleSetLayouts(w http.ResponseWriter, r *http.Request) {
	var payload commands.SetLayoutsInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.API.SetLayouts(r.Context(), payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
