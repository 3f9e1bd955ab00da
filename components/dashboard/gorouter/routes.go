package gorouter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-gridboard/components/dashboard"
	"github.com/goliatone/go-gridboard/components/dashboard/commands"
	"github.com/goliatone/go-gridboard/components/dashboard/httpapi"
)

// ChartProvider renders a widget's chart HTML on demand. Registered as
// an optional route so boards without server-side rendering skip it.
type ChartProvider func(ctx context.Context, widgetID string) (string, error)

// Config wires go-router with the dashboard board and shared commands.
type Config[T any] struct {
	Router   router.Router[T]
	Board    httpapi.BoardReader
	API      httpapi.Executor
	Charts   ChartProvider
	BasePath string
	Routes   RouteConfig
}

// RouteConfig customizes the relative paths used for board endpoints.
type RouteConfig struct {
	Board    string
	Widgets  string
	WidgetID string
	Layouts  string
	Chart    string
}

// Register mounts board routes (snapshot, widget CRUD, layouts, charts)
// on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	if cfg.Board == nil {
		return errors.New("gorouter: board is required")
	}
	routes := defaultRouteConfig(cfg.Routes)
	base := cfg.BasePath
	if base == "" {
		base = "/dashboard"
	}

	group := cfg.Router.Group(base)

	group.Get(routes.Board, router.WrapHandler(func(ctx router.Context) error {
		return ctx.JSON(http.StatusOK, cfg.Board.Snapshot())
	}))

	if cfg.API != nil {
		registerAPI(group, cfg.API, routes)
	}

	if cfg.Charts != nil {
		group.Get(routes.Chart, router.WrapHandler(func(ctx router.Context) error {
			id := ctx.Param("id")
			if id == "" {
				return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
			}
			html, err := cfg.Charts(ctx.Context(), id)
			if err != nil {
				return respondError(ctx, http.StatusInternalServerError, err)
			}
			ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
			return ctx.Send([]byte(html))
		}))
	}

	return nil
}

func registerAPI[T any](r router.Router[T], api httpapi.Executor, routes RouteConfig) {
	r.Post(routes.Widgets, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.AddWidgetInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.Add(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusCreated, map[string]string{"status": "created"})
	}))

	r.Post(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		var patch dashboard.WidgetPatch
		if err := json.Unmarshal(ctx.Body(), &patch); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		input := commands.UpdateWidgetInput{WidgetID: id, Patch: patch}
		if err := api.Update(ctx.Context(), input); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "updated"})
	}))

	r.Delete(routes.WidgetID, router.WrapHandler(func(ctx router.Context) error {
		id := ctx.Param("id")
		if id == "" {
			return respondError(ctx, http.StatusBadRequest, errors.New("widget id is required"))
		}
		if err := api.Remove(ctx.Context(), commands.RemoveWidgetInput{WidgetID: id}); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusNoContent, map[string]string{"status": "removed"})
	}))

	r.Post(routes.Layouts, router.WrapHandler(func(ctx router.Context) error {
		var payload commands.SetLayoutsInput
		if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
		if err := api.SetLayouts(ctx.Context(), payload); err != nil {
			return respondError(ctx, http.StatusInternalServerError, err)
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "saved"})
	}))
}

func respondError(ctx router.Context, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Board == "" {
		routes.Board = "/board"
	}
	if routes.Widgets == "" {
		routes.Widgets = "/board/widgets"
	}
	if routes.WidgetID == "" {
		routes.WidgetID = "/board/widgets/:id"
	}
	if routes.Layouts == "" {
		routes.Layouts = "/board/layouts"
	}
	if routes.Chart == "" {
		routes.Chart = "/board/widgets/:id/chart"
	}
	return routes
}
