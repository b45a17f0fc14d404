package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"cookline/internal/app/batch"
	"cookline/internal/app/layouts"
	"cookline/internal/app/observe"
	"cookline/internal/app/ports"
	"cookline/internal/app/replay"
	"cookline/internal/app/status"
	"cookline/internal/domain/kitchen"
	"cookline/internal/domain/layout"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

type Handler struct {
	BatchUC   *batch.UseCase
	ObserveUC observe.UseCase
	StatusUC  status.UseCase
	ReplayUC  replay.UseCase
	LayoutsUC layouts.UseCase
	KPI       kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	api := s.Group("/api")
	b := api.Group("/batch")
	b.POST("/create", h.createBatch)
	b.POST("/step", h.stepBatch)
	b.POST("/reset", h.resetBatch)
	b.POST("/observe", h.observeBatch)
	b.GET("/status", h.batchStatus)

	api.GET("/episodes", h.episodes)
	api.GET("/replay", h.trajectory)
	api.GET("/layouts", h.layoutIndex)
	api.GET("/layouts/:name", h.layoutDetail)

	s.GET("/ops/kpi", h.kpi)
}

func (h Handler) createBatch(c context.Context, ctx *app.RequestContext) {
	var body batch.CreateRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BatchUC.Create(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) stepBatch(c context.Context, ctx *app.RequestContext) {
	var body batch.StepRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BatchUC.Step(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) resetBatch(c context.Context, ctx *app.RequestContext) {
	var body batch.ResetRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.BatchUC.Reset(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) observeBatch(c context.Context, ctx *app.RequestContext) {
	var body observe.Request
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.ObserveUC.Execute(c, body)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) batchStatus(c context.Context, ctx *app.RequestContext) {
	resp, err := h.StatusUC.Execute(c, status.Request{
		BatchID: string(ctx.Query("batch_id")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) episodes(c context.Context, ctx *app.RequestContext) {
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	resp, err := h.ReplayUC.ListEpisodes(c, replay.EpisodesRequest{Limit: limit})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) trajectory(c context.Context, ctx *app.RequestContext) {
	resp, err := h.ReplayUC.Trajectory(c, replay.TrajectoryRequest{
		EpisodeID: string(ctx.Query("episode_id")),
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) layoutIndex(c context.Context, ctx *app.RequestContext) {
	resp, err := h.LayoutsUC.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) layoutDetail(c context.Context, ctx *app.RequestContext) {
	name := strings.TrimSpace(string(ctx.Param("name")))
	resp, err := h.LayoutsUC.Get(c, layouts.GetRequest{Name: name})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

type kpiSnapshotProvider interface {
	SnapshotAny() any
}

func (h Handler) kpi(_ context.Context, ctx *app.RequestContext) {
	if h.KPI == nil {
		writeErrorBody(ctx, consts.StatusNotFound, "not_configured", "kpi provider not configured")
		return
	}
	ctx.JSON(consts.StatusOK, h.KPI.SnapshotAny())
}

func decodeJSON(ctx *app.RequestContext, out any) error {
	body := ctx.Request.Body()
	if len(body) == 0 {
		return nil
	}
	return json.Unmarshal(body, out)
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, batch.ErrInvalidRequest),
		errors.Is(err, observe.ErrInvalidRequest),
		errors.Is(err, replay.ErrInvalidRequest),
		errors.Is(err, layouts.ErrInvalidRequest),
		errors.Is(err, kitchen.ErrBadActions):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, layout.ErrInvalidLayout),
		errors.Is(err, kitchen.ErrInvalidConfig):
		writeErrorBody(ctx, consts.StatusUnprocessableEntity, "invalid_layout", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
