package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"petverse/internal/app/adopt"
	"petverse/internal/app/alerts"
	"petverse/internal/app/care"
	"petverse/internal/app/evolution"
	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/app/status"
	"petverse/internal/domain/pet"
)

const ownerIDHeader = "X-Owner-ID"

type Handler struct {
	Pets     *lifecycle.Store
	AdoptUC  adopt.UseCase
	StatusUC status.UseCase
	CareUC   care.UseCase
	EvolveUC evolution.UseCase
	AlertsUC alerts.UseCase
	KPI      kpiSnapshotProvider
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	s.Use(corsMiddleware())

	p := s.Group("/api/pet")
	p.POST("/adopt", h.adoptPet)
	p.GET("/", h.getPet)
	p.GET("/status", h.getStatus)
	p.GET("/needs", h.getNeeds)
	p.GET("/evolution", h.getEvolution)
	p.POST("/evolve", h.evolve)
	p.POST("/feed", h.feed)
	p.POST("/play", h.play)
	p.POST("/care", h.care)
	p.GET("/alerts", h.getAlerts)
	p.POST("/alerts/ack", h.ackAlert)
	p.GET("/trends", h.getTrends)
	p.POST("/autocare", h.setAutoCare)

	s.GET("/ops/kpi", h.kpi)
}

type adoptRequest struct {
	SpeciesID string `json:"species_id"`
	Name      string `json:"name"`
}

type careRequest struct {
	ItemID string `json:"item_id"`
}

type ackRequest struct {
	AlertID string `json:"alert_id"`
}

type autoCareRequest struct {
	Enabled       bool `json:"enabled"`
	FeedThreshold int  `json:"feed_threshold"`
	PlayThreshold int  `json:"play_threshold"`
}

func (h Handler) adoptPet(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body adoptRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := h.AdoptUC.Execute(c, adopt.Request{
		OwnerID:   ownerID,
		SpeciesID: body.SpeciesID,
		Name:      body.Name,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, resp)
}

func (h Handler) getPet(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	p, err := h.Pets.Resolve(c, ownerID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"pet": p})
}

func (h Handler) getStatus(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Execute(c, status.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getNeeds(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.StatusUC.Needs(c, status.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getEvolution(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.EvolveUC.Eligibility(c, evolution.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) evolve(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	resp, err := h.EvolveUC.Trigger(c, evolution.Request{OwnerID: ownerID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) feed(c context.Context, ctx *app.RequestContext) {
	h.careAction(c, ctx, h.CareUC.Feed)
}

func (h Handler) play(c context.Context, ctx *app.RequestContext) {
	h.careAction(c, ctx, h.CareUC.Play)
}

func (h Handler) care(c context.Context, ctx *app.RequestContext) {
	h.careAction(c, ctx, h.CareUC.Care)
}

func (h Handler) careAction(c context.Context, ctx *app.RequestContext, do func(context.Context, care.Request) (care.Response, error)) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body careRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	resp, err := do(c, care.Request{OwnerID: ownerID, ItemID: body.ItemID})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) getAlerts(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	unackOnly, _ := strconv.ParseBool(string(ctx.Query("unacknowledged_only")))
	resp, err := h.AlertsUC.List(c, alerts.ListRequest{OwnerID: ownerID, UnacknowledgedOnly: unackOnly})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) ackAlert(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body ackRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if err := h.AlertsUC.Acknowledge(c, alerts.AckRequest{OwnerID: ownerID, AlertID: body.AlertID}); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"acknowledged": true})
}

func (h Handler) getTrends(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	hours, _ := strconv.Atoi(string(ctx.Query("hours")))
	resp, err := h.AlertsUC.Trends(c, alerts.TrendsRequest{
		OwnerID: ownerID,
		Window:  time.Duration(hours) * time.Hour,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) setAutoCare(c context.Context, ctx *app.RequestContext) {
	ownerID, err := requireOwner(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	var body autoCareRequest
	if err := decodeJSON(ctx, &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	req := alerts.AutoCareRequest{
		OwnerID: ownerID,
		Config: lifecycle.AutoCare{
			Enabled:       body.Enabled,
			FeedThreshold: body.FeedThreshold,
			PlayThreshold: body.PlayThreshold,
		},
	}
	if err := h.AlertsUC.SetAutoCare(c, req); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusOK, map[string]any{"auto_care": req.Config})
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

var ErrMissingOwnerHeader = errors.New("missing x-owner-id header")

func requireOwner(ctx *app.RequestContext) (string, error) {
	ownerID := strings.TrimSpace(string(ctx.GetHeader(ownerIDHeader)))
	if ownerID == "" {
		return "", ErrMissingOwnerHeader
	}
	return ownerID, nil
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrMissingOwnerHeader):
		writeErrorBody(ctx, consts.StatusBadRequest, "missing_owner_id", err.Error())
	case errors.Is(err, adopt.ErrInvalidRequest),
		errors.Is(err, status.ErrInvalidRequest),
		errors.Is(err, care.ErrInvalidRequest),
		errors.Is(err, evolution.ErrInvalidRequest),
		errors.Is(err, alerts.ErrInvalidRequest):
		writeErrorBody(ctx, consts.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, lifecycle.ErrNoPet):
		writeErrorBody(ctx, consts.StatusNotFound, "no_pet", err.Error())
	case errors.Is(err, pet.ErrCooldownActive):
		writeCooldown(ctx, err)
	case errors.Is(err, lifecycle.ErrActionInProgress):
		writeErrorBody(ctx, consts.StatusConflict, "action_in_progress", err.Error())
	case errors.Is(err, ports.ErrInsufficientFunds):
		writeErrorBody(ctx, consts.StatusConflict, "insufficient_funds", err.Error())
	case errors.Is(err, pet.ErrNotEligible):
		writeErrorBody(ctx, consts.StatusConflict, "not_eligible", err.Error())
	case errors.Is(err, pet.ErrTerminalStage):
		writeErrorBody(ctx, consts.StatusConflict, "terminal_stage", err.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, ports.ErrConflict):
		writeErrorBody(ctx, consts.StatusConflict, "conflict", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeCooldown(ctx *app.RequestContext, err error) {
	body := map[string]any{
		"error": map[string]any{
			"code":    "cooldown_active",
			"message": err.Error(),
		},
	}
	var cdErr *pet.CooldownError
	if errors.As(err, &cdErr) {
		body["error"].(map[string]any)["details"] = map[string]any{
			"action":            cdErr.Action,
			"remaining_seconds": int(cdErr.Remaining.Seconds()),
		}
	}
	ctx.JSON(consts.StatusConflict, body)
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
