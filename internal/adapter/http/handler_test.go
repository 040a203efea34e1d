package httpadapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"petverse/internal/adapter/metrics/inmemory"
	"petverse/internal/adapter/repo/memory"
	"petverse/internal/adapter/species"
	"petverse/internal/app/adopt"
	"petverse/internal/app/alerts"
	"petverse/internal/app/care"
	"petverse/internal/app/evolution"
	"petverse/internal/app/lifecycle"
	"petverse/internal/app/status"
	"petverse/internal/sched"
)

func newHandler(t *testing.T) (Handler, *memory.Store, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	pets := lifecycle.NewStore(memory.NewPetRepo(store), sched.NewManual(), lifecycle.DefaultConfig())
	t.Cleanup(pets.Dispose)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pets.Now = func() time.Time { return now }
	clock := func() time.Time { return now }

	catalog := species.Static{}
	stats := memory.NewStatsProvider(store)
	h := Handler{
		Pets:     pets,
		AdoptUC:  adopt.UseCase{Pets: pets, Species: catalog, Now: clock},
		StatusUC: status.UseCase{Pets: pets, Species: catalog, Stats: stats, Now: clock},
		CareUC: care.UseCase{
			Pets:    pets,
			Wallet:  memory.NewWallet(store),
			Metrics: inmemory.NewRecorder(),
			Now:     clock,
		},
		EvolveUC: evolution.UseCase{Pets: pets, Species: catalog, Stats: stats, Now: clock},
		AlertsUC: alerts.UseCase{Pets: pets},
		KPI:      inmemory.NewRecorder(),
	}
	return h, store, &now
}

func request(ownerID, body string) *app.RequestContext {
	ctx := &app.RequestContext{}
	if ownerID != "" {
		ctx.Request.Header.Set(ownerIDHeader, ownerID)
	}
	if body != "" {
		ctx.Request.SetBody([]byte(body))
	}
	return ctx
}

func decodeBody(t *testing.T, ctx *app.RequestContext) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(ctx.Response.Body(), &out); err != nil {
		t.Fatalf("response is not JSON: %v: %s", err, ctx.Response.Body())
	}
	return out
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	body := decodeBody(t, ctx)
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestAdopt_CreatesPet(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx := request("owner-1", `{"species_id":"scholar_cat","name":"Mochi"}`)

	h.adoptPet(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusCreated {
		t.Fatalf("status = %d, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	p, _ := body["pet"].(map[string]any)
	if p["name"] != "Mochi" || p["stage"] != "baby" {
		t.Fatalf("pet = %+v", p)
	}
}

func TestAdopt_MissingOwnerHeader(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx := request("", `{"name":"Mochi"}`)

	h.adoptPet(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusBadRequest {
		t.Fatalf("status = %d, want 400", ctx.Response.StatusCode())
	}
	if code := errorCode(t, ctx); code != "missing_owner_id" {
		t.Fatalf("error code = %q", code)
	}
}

func TestGetStatus_NoPet(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx := request("stranger", "")

	h.getStatus(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusNotFound {
		t.Fatalf("status = %d, want 404", ctx.Response.StatusCode())
	}
	if code := errorCode(t, ctx); code != "no_pet" {
		t.Fatalf("error code = %q", code)
	}
}

func TestFeed_CooldownConflict(t *testing.T) {
	h, _, _ := newHandler(t)
	adoptCtx := request("owner-1", `{"name":"Mochi"}`)
	h.adoptPet(context.Background(), adoptCtx)

	// The newborn was just fed at adoption time.
	ctx := request("owner-1", "")
	h.feed(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusConflict {
		t.Fatalf("status = %d, want 409, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	errObj := body["error"].(map[string]any)
	if errObj["code"] != "cooldown_active" {
		t.Fatalf("error = %+v", errObj)
	}
	details := errObj["details"].(map[string]any)
	if details["action"] != "feed" || details["remaining_seconds"].(float64) <= 0 {
		t.Fatalf("details = %+v", details)
	}
}

func TestFeed_AfterCooldownSucceeds(t *testing.T) {
	h, _, now := newHandler(t)
	adoptCtx := request("owner-1", `{"name":"Mochi"}`)
	h.adoptPet(context.Background(), adoptCtx)

	*now = now.Add(3 * time.Hour)
	ctx := request("owner-1", "")
	h.feed(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("status = %d, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
}

func TestEvolve_NotEligible(t *testing.T) {
	h, _, _ := newHandler(t)
	adoptCtx := request("owner-1", `{"name":"Mochi"}`)
	h.adoptPet(context.Background(), adoptCtx)

	ctx := request("owner-1", "")
	h.evolve(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusConflict {
		t.Fatalf("status = %d, want 409", ctx.Response.StatusCode())
	}
	if code := errorCode(t, ctx); code != "not_eligible" {
		t.Fatalf("error code = %q", code)
	}
}

func TestAutoCare_RoundTrip(t *testing.T) {
	h, _, _ := newHandler(t)
	adoptCtx := request("owner-1", `{"name":"Mochi"}`)
	h.adoptPet(context.Background(), adoptCtx)

	ctx := request("owner-1", `{"enabled":true,"feed_threshold":75,"play_threshold":25}`)
	h.setAutoCare(context.Background(), ctx)

	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("status = %d, body %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	body := decodeBody(t, ctx)
	ac := body["auto_care"].(map[string]any)
	if ac["enabled"] != true || ac["feed_threshold"].(float64) != 75 {
		t.Fatalf("auto_care = %+v", ac)
	}
}

func TestKPI_NotConfigured(t *testing.T) {
	h := Handler{}
	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusNotFound {
		t.Fatalf("status = %d, want 404", ctx.Response.StatusCode())
	}
}

func TestKPI_ReturnsSnapshot(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx := &app.RequestContext{}
	h.kpi(context.Background(), ctx)
	if ctx.Response.StatusCode() != consts.StatusOK {
		t.Fatalf("status = %d", ctx.Response.StatusCode())
	}
	body := decodeBody(t, ctx)
	if _, ok := body["by_action"]; !ok {
		t.Fatalf("kpi body = %+v", body)
	}
}
