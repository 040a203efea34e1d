package alerts

import (
	"context"
	"errors"
	"testing"
	"time"

	"petverse/internal/adapter/repo/memory"
	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
	"petverse/internal/sched"
)

func setup(t *testing.T) (UseCase, *lifecycle.Store, *sched.Manual, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	scheduler := sched.NewManual()
	pets := lifecycle.NewStore(memory.NewPetRepo(store), scheduler, lifecycle.DefaultConfig())
	t.Cleanup(pets.Dispose)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pets.Now = func() time.Time { return now }
	return UseCase{Pets: pets}, pets, scheduler, &now
}

func starvingPet(now time.Time) pet.Pet {
	return pet.Pet{
		ID:              "pet-1",
		OwnerID:         "owner-1",
		SpeciesID:       "scholar_cat",
		Name:            "Mochi",
		Stage:           pet.StageBaby,
		Level:           1,
		Vitals:          pet.Vitals{Health: 100, Happiness: 100, Hunger: 95, Energy: 100},
		BaseHunger:      95,
		LastFed:         now,
		LastPlayed:      now,
		LastInteraction: now,
		AdoptedAt:       now,
	}
}

func TestListAndAcknowledge(t *testing.T) {
	uc, pets, scheduler, now := setup(t)
	if _, err := pets.Adopt(context.Background(), starvingPet(*now)); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}
	scheduler.Fire(pets.Cfg.NeedInterval)

	resp, err := uc.List(context.Background(), ListRequest{OwnerID: "owner-1", UnacknowledgedOnly: true})
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(resp.Alerts) != 1 || resp.Alerts[0].Type != pet.AlertCritical {
		t.Fatalf("alerts = %+v, want one critical alert", resp.Alerts)
	}

	if err := uc.Acknowledge(context.Background(), AckRequest{OwnerID: "owner-1", AlertID: resp.Alerts[0].ID}); err != nil {
		t.Fatalf("Acknowledge error: %v", err)
	}
	resp, _ = uc.List(context.Background(), ListRequest{OwnerID: "owner-1", UnacknowledgedOnly: true})
	if len(resp.Alerts) != 0 {
		t.Fatalf("acknowledged alert still listed: %+v", resp.Alerts)
	}
	// The full history keeps the acknowledged entry.
	resp, _ = uc.List(context.Background(), ListRequest{OwnerID: "owner-1"})
	if len(resp.Alerts) != 1 || !resp.Alerts[0].Acknowledged {
		t.Fatalf("history = %+v, want one acknowledged alert", resp.Alerts)
	}
}

func TestAcknowledge_UnknownAlert(t *testing.T) {
	uc, pets, _, now := setup(t)
	if _, err := pets.Adopt(context.Background(), starvingPet(*now)); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}
	err := uc.Acknowledge(context.Background(), AckRequest{OwnerID: "owner-1", AlertID: "ghost"})
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTrends_DefaultWindow(t *testing.T) {
	uc, pets, scheduler, now := setup(t)
	if _, err := pets.Adopt(context.Background(), starvingPet(*now)); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}
	scheduler.Fire(pets.Cfg.HealthInterval)
	*now = now.Add(30 * time.Hour)
	scheduler.Fire(pets.Cfg.HealthInterval)

	resp, err := uc.Trends(context.Background(), TrendsRequest{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Trends error: %v", err)
	}
	if len(resp.Trends) != 1 {
		t.Fatalf("trends = %d samples, want only the one inside 24h", len(resp.Trends))
	}
}

func TestSetAutoCare(t *testing.T) {
	uc, pets, _, now := setup(t)
	if _, err := pets.Adopt(context.Background(), starvingPet(*now)); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}
	cfg := lifecycle.AutoCare{Enabled: true, FeedThreshold: 75, PlayThreshold: 25}
	if err := uc.SetAutoCare(context.Background(), AutoCareRequest{OwnerID: "owner-1", Config: cfg}); err != nil {
		t.Fatalf("SetAutoCare error: %v", err)
	}
	status, err := pets.Status("pet-1")
	if err != nil {
		t.Fatalf("Status error: %v", err)
	}
	if status.AutoCare != cfg {
		t.Fatalf("auto-care = %+v, want %+v", status.AutoCare, cfg)
	}
}

func TestList_RejectsEmptyOwner(t *testing.T) {
	uc, _, _, _ := setup(t)
	if _, err := uc.List(context.Background(), ListRequest{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
