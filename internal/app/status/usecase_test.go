package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"petverse/internal/adapter/repo/memory"
	"petverse/internal/adapter/species"
	"petverse/internal/app/lifecycle"
	"petverse/internal/domain/pet"
	"petverse/internal/sched"
)

func setup(t *testing.T) (UseCase, *lifecycle.Store, *memory.Store, *time.Time) {
	t.Helper()
	store := memory.NewStore()
	pets := lifecycle.NewStore(memory.NewPetRepo(store), sched.NewManual(), lifecycle.DefaultConfig())
	t.Cleanup(pets.Dispose)

	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	pets.Now = func() time.Time { return now }
	uc := UseCase{
		Pets:    pets,
		Species: species.Static{},
		Stats:   memory.NewStatsProvider(store),
		Now:     func() time.Time { return now },
	}
	return uc, pets, store, &now
}

func adoptedPet(now time.Time) pet.Pet {
	return pet.Pet{
		ID:              "pet-1",
		OwnerID:         "owner-1",
		SpeciesID:       "scholar_cat",
		Name:            "Mochi",
		Stage:           pet.StageBaby,
		Level:           1,
		Vitals:          pet.Vitals{Health: 100, Happiness: 100, Hunger: 0, Energy: 100},
		LastFed:         now,
		LastPlayed:      now,
		LastInteraction: now,
		AdoptedAt:       now,
	}
}

func TestExecute_ReportsRecencyAndProgress(t *testing.T) {
	uc, pets, _, now := setup(t)
	if _, err := pets.Adopt(context.Background(), adoptedPet(*now)); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}

	*now = now.Add(2 * time.Hour)
	resp, err := uc.Execute(context.Background(), Request{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if resp.MinutesSinceFed != 120 || resp.MinutesSincePlayed != 120 {
		t.Fatalf("recency = %d/%d, want 120/120", resp.MinutesSinceFed, resp.MinutesSincePlayed)
	}
	if resp.Pet.Vitals.Hunger != 4 {
		t.Fatalf("hunger = %d, want 4 after 2h", resp.Pet.Vitals.Hunger)
	}
	if resp.NeedsAttention {
		t.Fatalf("fresh pet should not need attention: %+v", resp)
	}
	// Study 0/10 hours, level 1/5, happiness 100 over target 70.
	if resp.EvolutionProgress != 40 {
		t.Fatalf("evolution progress = %d, want 40", resp.EvolutionProgress)
	}
	if resp.Lifecycle.State != lifecycle.StateIdle {
		t.Fatalf("lifecycle state = %s, want idle", resp.Lifecycle.State)
	}
}

func TestExecute_FlagsHungryPet(t *testing.T) {
	uc, pets, _, now := setup(t)
	p := adoptedPet(*now)
	p.BaseHunger = 92
	if _, err := pets.Adopt(context.Background(), p); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}

	resp, err := uc.Execute(context.Background(), Request{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if !resp.NeedsAttention || resp.AttentionReason != pet.ReasonHungry {
		t.Fatalf("attention = %v/%s, want hungry", resp.NeedsAttention, resp.AttentionReason)
	}
}

func TestNeeds_UsesRefreshedVitals(t *testing.T) {
	uc, pets, _, now := setup(t)
	p := adoptedPet(*now)
	p.BaseHunger = 85
	if _, err := pets.Adopt(context.Background(), p); err != nil {
		t.Fatalf("Adopt error: %v", err)
	}

	resp, err := uc.Needs(context.Background(), Request{OwnerID: "owner-1"})
	if err != nil {
		t.Fatalf("Needs error: %v", err)
	}
	var food *pet.PetNeed
	for i := range resp.Needs {
		if resp.Needs[i].Type == pet.NeedFood {
			food = &resp.Needs[i]
		}
	}
	if food == nil || food.Urgency != pet.UrgencyCritical {
		t.Fatalf("needs = %+v, want critical food need", resp.Needs)
	}
}

func TestExecute_NoPet(t *testing.T) {
	uc, _, _, _ := setup(t)
	if _, err := uc.Execute(context.Background(), Request{OwnerID: "stranger"}); !errors.Is(err, lifecycle.ErrNoPet) {
		t.Fatalf("expected ErrNoPet, got %v", err)
	}
}

func TestExecute_RejectsEmptyOwner(t *testing.T) {
	uc, _, _, _ := setup(t)
	if _, err := uc.Execute(context.Background(), Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
