package gormrepo

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("PETVERSE_DB_DSN")
	if dsn == "" {
		t.Skip("PETVERSE_DB_DSN is required for integration test")
	}
	return dsn
}

func TestPetRepo_RoundTrip(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-pet-roundtrip"
	_ = db.Exec("DELETE FROM pets WHERE owner_id = ?", ownerID).Error

	repo := NewPetRepo(db)
	now := time.Now().UTC().Truncate(time.Second)
	seed := pet.Pet{
		ID:              "it-pet-1",
		OwnerID:         ownerID,
		SpeciesID:       "scholar_cat",
		Name:            "Mochi",
		Vitals:          pet.Vitals{Health: 90, Happiness: 70, Hunger: 30, Energy: 80},
		Level:           3,
		Stage:           pet.StageChild,
		BaseHunger:      30,
		LastFed:         now,
		LastPlayed:      now.Add(-time.Hour),
		LastInteraction: now,
		Abilities:       []string{"nap", "pounce"},
		FeedingHistory: []pet.FeedingRecord{
			{FoodID: "kibble", HungerBefore: 50, HungerAfter: 30, FedAt: now},
		},
		AdoptedAt: now.Add(-72 * time.Hour),
		UpdatedAt: now,
	}
	if err := repo.Save(ctx, seed); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Vitals != seed.Vitals || got.Stage != seed.Stage {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if len(got.Abilities) != 2 || len(got.FeedingHistory) != 1 {
		t.Fatalf("extras lost: %+v", got)
	}

	// Saving again with the same id is an upsert, not a duplicate.
	seed.Vitals.Hunger = 10
	if err := repo.Save(ctx, seed); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, _ = repo.GetByOwnerID(ctx, ownerID)
	if got.Vitals.Hunger != 10 {
		t.Fatalf("upsert did not apply: hunger %d", got.Vitals.Hunger)
	}
}

func TestPetRepo_NotFound(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	_, err = NewPetRepo(db).GetByOwnerID(context.Background(), "it-no-such-owner")
	if !errors.Is(err, ports.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWallet_SpendAndInsufficientFunds(t *testing.T) {
	db, err := OpenPostgres(requireDSN(t))
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ctx := context.Background()
	ownerID := "it-wallet"
	_ = db.Exec("DELETE FROM wallets WHERE owner_id = ?", ownerID).Error
	_ = db.Exec("DELETE FROM wallet_ledger WHERE owner_id = ?", ownerID).Error

	w := NewWallet(db)
	if err := w.Deposit(ctx, ownerID, 40, "seed"); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	if err := w.Spend(ctx, ownerID, 25, "food:berry_mix"); err != nil {
		t.Fatalf("spend: %v", err)
	}
	err = w.Spend(ctx, ownerID, 25, "food:feast")
	if !errors.Is(err, ports.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var row walletRow
	if err := db.Where("owner_id = ?", ownerID).First(&row).Error; err != nil {
		t.Fatalf("read wallet: %v", err)
	}
	if row.Coins != 15 {
		t.Fatalf("balance = %d, want 15", row.Coins)
	}
}
