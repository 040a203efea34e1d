package ports

import (
	"context"

	"petverse/internal/domain/pet"
)

// PetRepository is the persistence collaborator. The engine treats saves as
// best-effort: the in-memory record is canonical and a failed save never
// rolls it back.
type PetRepository interface {
	GetByOwnerID(ctx context.Context, ownerID string) (pet.Pet, error)
	Save(ctx context.Context, p pet.Pet) error
}

// SpeciesProvider supplies species definitions: stage chains, per-transition
// requirement sets and unlockable abilities.
type SpeciesProvider interface {
	Species(ctx context.Context) ([]pet.Species, error)
}

// StudyStatsProvider supplies the read-only study statistics sampled at
// evaluation time. The engine never computes these itself.
type StudyStatsProvider interface {
	Snapshot(ctx context.Context, ownerID string) (pet.StudyStatsSnapshot, error)
}

// CurrencyService debits the owner's balance for premium food and toys.
// Implementations return ErrInsufficientFunds when the balance cannot cover
// the amount; the care action aborts before mutating anything.
type CurrencyService interface {
	Spend(ctx context.Context, ownerID string, amount int, reason string) error
}
