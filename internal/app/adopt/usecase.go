package adopt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid adopt request")

type UseCase struct {
	Pets    *lifecycle.Store
	Species ports.SpeciesProvider

	// NewID and Now are injectable for tests.
	NewID func() string
	Now   func() time.Time
}

// Execute creates a newborn pet from the species' first chain node and
// places it under monitoring. An empty species id picks the first species in
// the catalog.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" || strings.TrimSpace(req.Name) == "" {
		return Response{}, ErrInvalidRequest
	}

	catalog, err := u.Species.Species(ctx)
	if err != nil {
		return Response{}, err
	}
	if len(catalog) == 0 {
		return Response{}, fmt.Errorf("species catalog is empty: %w", ports.ErrNotFound)
	}

	sp := catalog[0]
	if req.SpeciesID != "" {
		found, ok := pet.SpeciesByID(catalog, req.SpeciesID)
		if !ok {
			return Response{}, fmt.Errorf("species %q: %w", req.SpeciesID, ports.ErrNotFound)
		}
		sp = found
	}
	if len(sp.Chain) == 0 {
		return Response{}, fmt.Errorf("species %q has an empty stage chain", sp.ID)
	}

	now := u.now()
	newborn := pet.Pet{
		ID:              u.newID(),
		OwnerID:         req.OwnerID,
		SpeciesID:       sp.ID,
		Name:            strings.TrimSpace(req.Name),
		Stage:           sp.Chain[0].Stage,
		Level:           1,
		Vitals:          pet.Vitals{Health: 100, Happiness: 100, Hunger: 0, Energy: 100},
		Abilities:       append([]string(nil), sp.Chain[0].Abilities...),
		LastFed:         now,
		LastPlayed:      now,
		LastInteraction: now,
		AdoptedAt:       now,
		UpdatedAt:       now,
	}

	stored, err := u.Pets.Adopt(ctx, newborn)
	if err != nil {
		return Response{}, err
	}
	return Response{Pet: stored}, nil
}

func (u UseCase) newID() string {
	if u.NewID != nil {
		return u.NewID()
	}
	return uuid.NewString()
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
