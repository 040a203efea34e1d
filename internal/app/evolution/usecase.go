package evolution

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"petverse/internal/app/lifecycle"
	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

var ErrInvalidRequest = errors.New("invalid evolution request")

type UseCase struct {
	Pets    *lifecycle.Store
	Species ports.SpeciesProvider
	Stats   ports.StudyStatsProvider

	Now func() time.Time
}

// Eligibility reports whether the pet can evolve right now and how far along
// each pending requirement is.
func (u UseCase) Eligibility(ctx context.Context, req Request) (EligibilityResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return EligibilityResponse{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return EligibilityResponse{}, err
	}
	sp, stats, err := u.context(ctx, p)
	if err != nil {
		return EligibilityResponse{}, err
	}
	eligibility, err := pet.CheckEligibility(p, sp, stats, u.now())
	if err != nil {
		return EligibilityResponse{}, err
	}
	return EligibilityResponse{Stage: p.Stage, Eligibility: eligibility}, nil
}

// Trigger re-checks eligibility under the action flag and advances the stage
// atomically: requirements are evaluated against the same snapshot that gets
// mutated.
func (u UseCase) Trigger(ctx context.Context, req Request) (TriggerResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return TriggerResponse{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return TriggerResponse{}, err
	}
	sp, stats, err := u.context(ctx, p)
	if err != nil {
		return TriggerResponse{}, err
	}

	var result pet.EvolutionResult
	snapshot, err := u.Pets.WithAction(ctx, p.ID, lifecycle.StateEvolving, func(target *pet.Pet) error {
		r, err := pet.AdvanceStage(target, sp, stats, u.now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	if err != nil {
		return TriggerResponse{}, err
	}
	return TriggerResponse{Pet: snapshot, Result: result}, nil
}

func (u UseCase) context(ctx context.Context, p pet.Pet) (pet.Species, pet.StudyStatsSnapshot, error) {
	catalog, err := u.Species.Species(ctx)
	if err != nil {
		return pet.Species{}, pet.StudyStatsSnapshot{}, err
	}
	sp, ok := pet.SpeciesByID(catalog, p.SpeciesID)
	if !ok {
		return pet.Species{}, pet.StudyStatsSnapshot{}, fmt.Errorf("species %q: %w", p.SpeciesID, ports.ErrNotFound)
	}
	stats, err := u.Stats.Snapshot(ctx, p.OwnerID)
	if err != nil {
		return pet.Species{}, pet.StudyStatsSnapshot{}, err
	}
	return sp, stats, nil
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
