package status

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

var ErrInvalidRequest = errors.New("invalid status request")

type UseCase struct {
	Pets    *lifecycle.Store
	Species ports.SpeciesProvider
	Stats   ports.StudyStatsProvider

	Now func() time.Time
}

// Execute assembles the full pet status: refreshed vitals, the attention
// flag, interaction recency and evolution progress toward the next stage.
func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return Response{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}
	now := u.now()

	needsAttention, reason := pet.Attention(p.Vitals, now.Sub(p.LastInteraction))

	catalog, err := u.Species.Species(ctx)
	if err != nil {
		return Response{}, err
	}
	sp, ok := pet.SpeciesByID(catalog, p.SpeciesID)
	if !ok {
		return Response{}, fmt.Errorf("species %q: %w", p.SpeciesID, ports.ErrNotFound)
	}
	stats, err := u.Stats.Snapshot(ctx, req.OwnerID)
	if err != nil {
		return Response{}, err
	}
	eligibility, err := pet.CheckEligibility(p, sp, stats, now)
	if err != nil {
		return Response{}, err
	}

	state, err := u.Pets.Status(p.ID)
	if err != nil {
		return Response{}, err
	}

	return Response{
		Pet:                p,
		NeedsAttention:     needsAttention,
		AttentionReason:    reason,
		MinutesSinceFed:    minutesSince(p.LastFed, now),
		MinutesSincePlayed: minutesSince(p.LastPlayed, now),
		EvolutionProgress:  eligibility.Progress,
		Lifecycle:          state,
	}, nil
}

// Needs returns the active needs ladder for the owner's pet.
func (u UseCase) Needs(ctx context.Context, req Request) (NeedsResponse, error) {
	if strings.TrimSpace(req.OwnerID) == "" {
		return NeedsResponse{}, ErrInvalidRequest
	}
	p, err := u.Pets.Resolve(ctx, req.OwnerID)
	if err != nil {
		return NeedsResponse{}, err
	}
	return NeedsResponse{Needs: pet.EvaluateNeeds(p.Vitals)}, nil
}

func minutesSince(t time.Time, now time.Time) int {
	if t.IsZero() || t.After(now) {
		return 0
	}
	return int(now.Sub(t).Minutes())
}

func (u UseCase) now() time.Time {
	if u.Now != nil {
		return u.Now()
	}
	return time.Now()
}
