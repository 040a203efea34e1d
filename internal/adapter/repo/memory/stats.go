package memory

import (
	"context"

	"petverse/internal/domain/pet"
)

// StatsProvider reports the seeded study statistics for an owner. Unknown
// owners get a zero snapshot, which reads as "has not studied yet".
type StatsProvider struct {
	store *Store
}

func NewStatsProvider(store *Store) StatsProvider {
	return StatsProvider{store: store}
}

func (p StatsProvider) Snapshot(_ context.Context, ownerID string) (pet.StudyStatsSnapshot, error) {
	p.store.mu.RLock()
	defer p.store.mu.RUnlock()
	return p.store.stats[ownerID], nil
}
