// Package memory backs the ports with plain maps. It is the storage used in
// tests and in single-process deployments without a database.
package memory

import (
	"sync"

	"petverse/internal/domain/pet"
)

type Store struct {
	mu       sync.RWMutex
	pets     map[string]pet.Pet
	balances map[string]int
	stats    map[string]pet.StudyStatsSnapshot
}

func NewStore() *Store {
	return &Store{
		pets:     make(map[string]pet.Pet),
		balances: make(map[string]int),
		stats:    make(map[string]pet.StudyStatsSnapshot),
	}
}

// SeedBalance sets an owner's coin balance.
func (s *Store) SeedBalance(ownerID string, coins int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[ownerID] = coins
}

// SeedStats sets the study statistics reported for an owner.
func (s *Store) SeedStats(ownerID string, snapshot pet.StudyStatsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats[ownerID] = snapshot
}

// Balance returns the owner's current coin balance.
func (s *Store) Balance(ownerID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[ownerID]
}
