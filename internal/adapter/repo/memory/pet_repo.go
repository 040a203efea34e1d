package memory

import (
	"context"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

type PetRepo struct {
	store *Store
}

func NewPetRepo(store *Store) PetRepo {
	return PetRepo{store: store}
}

func (r PetRepo) GetByOwnerID(_ context.Context, ownerID string) (pet.Pet, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.pets[ownerID]
	if !ok {
		return pet.Pet{}, ports.ErrNotFound
	}
	return p, nil
}

func (r PetRepo) Save(_ context.Context, p pet.Pet) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.pets[p.OwnerID] = p
	return nil
}
