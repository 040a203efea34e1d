package adopt

import "petverse/internal/domain/pet"

type Request struct {
	OwnerID   string `json:"-"`
	SpeciesID string `json:"species_id"`
	Name      string `json:"name"`
}

type Response struct {
	Pet pet.Pet `json:"pet"`
}
