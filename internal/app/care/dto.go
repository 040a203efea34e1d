package care

import "petverse/internal/domain/pet"

type Request struct {
	OwnerID string `json:"-"`
	// ItemID selects a food or toy; empty picks the free default.
	ItemID string `json:"item_id"`
}

type Response struct {
	Pet     pet.Pet `json:"pet"`
	Message string  `json:"message"`
}
