package status

import (
	"petverse/internal/app/lifecycle"
	"petverse/internal/domain/pet"
)

type Request struct {
	OwnerID string
}

type Response struct {
	Pet                pet.Pet             `json:"pet"`
	NeedsAttention     bool                `json:"needs_attention"`
	AttentionReason    pet.AttentionReason `json:"attention_reason,omitempty"`
	MinutesSinceFed    int                 `json:"minutes_since_fed"`
	MinutesSincePlayed int                 `json:"minutes_since_played"`
	EvolutionProgress  int                 `json:"evolution_progress"`
	Lifecycle          lifecycle.Status    `json:"lifecycle"`
}

type NeedsResponse struct {
	Needs []pet.PetNeed `json:"needs"`
}
