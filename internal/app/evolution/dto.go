package evolution

import "petverse/internal/domain/pet"

type Request struct {
	OwnerID string
}

type EligibilityResponse struct {
	Stage       pet.Stage       `json:"stage"`
	Eligibility pet.Eligibility `json:"eligibility"`
}

type TriggerResponse struct {
	Pet    pet.Pet             `json:"pet"`
	Result pet.EvolutionResult `json:"result"`
}
