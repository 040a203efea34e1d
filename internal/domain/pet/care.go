package pet

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var ErrCooldownActive = errors.New("cooldown active")

// CooldownError reports which action is throttled and for how long.
type CooldownError struct {
	Action    string
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s cooldown active for %s", e.Action, e.Remaining.Round(time.Second))
}

func (e *CooldownError) Unwrap() error { return ErrCooldownActive }

type Food struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Cost         int          `json:"cost"`
	HungerRelief int          `json:"hunger_relief"`
	Effects      []StatEffect `json:"effects,omitempty"`
}

type Toy struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Cost    int          `json:"cost"`
	Effects []StatEffect `json:"effects,omitempty"`
}

const (
	DefaultFoodID = "kibble"
	DefaultToyID  = "yarn_ball"
)

var foodCatalog = map[string]Food{
	"kibble": {
		ID: "kibble", Name: "Kibble", Cost: 0, HungerRelief: 25,
		Effects: []StatEffect{{Kind: EffectHappiness, Amount: 3}},
	},
	"berry_mix": {
		ID: "berry_mix", Name: "Berry Mix", Cost: 10, HungerRelief: 35,
		Effects: []StatEffect{
			{Kind: EffectHealth, Amount: 5},
			{Kind: EffectHappiness, Amount: 5},
		},
	},
	"feast": {
		ID: "feast", Name: "Scholar's Feast", Cost: 50, HungerRelief: 60,
		Effects: []StatEffect{
			{Kind: EffectHealth, Amount: 10},
			{Kind: EffectHappiness, Amount: 10},
			{Kind: EffectEnergy, Amount: 5},
			{Kind: EffectEvolutionBoost, Amount: 1},
		},
	},
}

var toyCatalog = map[string]Toy{
	"yarn_ball": {
		ID: "yarn_ball", Name: "Yarn Ball", Cost: 0,
		Effects: []StatEffect{
			{Kind: EffectHappiness, Amount: 20},
			{Kind: EffectEnergy, Amount: -10},
		},
	},
	"puzzle_box": {
		ID: "puzzle_box", Name: "Puzzle Box", Cost: 25,
		Effects: []StatEffect{
			{Kind: EffectHappiness, Amount: 35},
			{Kind: EffectEnergy, Amount: -5},
		},
	},
}

// FoodByID resolves a food; an empty id means the basic free food.
func FoodByID(id string) (Food, bool) {
	if id == "" {
		id = DefaultFoodID
	}
	f, ok := foodCatalog[id]
	return f, ok
}

func ToyByID(id string) (Toy, bool) {
	if id == "" {
		id = DefaultToyID
	}
	t, ok := toyCatalog[id]
	return t, ok
}

func Foods() []Food {
	out := make([]Food, 0, len(foodCatalog))
	for _, f := range foodCatalog {
		out = append(out, f)
	}
	return out
}

// FeedCooldownRemaining reports how long until the pet can be fed again,
// zero when it is ready. Callers that charge for food check this before
// taking payment.
func FeedCooldownRemaining(p Pet, now time.Time) time.Duration {
	return cooldownRemaining(p.LastFed, FeedCooldown, now)
}

// PlayCooldownRemaining is the play counterpart, keyed on LastPlayed.
func PlayCooldownRemaining(p Pet, now time.Time) time.Duration {
	return cooldownRemaining(p.LastPlayed, PlayCooldown, now)
}

func cooldownRemaining(last time.Time, cooldown time.Duration, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	if elapsed := now.Sub(last); elapsed < cooldown {
		return cooldown - elapsed
	}
	return 0
}

// Feed applies a food to the pet. Hungrier pets get more out of a meal: the
// relief scales with current hunger, floored at half effect. Rejected with a
// CooldownError while the feeding cooldown is active, leaving state
// untouched.
func Feed(p *Pet, f Food, now time.Time) error {
	if remaining := FeedCooldownRemaining(*p, now); remaining > 0 {
		return &CooldownError{Action: "feed", Remaining: remaining}
	}

	before := p.Vitals.Hunger
	relief := int(math.Round(float64(f.HungerRelief) * feedEfficiency(before)))
	p.Vitals.Hunger = clampStat(before - relief)
	applyEffects(p, f.Effects)

	p.BaseHunger = p.Vitals.Hunger
	p.LastFed = now
	p.LastInteraction = now
	p.UpdatedAt = now

	p.FeedingHistory = append(p.FeedingHistory, FeedingRecord{
		FoodID:       f.ID,
		HungerBefore: before,
		HungerAfter:  p.Vitals.Hunger,
		FedAt:        now,
	})
	if len(p.FeedingHistory) > FeedingHistoryCap {
		p.FeedingHistory = p.FeedingHistory[len(p.FeedingHistory)-FeedingHistoryCap:]
	}
	return nil
}

func feedEfficiency(hunger int) float64 {
	eff := float64(hunger) / float64(MaxStat)
	if eff < MinFeedEfficiency {
		return MinFeedEfficiency
	}
	return eff
}

// Play applies a toy. Same cooldown contract as Feed, keyed on LastPlayed.
func Play(p *Pet, t Toy, now time.Time) error {
	if remaining := PlayCooldownRemaining(*p, now); remaining > 0 {
		return &CooldownError{Action: "play", Remaining: remaining}
	}

	applyEffects(p, t.Effects)
	p.LastPlayed = now
	p.LastInteraction = now
	p.UpdatedAt = now
	return nil
}

// Care is the free fallback action: small simultaneous health and happiness
// bumps, no cooldown, no cost.
func Care(p *Pet, now time.Time) {
	p.Vitals.Health = clampStat(p.Vitals.Health + CareHealthBonus)
	p.Vitals.Happiness = clampStat(p.Vitals.Happiness + CareHappinessBonus)
	p.LastInteraction = now
	p.UpdatedAt = now
}

func applyEffects(p *Pet, effects []StatEffect) {
	for _, e := range effects {
		switch e.Kind {
		case EffectHunger:
			p.Vitals.Hunger = clampStat(p.Vitals.Hunger - e.Amount)
		case EffectHealth:
			p.Vitals.Health = clampStat(p.Vitals.Health + e.Amount)
		case EffectHappiness:
			p.Vitals.Happiness = clampStat(p.Vitals.Happiness + e.Amount)
		case EffectEnergy:
			p.Vitals.Energy = clampStat(p.Vitals.Energy + e.Amount)
		case EffectEvolutionBoost:
			p.EvolutionBoost += e.Amount
		}
	}
}
