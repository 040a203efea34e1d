package pet

import (
	"math"
	"time"
)

// HungerFromElapsed recomputes hunger from the level recorded at the last
// feed. Pure in its inputs: evaluating it twice for the same lastFed/now pair
// yields the same value, so repeated ticks never compound.
func HungerFromElapsed(lastFed, now time.Time, baseHunger int) int {
	if lastFed.IsZero() || !now.After(lastFed) {
		return clampStat(baseHunger)
	}
	hours := now.Sub(lastFed).Hours()
	gained := int(math.Floor(hours * HungerPerHour))
	return clampStat(baseHunger + gained)
}

// HealthImpactOfHunger applies the starvation step function. The breakpoints
// are deliberate steps, not a proportional curve.
func HealthImpactOfHunger(hunger, health int) int {
	switch {
	case hunger >= SevereHungerThreshold:
		health -= SevereHungerHealthLoss
	case hunger >= HighHungerThreshold:
		health -= HighHungerHealthLoss
	}
	return clampStat(health)
}

func HappinessImpactOfHunger(hunger, happiness int) int {
	if hunger >= HappinessHungerThreshold {
		happiness -= (hunger - HappinessHungerThreshold) / HappinessHungerDivisor
	}
	return clampStat(happiness)
}
