package pet

import (
	"fmt"
	"time"
)

// EvaluateNeeds derives at most one need per category from the current
// vitals, each at the highest matching urgency tier.
func EvaluateNeeds(v Vitals) []PetNeed {
	needs := make([]PetNeed, 0, 3)

	switch {
	case v.Hunger >= FoodNeedCritical:
		needs = append(needs, PetNeed{
			Type:        NeedFood,
			Urgency:     UrgencyCritical,
			Description: "Starving! Feed your pet right away.",
		})
	case v.Hunger >= FoodNeedHigh:
		needs = append(needs, PetNeed{
			Type:          NeedFood,
			Urgency:       UrgencyHigh,
			Description:   "Very hungry and needs food soon.",
			TimeRemaining: minutesUntilHunger(v.Hunger, FoodNeedCritical),
		})
	case v.Hunger >= FoodNeedMedium:
		needs = append(needs, PetNeed{
			Type:          NeedFood,
			Urgency:       UrgencyMedium,
			Description:   "Getting hungry.",
			TimeRemaining: minutesUntilHunger(v.Hunger, FoodNeedHigh),
		})
	}

	switch {
	case v.Happiness <= PlayNeedCritical:
		needs = append(needs, PetNeed{
			Type:        NeedPlay,
			Urgency:     UrgencyCritical,
			Description: "Miserable and desperately wants to play.",
		})
	case v.Happiness <= PlayNeedHigh:
		needs = append(needs, PetNeed{
			Type:        NeedPlay,
			Urgency:     UrgencyHigh,
			Description: "Feeling down and wants attention.",
		})
	case v.Happiness <= PlayNeedMedium:
		needs = append(needs, PetNeed{
			Type:        NeedPlay,
			Urgency:     UrgencyMedium,
			Description: "Could use some playtime.",
		})
	}

	switch {
	case v.Health <= CareNeedCritical:
		needs = append(needs, PetNeed{
			Type:        NeedCare,
			Urgency:     UrgencyCritical,
			Description: "Health is critical! Needs care immediately.",
		})
	case v.Health <= CareNeedHigh:
		needs = append(needs, PetNeed{
			Type:        NeedCare,
			Urgency:     UrgencyHigh,
			Description: "Not feeling well and needs care.",
		})
	}

	return needs
}

// minutesUntilHunger returns how long until hunger reaches the given level at
// the linear accrual rate.
func minutesUntilHunger(current, target int) int {
	if current >= target {
		return 0
	}
	return (target - current) * 60 / HungerPerHour
}

// AlertCondition is an alert candidate before the lifecycle store assigns it
// an identity and stores it.
type AlertCondition struct {
	Type           AlertType
	Title          string
	Message        string
	ActionRequired string
}

// EvaluateAlertConditions fires threshold alerts along independent ladders
// for health, happiness, hunger and neglect.
func EvaluateAlertConditions(v Vitals, sinceInteraction time.Duration) []AlertCondition {
	conditions := make([]AlertCondition, 0, 4)

	switch {
	case v.Health <= HealthAlertCritical:
		conditions = append(conditions, AlertCondition{
			Type:           AlertCritical,
			Title:          "Health critical",
			Message:        fmt.Sprintf("Health has dropped to %d.", v.Health),
			ActionRequired: "care",
		})
	case v.Health <= HealthAlertWarning:
		conditions = append(conditions, AlertCondition{
			Type:    AlertWarning,
			Title:   "Health low",
			Message: fmt.Sprintf("Health is down to %d.", v.Health),
		})
	}

	switch {
	case v.Hunger >= HungerAlertCritical:
		conditions = append(conditions, AlertCondition{
			Type:           AlertCritical,
			Title:          "Starving",
			Message:        fmt.Sprintf("Hunger has reached %d.", v.Hunger),
			ActionRequired: "feed",
		})
	case v.Hunger >= HungerAlertWarning:
		conditions = append(conditions, AlertCondition{
			Type:    AlertWarning,
			Title:   "Very hungry",
			Message: fmt.Sprintf("Hunger is at %d.", v.Hunger),
		})
	}

	switch {
	case v.Happiness <= HappinessAlertCritical:
		conditions = append(conditions, AlertCondition{
			Type:           AlertCritical,
			Title:          "Deeply unhappy",
			Message:        fmt.Sprintf("Happiness has fallen to %d.", v.Happiness),
			ActionRequired: "play",
		})
	case v.Happiness <= HappinessAlertWarning:
		conditions = append(conditions, AlertCondition{
			Type:    AlertWarning,
			Title:   "Unhappy",
			Message: fmt.Sprintf("Happiness is at %d.", v.Happiness),
		})
	}

	switch {
	case sinceInteraction >= NeglectCriticalHours*time.Hour:
		conditions = append(conditions, AlertCondition{
			Type:           AlertCritical,
			Title:          "Feels neglected",
			Message:        "No interaction for over a day.",
			ActionRequired: "care",
		})
	case sinceInteraction >= NeglectWarningHours*time.Hour:
		conditions = append(conditions, AlertCondition{
			Type:    AlertWarning,
			Title:   "Misses you",
			Message: "It has been a while since the last interaction.",
		})
	}

	return conditions
}

// Suppressed reports whether a candidate alert should be dropped because an
// alert with the same (type, title) is still unacknowledged and younger than
// the dedup window. This keeps a persisting condition from re-firing on
// every evaluation tick.
func Suppressed(existing []HealthAlert, cond AlertCondition, now time.Time) bool {
	for _, a := range existing {
		if a.Type != cond.Type || a.Title != cond.Title || a.Acknowledged {
			continue
		}
		if now.Sub(a.Timestamp) < AlertDedupWindow {
			return true
		}
	}
	return false
}

// Attention reports whether any high/critical condition is active, and the
// single highest-priority reason. The priority order is fixed: critical
// health > critical hunger > critical happiness > high hunger >
// high happiness > lower tiers.
func Attention(v Vitals, sinceInteraction time.Duration) (bool, AttentionReason) {
	switch {
	case v.Health <= CareNeedCritical:
		return true, ReasonUnwell
	case v.Hunger >= FoodNeedCritical:
		return true, ReasonHungry
	case v.Happiness <= PlayNeedCritical:
		return true, ReasonUnhappy
	case v.Hunger >= FoodNeedHigh:
		return true, ReasonHungry
	case v.Happiness <= PlayNeedHigh:
		return true, ReasonBored
	case v.Health <= CareNeedHigh:
		return true, ReasonUnwell
	case sinceInteraction >= NeglectCriticalHours*time.Hour:
		return true, ReasonLonely
	}
	return false, ""
}
