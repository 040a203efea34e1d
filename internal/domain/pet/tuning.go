package pet

import "time"

const (
	MaxStat = 100
	MinStat = 0

	HungerPerHour = 2

	SevereHungerThreshold  = 95
	SevereHungerHealthLoss = 5
	HighHungerThreshold    = 85
	HighHungerHealthLoss   = 2

	HappinessHungerThreshold = 80
	HappinessHungerDivisor   = 5

	FoodNeedCritical = 80
	FoodNeedHigh     = 60
	FoodNeedMedium   = 40

	PlayNeedCritical = 20
	PlayNeedHigh     = 40
	PlayNeedMedium   = 60

	CareNeedCritical = 30
	CareNeedHigh     = 50

	HungerAlertCritical = 90
	HungerAlertWarning  = 75

	HealthAlertCritical = 30
	HealthAlertWarning  = 50

	HappinessAlertCritical = 20
	HappinessAlertWarning  = 40

	NeglectCriticalHours = 24
	NeglectWarningHours  = 12

	AlertBufferCap = 50
	TrendBufferCap = 288

	FeedingHistoryCap = 10

	MinFeedEfficiency = 0.5

	FeedingFreshnessHours = 24
	PlayingFreshnessHours = 48

	CareHealthBonus    = 5
	CareHappinessBonus = 5

	EvolutionCoinReward = 100
	EvolutionXPReward   = 250
	AdultItemReward     = "golden_collar"

	// Progress points granted per accumulated evolution boost, capped so a
	// boosted pet never shows 100 while requirements are unmet.
	EvolutionBoostProgress = 2
)

const (
	FeedCooldown     = 30 * time.Minute
	PlayCooldown     = 15 * time.Minute
	AlertDedupWindow = 30 * time.Minute
)
