package pet

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	ErrNotEligible   = errors.New("evolution requirements not met")
	ErrTerminalStage = errors.New("already at the final stage")
	ErrUnknownStage  = errors.New("stage not in species chain")
)

type RequirementType string

const (
	ReqStudyHours          RequirementType = "study_hours"
	ReqStreakDays          RequirementType = "streak_days"
	ReqQuestsCompleted     RequirementType = "quests_completed"
	ReqLevelReached        RequirementType = "level_reached"
	ReqHappinessMaintained RequirementType = "happiness_maintained"
	ReqHealthMaintained    RequirementType = "health_maintained"
	ReqCareConsistency     RequirementType = "care_consistency"
)

type Requirement struct {
	Type        RequirementType `json:"type" yaml:"type"`
	Target      float64         `json:"target" yaml:"target"`
	Description string          `json:"description" yaml:"description"`
}

type RequirementStatus struct {
	Type        RequirementType `json:"type"`
	Target      float64         `json:"target"`
	Current     float64         `json:"current"`
	Description string          `json:"description"`
	Met         bool            `json:"met"`
}

type Eligibility struct {
	CanEvolve           bool                `json:"can_evolve"`
	NextStage           Stage               `json:"next_stage,omitempty"`
	MissingRequirements []RequirementStatus `json:"missing_requirements,omitempty"`
	Progress            int                 `json:"progress"`
	Tips                []string            `json:"tips,omitempty"`
}

type CelebrationReward struct {
	Coins int    `json:"coins"`
	XP    int    `json:"xp"`
	Item  string `json:"item,omitempty"`
}

type EvolutionResult struct {
	Stage             Stage             `json:"stage"`
	UnlockedAbilities []string          `json:"unlocked_abilities,omitempty"`
	Reward            CelebrationReward `json:"reward"`
}

// CareConsistency blends recency-of-interaction freshness scores with the raw
// health and happiness levels. The mix of 0-100 freshness subscores with
// absolute stat levels is carried over from the original tuning as-is.
func CareConsistency(p Pet, now time.Time) float64 {
	feeding := freshness(p.LastFed, now, FeedingFreshnessHours)
	playing := freshness(p.LastPlayed, now, PlayingFreshnessHours)
	return (feeding + playing + float64(p.Vitals.Health) + float64(p.Vitals.Happiness)) / 4
}

func freshness(last time.Time, now time.Time, windowHours float64) float64 {
	if last.IsZero() {
		return 0
	}
	hours := now.Sub(last).Hours()
	if hours < 0 {
		hours = 0
	}
	score := 100 - hours/windowHours*100
	if score < 0 {
		return 0
	}
	return score
}

// CheckEligibility evaluates the pending transition of the species chain.
// At the terminal stage it reports no next stage and full progress.
func CheckEligibility(p Pet, sp Species, stats StudyStatsSnapshot, now time.Time) (Eligibility, error) {
	next, ok, err := sp.NextStage(p.Stage)
	if err != nil {
		return Eligibility{}, err
	}
	if !ok {
		return Eligibility{Progress: 100}, nil
	}

	missing := make([]RequirementStatus, 0, len(next.Requirements))
	totalPct := 0.0
	allMet := true
	for _, req := range next.Requirements {
		current := requirementCurrent(req.Type, p, stats, now)
		met := current >= req.Target
		totalPct += completionPct(current, req.Target)
		if !met {
			allMet = false
			missing = append(missing, RequirementStatus{
				Type:        req.Type,
				Target:      req.Target,
				Current:     current,
				Description: req.Description,
				Met:         false,
			})
		}
	}

	progress := 100
	if len(next.Requirements) > 0 {
		progress = int(math.Round(totalPct / float64(len(next.Requirements))))
	}
	// Premium food accrues an evolution boost that advances progress, but
	// never substitutes for an unmet requirement.
	if !allMet && p.EvolutionBoost > 0 {
		progress += p.EvolutionBoost * EvolutionBoostProgress
		if progress > 99 {
			progress = 99
		}
	}

	return Eligibility{
		CanEvolve:           allMet,
		NextStage:           next.Stage,
		MissingRequirements: missing,
		Progress:            progress,
		Tips:                tipsFor(missing),
	}, nil
}

func requirementCurrent(t RequirementType, p Pet, stats StudyStatsSnapshot, now time.Time) float64 {
	switch t {
	case ReqStudyHours:
		return stats.TotalStudyHours
	case ReqStreakDays:
		return float64(stats.StreakDays)
	case ReqQuestsCompleted:
		return float64(stats.QuestsCompleted)
	case ReqLevelReached:
		return float64(p.Level)
	case ReqHappinessMaintained:
		return float64(p.Vitals.Happiness)
	case ReqHealthMaintained:
		return float64(p.Vitals.Health)
	case ReqCareConsistency:
		return CareConsistency(p, now)
	default:
		return 0
	}
}

// completionPct caps each requirement at 100 before it enters the average so
// one overshot requirement cannot mask another unmet one.
func completionPct(current, target float64) float64 {
	if target <= 0 {
		return 100
	}
	pct := current / target * 100
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

func tipsFor(missing []RequirementStatus) []string {
	if len(missing) == 0 {
		return nil
	}
	tips := make([]string, 0, len(missing))
	for _, m := range missing {
		delta := m.Target - m.Current
		switch m.Type {
		case ReqStudyHours:
			tips = append(tips, fmt.Sprintf("Study %.1f more hours.", delta))
		case ReqStreakDays:
			tips = append(tips, fmt.Sprintf("Keep your streak going for %.0f more days.", math.Ceil(delta)))
		case ReqQuestsCompleted:
			tips = append(tips, fmt.Sprintf("Complete %.0f more quests.", math.Ceil(delta)))
		case ReqLevelReached:
			tips = append(tips, fmt.Sprintf("Reach level %.0f.", m.Target))
		case ReqHappinessMaintained:
			tips = append(tips, fmt.Sprintf("Raise happiness to %.0f by playing together.", m.Target))
		case ReqHealthMaintained:
			tips = append(tips, fmt.Sprintf("Restore health to %.0f with regular care.", m.Target))
		case ReqCareConsistency:
			tips = append(tips, "Feed and play with your pet more regularly.")
		}
	}
	return tips
}

// AdvanceStage executes the pending transition. On success the stage moves
// forward, a history entry captures the study snapshot and vitals at the
// moment of transition, the new stage's abilities unlock, the accumulated
// evolution boost is consumed, and the celebration reward is returned.
// Re-invoking afterwards evaluates the new
// pending transition; the same transition can never apply twice.
func AdvanceStage(p *Pet, sp Species, stats StudyStatsSnapshot, now time.Time) (EvolutionResult, error) {
	elig, err := CheckEligibility(*p, sp, stats, now)
	if err != nil {
		return EvolutionResult{}, err
	}
	if elig.NextStage == "" {
		return EvolutionResult{}, ErrTerminalStage
	}
	if !elig.CanEvolve {
		return EvolutionResult{}, ErrNotEligible
	}

	next, _, err := sp.NextStage(p.Stage)
	if err != nil {
		return EvolutionResult{}, err
	}

	p.Stage = next.Stage
	p.EvolutionBoost = 0
	p.Abilities = append(p.Abilities, next.Abilities...)
	p.EvolutionHistory = append(p.EvolutionHistory, EvolutionRecord{
		Stage:      next.Stage,
		StudyStats: stats,
		Vitals:     p.Vitals,
		OccurredAt: now,
	})
	p.LastInteraction = now
	p.UpdatedAt = now

	reward := CelebrationReward{Coins: EvolutionCoinReward, XP: EvolutionXPReward}
	if next.Stage == StageAdult {
		reward.Item = AdultItemReward
	}

	return EvolutionResult{
		Stage:             next.Stage,
		UnlockedAbilities: next.Abilities,
		Reward:            reward,
	}, nil
}
