package pet

import "time"

type Vitals struct {
	Health    int `json:"health"`
	Happiness int `json:"happiness"`
	Hunger    int `json:"hunger"`
	Energy    int `json:"energy"`
}

type Stage string

const (
	StageBaby  Stage = "baby"
	StageChild Stage = "child"
	StageTeen  Stage = "teen"
	StageAdult Stage = "adult"
	StageElder Stage = "elder"
)

type Pet struct {
	ID        string `json:"id"`
	OwnerID   string `json:"owner_id"`
	SpeciesID string `json:"species_id"`
	Name      string `json:"name"`

	Vitals Vitals `json:"vitals"`
	Level  int    `json:"level"`
	Stage  Stage  `json:"stage"`

	// BaseHunger is the hunger level recorded at the last feed. Current
	// hunger is always recomputed from it and LastFed, never accumulated.
	BaseHunger      int       `json:"base_hunger"`
	LastFed         time.Time `json:"last_fed"`
	LastPlayed      time.Time `json:"last_played"`
	LastInteraction time.Time `json:"last_interaction"`

	Abilities      []string `json:"abilities,omitempty"`
	EvolutionBoost int      `json:"evolution_boost,omitempty"`

	EvolutionHistory []EvolutionRecord `json:"evolution_history,omitempty"`
	FeedingHistory   []FeedingRecord   `json:"feeding_history,omitempty"`

	AdoptedAt time.Time `json:"adopted_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EvolutionRecord struct {
	Stage      Stage              `json:"stage"`
	StudyStats StudyStatsSnapshot `json:"study_stats"`
	Vitals     Vitals             `json:"vitals"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type FeedingRecord struct {
	FoodID       string    `json:"food_id"`
	HungerBefore int       `json:"hunger_before"`
	HungerAfter  int       `json:"hunger_after"`
	FedAt        time.Time `json:"fed_at"`
}

// StudyStatsSnapshot is supplied by the study-tracking collaborators and is
// read-only here: the engine samples it at evaluation time, never computes it.
type StudyStatsSnapshot struct {
	TotalStudyHours   float64 `json:"total_study_hours"`
	StreakDays        int     `json:"streak_days"`
	QuestsCompleted   int     `json:"quests_completed"`
	AvgSessionMinutes float64 `json:"avg_session_minutes"`
}

type NeedType string

const (
	NeedFood NeedType = "food"
	NeedPlay NeedType = "play"
	NeedCare NeedType = "care"
)

// Urgency is an ordered enum; higher values are more urgent. Comparisons go
// through the integer order, never through string values.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyMedium
	UrgencyHigh
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyMedium:
		return "medium"
	case UrgencyHigh:
		return "high"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

func (u Urgency) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

type PetNeed struct {
	Type        NeedType `json:"type"`
	Urgency     Urgency  `json:"urgency"`
	Description string   `json:"description"`
	// TimeRemaining is minutes until the urgency would worsen; 0 when unknown.
	TimeRemaining int `json:"time_remaining,omitempty"`
}

type AlertType string

const (
	AlertInfo     AlertType = "info"
	AlertWarning  AlertType = "warning"
	AlertCritical AlertType = "critical"
)

type HealthAlert struct {
	ID             string    `json:"id"`
	Type           AlertType `json:"type"`
	Title          string    `json:"title"`
	Message        string    `json:"message"`
	Timestamp      time.Time `json:"timestamp"`
	Acknowledged   bool      `json:"acknowledged"`
	ActionRequired string    `json:"action_required,omitempty"`
}

type HealthTrend struct {
	SampledAt time.Time `json:"sampled_at"`
	Vitals    Vitals    `json:"vitals"`
}

type AttentionReason string

const (
	ReasonHungry  AttentionReason = "hungry"
	ReasonBored   AttentionReason = "bored"
	ReasonLonely  AttentionReason = "lonely"
	ReasonUnhappy AttentionReason = "unhappy"
	ReasonUnwell  AttentionReason = "unwell"
)

// EffectKind enumerates the stat-effect union. Effects on unknown kinds are
// impossible by construction, unlike the string payloads this replaces.
type EffectKind int

const (
	EffectHunger EffectKind = iota
	EffectHealth
	EffectHappiness
	EffectEnergy
	EffectEvolutionBoost
)

func (k EffectKind) String() string {
	switch k {
	case EffectHunger:
		return "hunger"
	case EffectHealth:
		return "health"
	case EffectHappiness:
		return "happiness"
	case EffectEnergy:
		return "energy"
	case EffectEvolutionBoost:
		return "evolution_boost"
	default:
		return "unknown"
	}
}

type StatEffect struct {
	Kind   EffectKind `json:"kind"`
	Amount int        `json:"amount"`
}

func clampStat(v int) int {
	if v < MinStat {
		return MinStat
	}
	if v > MaxStat {
		return MaxStat
	}
	return v
}

// ClampVitals forces every stat back into range. Out-of-range values are a
// programming error upstream; callers clamp and keep going rather than stop
// the simulation.
func ClampVitals(v Vitals) Vitals {
	v.Health = clampStat(v.Health)
	v.Happiness = clampStat(v.Happiness)
	v.Hunger = clampStat(v.Hunger)
	v.Energy = clampStat(v.Energy)
	return v
}
