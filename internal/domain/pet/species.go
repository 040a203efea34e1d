package pet

// StageSpec is one node of a species' fixed stage chain. The first node is
// the starting stage and carries no requirements.
type StageSpec struct {
	Stage        Stage         `json:"stage" yaml:"stage"`
	Requirements []Requirement `json:"requirements,omitempty" yaml:"requirements,omitempty"`
	Abilities    []string      `json:"abilities,omitempty" yaml:"abilities,omitempty"`
}

type Species struct {
	ID    string      `json:"id" yaml:"id"`
	Name  string      `json:"name" yaml:"name"`
	Chain []StageSpec `json:"chain" yaml:"chain"`
}

func (s Species) stageIndex(stage Stage) int {
	for i, spec := range s.Chain {
		if spec.Stage == stage {
			return i
		}
	}
	return -1
}

// NextStage returns the pending transition target, or ok=false at the
// terminal stage.
func (s Species) NextStage(stage Stage) (StageSpec, bool, error) {
	i := s.stageIndex(stage)
	if i < 0 {
		return StageSpec{}, false, ErrUnknownStage
	}
	if i+1 >= len(s.Chain) {
		return StageSpec{}, false, nil
	}
	return s.Chain[i+1], true, nil
}

// DefaultSpecies is the built-in catalog, used when no YAML catalog is
// configured.
func DefaultSpecies() []Species {
	return []Species{
		{
			ID:   "scholar_cat",
			Name: "Scholar Cat",
			Chain: []StageSpec{
				{Stage: StageBaby, Abilities: []string{"nap"}},
				{
					Stage: StageChild,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 10, Description: "Log 10 study hours"},
						{Type: ReqLevelReached, Target: 5, Description: "Reach level 5"},
						{Type: ReqHappinessMaintained, Target: 70, Description: "Keep happiness at 70"},
					},
					Abilities: []string{"pounce"},
				},
				{
					Stage: StageTeen,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 40, Description: "Log 40 study hours"},
						{Type: ReqStreakDays, Target: 7, Description: "Hold a 7-day streak"},
						{Type: ReqCareConsistency, Target: 60, Description: "Keep care consistency at 60"},
					},
					Abilities: []string{"midnight_zoomies"},
				},
				{
					Stage: StageAdult,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 120, Description: "Log 120 study hours"},
						{Type: ReqQuestsCompleted, Target: 20, Description: "Complete 20 quests"},
						{Type: ReqHealthMaintained, Target: 75, Description: "Keep health at 75"},
						{Type: ReqCareConsistency, Target: 70, Description: "Keep care consistency at 70"},
					},
					Abilities: []string{"focus_purr"},
				},
				{
					Stage: StageElder,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 300, Description: "Log 300 study hours"},
						{Type: ReqStreakDays, Target: 30, Description: "Hold a 30-day streak"},
						{Type: ReqQuestsCompleted, Target: 50, Description: "Complete 50 quests"},
					},
					Abilities: []string{"wisdom_aura"},
				},
			},
		},
		{
			ID:   "study_owl",
			Name: "Study Owl",
			Chain: []StageSpec{
				{Stage: StageBaby, Abilities: []string{"blink"}},
				{
					Stage: StageChild,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 8, Description: "Log 8 study hours"},
						{Type: ReqStreakDays, Target: 3, Description: "Hold a 3-day streak"},
					},
					Abilities: []string{"head_tilt"},
				},
				{
					Stage: StageTeen,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 35, Description: "Log 35 study hours"},
						{Type: ReqQuestsCompleted, Target: 10, Description: "Complete 10 quests"},
						{Type: ReqHappinessMaintained, Target: 65, Description: "Keep happiness at 65"},
					},
					Abilities: []string{"night_watch"},
				},
				{
					Stage: StageAdult,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 100, Description: "Log 100 study hours"},
						{Type: ReqStreakDays, Target: 14, Description: "Hold a 14-day streak"},
						{Type: ReqCareConsistency, Target: 70, Description: "Keep care consistency at 70"},
					},
					Abilities: []string{"silent_glide"},
				},
				{
					Stage: StageElder,
					Requirements: []Requirement{
						{Type: ReqStudyHours, Target: 250, Description: "Log 250 study hours"},
						{Type: ReqQuestsCompleted, Target: 40, Description: "Complete 40 quests"},
						{Type: ReqHealthMaintained, Target: 80, Description: "Keep health at 80"},
					},
					Abilities: []string{"sage_hoot"},
				},
			},
		},
	}
}

// SpeciesByID looks a species up in a catalog slice.
func SpeciesByID(catalog []Species, id string) (Species, bool) {
	for _, sp := range catalog {
		if sp.ID == id {
			return sp, true
		}
	}
	return Species{}, false
}
