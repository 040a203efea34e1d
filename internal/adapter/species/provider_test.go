package species

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"petverse/internal/domain/pet"
)

func TestStaticServesDefaults(t *testing.T) {
	list, err := Static{}.Species(context.Background())
	if err != nil {
		t.Fatalf("Species error: %v", err)
	}
	if _, ok := pet.SpeciesByID(list, "scholar_cat"); !ok {
		t.Fatalf("built-in catalog missing scholar_cat")
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	doc := `
species:
  - id: ember_fox
    name: Ember Fox
    chain:
      - stage: baby
        abilities: [flicker]
      - stage: child
        requirements:
          - type: study_hours
            target: 8
            description: Log 8 study hours
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	catalog, err := LoadYAML(path)
	if err != nil {
		t.Fatalf("LoadYAML error: %v", err)
	}
	list, _ := catalog.Species(context.Background())
	sp, ok := pet.SpeciesByID(list, "ember_fox")
	if !ok {
		t.Fatalf("ember_fox not loaded")
	}
	next, hasNext, err := sp.NextStage(pet.StageBaby)
	if err != nil || !hasNext {
		t.Fatalf("NextStage: %v %v", hasNext, err)
	}
	if len(next.Requirements) != 1 || next.Requirements[0].Type != pet.ReqStudyHours {
		t.Fatalf("requirements not parsed: %+v", next.Requirements)
	}
}

func TestLoadYAML_RejectsEmptyChain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "species.yaml")
	doc := "species:\n  - id: broken\n    name: Broken\n"
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadYAML(path); err == nil {
		t.Fatalf("expected validation error for empty chain")
	}
}
