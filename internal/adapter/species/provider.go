// Package species supplies the species catalog, either built in or loaded
// from a YAML file.
package species

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"petverse/internal/domain/pet"
)

// Static serves the built-in catalog.
type Static struct{}

func (Static) Species(context.Context) ([]pet.Species, error) {
	return pet.DefaultSpecies(), nil
}

// Catalog serves a fixed, pre-loaded catalog.
type Catalog struct {
	list []pet.Species
}

func (c Catalog) Species(context.Context) ([]pet.Species, error) {
	return c.list, nil
}

type catalogFile struct {
	Species []pet.Species `yaml:"species"`
}

// LoadYAML reads a species catalog from a YAML file. Every species must have
// an id and a non-empty stage chain.
func LoadYAML(path string) (Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("read species catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return Catalog{}, fmt.Errorf("parse species catalog: %w", err)
	}
	if len(file.Species) == 0 {
		return Catalog{}, fmt.Errorf("species catalog %s: no species defined", path)
	}
	for _, sp := range file.Species {
		if sp.ID == "" {
			return Catalog{}, fmt.Errorf("species catalog %s: species without id", path)
		}
		if len(sp.Chain) == 0 {
			return Catalog{}, fmt.Errorf("species catalog %s: species %q has no stage chain", path, sp.ID)
		}
	}
	return Catalog{list: file.Species}, nil
}
