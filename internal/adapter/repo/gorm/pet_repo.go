package gormrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"petverse/internal/app/ports"
	"petverse/internal/domain/pet"
)

type petRow struct {
	ID        string `gorm:"primaryKey"`
	OwnerID   string `gorm:"uniqueIndex;not null"`
	SpeciesID string `gorm:"not null"`
	Name      string `gorm:"not null"`

	Health    int
	Happiness int
	Hunger    int
	Energy    int
	Level     int
	Stage     string

	BaseHunger      int
	LastFed         time.Time
	LastPlayed      time.Time
	LastInteraction time.Time

	// Extras holds the list-valued fields as a JSON document so the schema
	// stays flat.
	Extras string

	AdoptedAt time.Time
	UpdatedAt time.Time
}

func (petRow) TableName() string { return "pets" }

type petExtras struct {
	Abilities        []string              `json:"abilities,omitempty"`
	EvolutionBoost   int                   `json:"evolution_boost,omitempty"`
	EvolutionHistory []pet.EvolutionRecord `json:"evolution_history,omitempty"`
	FeedingHistory   []pet.FeedingRecord   `json:"feeding_history,omitempty"`
}

type PetRepo struct {
	db *gorm.DB
}

func NewPetRepo(db *gorm.DB) PetRepo {
	return PetRepo{db: db}
}

func (r PetRepo) GetByOwnerID(ctx context.Context, ownerID string) (pet.Pet, error) {
	var row petRow
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.Pet{}, ports.ErrNotFound
		}
		return pet.Pet{}, err
	}
	return rowToPet(row)
}

func (r PetRepo) Save(ctx context.Context, p pet.Pet) error {
	row, err := petToRow(p)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&row).Error
}

func rowToPet(row petRow) (pet.Pet, error) {
	var extras petExtras
	if row.Extras != "" {
		if err := json.Unmarshal([]byte(row.Extras), &extras); err != nil {
			return pet.Pet{}, fmt.Errorf("decode pet %s extras: %w", row.ID, err)
		}
	}
	return pet.Pet{
		ID:        row.ID,
		OwnerID:   row.OwnerID,
		SpeciesID: row.SpeciesID,
		Name:      row.Name,
		Vitals: pet.Vitals{
			Health:    row.Health,
			Happiness: row.Happiness,
			Hunger:    row.Hunger,
			Energy:    row.Energy,
		},
		Level:            row.Level,
		Stage:            pet.Stage(row.Stage),
		BaseHunger:       row.BaseHunger,
		LastFed:          row.LastFed,
		LastPlayed:       row.LastPlayed,
		LastInteraction:  row.LastInteraction,
		Abilities:        extras.Abilities,
		EvolutionBoost:   extras.EvolutionBoost,
		EvolutionHistory: extras.EvolutionHistory,
		FeedingHistory:   extras.FeedingHistory,
		AdoptedAt:        row.AdoptedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func petToRow(p pet.Pet) (petRow, error) {
	extras, err := json.Marshal(petExtras{
		Abilities:        p.Abilities,
		EvolutionBoost:   p.EvolutionBoost,
		EvolutionHistory: p.EvolutionHistory,
		FeedingHistory:   p.FeedingHistory,
	})
	if err != nil {
		return petRow{}, fmt.Errorf("encode pet %s extras: %w", p.ID, err)
	}
	return petRow{
		ID:              p.ID,
		OwnerID:         p.OwnerID,
		SpeciesID:       p.SpeciesID,
		Name:            p.Name,
		Health:          p.Vitals.Health,
		Happiness:       p.Vitals.Happiness,
		Hunger:          p.Vitals.Hunger,
		Energy:          p.Vitals.Energy,
		Level:           p.Level,
		Stage:           string(p.Stage),
		BaseHunger:      p.BaseHunger,
		LastFed:         p.LastFed,
		LastPlayed:      p.LastPlayed,
		LastInteraction: p.LastInteraction,
		Extras:          string(extras),
		AdoptedAt:       p.AdoptedAt,
		UpdatedAt:       p.UpdatedAt,
	}, nil
}
