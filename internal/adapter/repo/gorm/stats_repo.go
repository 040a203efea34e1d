package gormrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"petverse/internal/domain/pet"
)

type studyStatsRow struct {
	OwnerID           string  `gorm:"primaryKey"`
	TotalStudyHours   float64 `gorm:"not null;default:0"`
	StreakDays        int     `gorm:"not null;default:0"`
	QuestsCompleted   int     `gorm:"not null;default:0"`
	AvgSessionMinutes float64 `gorm:"not null;default:0"`
	UpdatedAt         time.Time
}

func (studyStatsRow) TableName() string { return "study_stats" }

// StatsProvider reads the per-owner study aggregates maintained by the study
// tracker. An owner without a row reads as zero stats.
type StatsProvider struct {
	db *gorm.DB
}

func NewStatsProvider(db *gorm.DB) StatsProvider {
	return StatsProvider{db: db}
}

func (p StatsProvider) Snapshot(ctx context.Context, ownerID string) (pet.StudyStatsSnapshot, error) {
	var row studyStatsRow
	if err := p.db.WithContext(ctx).Where("owner_id = ?", ownerID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pet.StudyStatsSnapshot{}, nil
		}
		return pet.StudyStatsSnapshot{}, err
	}
	return pet.StudyStatsSnapshot{
		TotalStudyHours:   row.TotalStudyHours,
		StreakDays:        row.StreakDays,
		QuestsCompleted:   row.QuestsCompleted,
		AvgSessionMinutes: row.AvgSessionMinutes,
	}, nil
}
