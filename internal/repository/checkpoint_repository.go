package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

// checkpointRowID pins the checkpoint to a single row.
const checkpointRowID uint = 1

// CheckpointRepository stores the last-finalized-date scalar.
type CheckpointRepository struct {
	db *gorm.DB
}

func NewCheckpointRepository(db *gorm.DB) *CheckpointRepository {
	return &CheckpointRepository{db: db}
}

// Load returns the stored ISO date, or "" when no checkpoint has ever been
// written.
func (r *CheckpointRepository) Load(ctx context.Context) (string, error) {
	var cp model.Checkpoint
	err := r.db.WithContext(ctx).First(&cp, checkpointRowID).Error
	switch {
	case err == nil:
		return cp.LastFinalizedISO, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return "", nil
	default:
		return "", fmt.Errorf("load checkpoint: %w", err)
	}
}

// Save upserts the checkpoint row with the given ISO date.
func (r *CheckpointRepository) Save(ctx context.Context, dateISO string) error {
	cp := model.Checkpoint{ID: checkpointRowID, LastFinalizedISO: dateISO}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"last_finalized_iso", "updated_at"}),
	}).Create(&cp).Error; err != nil {
		return fmt.Errorf("save checkpoint: %w", err)
	}
	return nil
}
