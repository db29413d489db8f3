package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

// CompletionLogRepository manages the append-only (template, date)
// completion log.
type CompletionLogRepository struct {
	db *gorm.DB
}

func NewCompletionLogRepository(db *gorm.DB) *CompletionLogRepository {
	return &CompletionLogRepository{db: db}
}

// Log records a completion. Logging the same (template, date) pair again is
// a no-op.
func (r *CompletionLogRepository) Log(ctx context.Context, taskID uint, dateISO string, completedAt time.Time) error {
	entry := model.CompletionEntry{TaskID: taskID, DateISO: dateISO, CompletedAt: completedAt}
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entry).Error; err != nil {
		return fmt.Errorf("log completion: %w", err)
	}
	return nil
}

// Remove drops the entry for one (template, date) pair, leaving other dates
// untouched.
func (r *CompletionLogRepository) Remove(ctx context.Context, taskID uint, dateISO string) error {
	if err := r.db.WithContext(ctx).
		Where("task_id = ? AND date_iso = ?", taskID, dateISO).
		Delete(&model.CompletionEntry{}).Error; err != nil {
		return fmt.Errorf("remove completion: %w", err)
	}
	return nil
}

// CompletedOn returns the completion timestamps of every template logged
// done on the given date, keyed by template id.
func (r *CompletionLogRepository) CompletedOn(ctx context.Context, dateISO string) (map[uint]time.Time, error) {
	var entries []model.CompletionEntry
	if err := r.db.WithContext(ctx).Where("date_iso = ?", dateISO).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	done := make(map[uint]time.Time, len(entries))
	for _, entry := range entries {
		done[entry.TaskID] = entry.CompletedAt
	}
	return done, nil
}

// DatesForTask lists every date a template was logged done, ascending.
func (r *CompletionLogRepository) DatesForTask(ctx context.Context, taskID uint) ([]string, error) {
	var dates []string
	if err := r.db.WithContext(ctx).Model(&model.CompletionEntry{}).
		Where("task_id = ?", taskID).
		Order("date_iso ASC").
		Pluck("date_iso", &dates).Error; err != nil {
		return nil, err
	}
	return dates, nil
}
