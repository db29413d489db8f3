package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

// HistoryRepository owns the immutable day_records and day_task_records
// tables. Rows are written once, at finalization, and only read afterwards.
type HistoryRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// WriteDay inserts the summary row and its snapshot rows in one transaction.
// If the date already has a DayRecord, or any snapshot rows from a partial
// write, nothing is inserted and WriteDay reports false. The existence check
// and insert share the transaction, so concurrent passes cannot double-write
// a date.
func (r *HistoryRepository) WriteDay(ctx context.Context, record *model.DayRecord, snapshots []model.DayTaskRecord) (bool, error) {
	written := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.DayRecord{}).Where("date_iso = ?", record.DateISO).Count(&count).Error; err != nil {
			return fmt.Errorf("check day record: %w", err)
		}
		if count > 0 {
			return nil
		}
		if err := tx.Model(&model.DayTaskRecord{}).Where("date_iso = ?", record.DateISO).Count(&count).Error; err != nil {
			return fmt.Errorf("check snapshots: %w", err)
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("insert day record: %w", err)
		}
		if len(snapshots) > 0 {
			if err := tx.Create(&snapshots).Error; err != nil {
				return fmt.Errorf("insert snapshots: %w", err)
			}
		}
		written = true
		return nil
	})
	return written, err
}

// DayRecordByDate returns the summary for one date, or nil when the date
// has not been finalized.
func (r *HistoryRepository) DayRecordByDate(ctx context.Context, dateISO string) (*model.DayRecord, error) {
	var record model.DayRecord
	err := r.db.WithContext(ctx).Where("date_iso = ?", dateISO).First(&record).Error
	switch {
	case err == nil:
		return &record, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find day record: %w", err)
	}
}

// DayRecordsBetween returns summaries for dates in [fromISO, toISO],
// ascending.
func (r *HistoryRepository) DayRecordsBetween(ctx context.Context, fromISO, toISO string) ([]model.DayRecord, error) {
	var records []model.DayRecord
	if err := r.db.WithContext(ctx).
		Where("date_iso >= ? AND date_iso <= ?", fromISO, toISO).
		Order("date_iso ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SnapshotsForDate returns the per-template snapshot rows of one finalized
// date, ordered by start time.
func (r *HistoryRepository) SnapshotsForDate(ctx context.Context, dateISO string) ([]model.DayTaskRecord, error) {
	var snapshots []model.DayTaskRecord
	if err := r.db.WithContext(ctx).Where("date_iso = ?", dateISO).
		Order("start ASC, id ASC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}

// SnapshotsForTemplate returns a template's finalized history, newest first.
func (r *HistoryRepository) SnapshotsForTemplate(ctx context.Context, taskID uint) ([]model.DayTaskRecord, error) {
	var snapshots []model.DayTaskRecord
	if err := r.db.WithContext(ctx).Where("task_id = ?", taskID).
		Order("date_iso DESC").
		Find(&snapshots).Error; err != nil {
		return nil, err
	}
	return snapshots, nil
}
