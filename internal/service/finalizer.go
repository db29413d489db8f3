package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/emmyjay256/weekday-planner/internal/model"
	"github.com/emmyjay256/weekday-planner/internal/repository"
)

// DayFinalizer walks every calendar date between the stored checkpoint and
// today, freezing each into an immutable DayRecord plus per-template
// snapshot rows, then advances the checkpoint. Today itself is never
// finalized; it is still in progress.
type DayFinalizer struct {
	templates   *repository.TemplateRepository
	history     *repository.HistoryRepository
	checkpoint  *repository.CheckpointRepository
	completions *repository.CompletionLogRepository
	logger      *zap.Logger
	group       singleflight.Group

	// Now returns the current wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func NewDayFinalizer(
	templates *repository.TemplateRepository,
	history *repository.HistoryRepository,
	checkpoint *repository.CheckpointRepository,
	completions *repository.CompletionLogRepository,
	logger *zap.Logger,
) *DayFinalizer {
	return &DayFinalizer{
		templates:   templates,
		history:     history,
		checkpoint:  checkpoint,
		completions: completions,
		logger:      logger.Named("finalizer"),
		Now:         time.Now,
	}
}

// Run executes one backfill pass. Concurrent calls collapse into a single
// pass; the checkpoint has exactly one writer at a time.
func (f *DayFinalizer) Run(ctx context.Context) error {
	_, err, _ := f.group.Do("finalize", func() (interface{}, error) {
		return nil, f.run(ctx)
	})
	return err
}

func (f *DayFinalizer) run(ctx context.Context) error {
	today := model.Midnight(f.Now())
	todayISO := model.DateISO(today)

	stored, err := f.checkpoint.Load(ctx)
	if err != nil {
		return err
	}

	// First ever run: set the checkpoint and reconstruct nothing. There is
	// no history to recover from before install.
	if stored == "" {
		f.logger.Info("no checkpoint, starting fresh", zap.String("today", todayISO))
		return f.checkpoint.Save(ctx, todayISO)
	}

	last, err := model.ParseDateISO(stored, today.Location())
	if err != nil {
		// Corrupt checkpoint: reset to today without attempting partial
		// reconstruction.
		f.logger.Warn("unparseable checkpoint, resetting",
			zap.String("stored", stored),
			zap.String("today", todayISO))
		return f.checkpoint.Save(ctx, todayISO)
	}

	if !last.Before(today) {
		return nil
	}

	// Finalize each date in [checkpoint, today), ascending. Interrupted
	// passes resume here on the next run: the checkpoint has not moved, and
	// finalizeDay skips every date already written.
	days := 0
	for d := last; d.Before(today); d = d.AddDate(0, 0, 1) {
		if err := f.finalizeDay(ctx, d); err != nil {
			return err
		}
		days++
	}

	if err := f.checkpoint.Save(ctx, todayISO); err != nil {
		return err
	}
	f.logger.Info("backfill complete",
		zap.Int("days", days),
		zap.String("from", stored),
		zap.String("through", todayISO))
	return nil
}

// finalizeDay freezes one calendar date. Idempotent: if the date already has
// a DayRecord or any snapshot rows, nothing is written.
func (f *DayFinalizer) finalizeDay(ctx context.Context, day time.Time) error {
	dateISO := model.DateISO(day)
	weekday := model.WeekdayOf(day)

	templates, err := f.templates.ListByWeekday(ctx, weekday)
	if err != nil {
		return err
	}
	logged, err := f.completions.CompletedOn(ctx, dateISO)
	if err != nil {
		return err
	}

	var totalMinutes, completedMinutes, missedMinutes int64
	snapshots := make([]model.DayTaskRecord, 0, len(templates))

	for _, t := range templates {
		duration := t.DurationMinutes()
		totalMinutes += duration

		// The log is authoritative; the template's single marker covers rows
		// written before the log existed.
		var completedAt *time.Time
		if at, ok := logged[t.ID]; ok {
			ts := at
			completedAt = &ts
		} else if t.CompletedOn(dateISO) {
			completedAt = t.CompletedAt
		}

		status := model.StatusMissed
		if completedAt != nil {
			status = model.StatusCompleted
			completedMinutes += duration
		} else {
			missedMinutes += duration
		}

		snapshots = append(snapshots, model.DayTaskRecord{
			DateISO:         dateISO,
			TaskID:          t.ID,
			Title:           t.Title,
			Category:        t.Category,
			Start:           t.Start,
			End:             t.End,
			DurationMinutes: duration,
			Status:          status,
			CompletedAt:     completedAt,
		})
	}

	percent := 0.0
	if totalMinutes > 0 {
		percent = float64(completedMinutes) / float64(totalMinutes)
		if percent < 0 {
			percent = 0
		}
		if percent > 1 {
			percent = 1
		}
	}

	record := &model.DayRecord{
		DateISO:          dateISO,
		Weekday:          weekday,
		TotalMinutes:     totalMinutes,
		CompletedMinutes: completedMinutes,
		MissedMinutes:    missedMinutes,
		Percent:          percent,
		CreatedAt:        f.Now(),
	}

	written, err := f.history.WriteDay(ctx, record, snapshots)
	if err != nil {
		return err
	}
	if written {
		f.logger.Info("day finalized",
			zap.String("date", dateISO),
			zap.Int64("total_minutes", totalMinutes),
			zap.Int64("completed_minutes", completedMinutes))
	} else {
		f.logger.Debug("day already finalized, skipping", zap.String("date", dateISO))
	}
	return nil
}
