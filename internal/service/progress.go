package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emmyjay256/weekday-planner/internal/model"
	"github.com/emmyjay256/weekday-planner/internal/repository"
)

// Progress is the live completion state of the current day. It is derived
// from mutable template state, never from finalized history.
type Progress struct {
	DateISO          string
	Weekday          int
	Active           []model.TaskTemplate
	Completed        []model.TaskTemplate
	TotalMinutes     int64
	CompletedMinutes int64
	Percent          float64
}

// ProgressCalculator recomputes today's completion percentage from template
// state. Callers re-invoke it on every template mutation.
type ProgressCalculator struct {
	templates *repository.TemplateRepository
	logger    *zap.Logger

	// Now returns the current wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func NewProgressCalculator(templates *repository.TemplateRepository, logger *zap.Logger) *ProgressCalculator {
	return &ProgressCalculator{
		templates: templates,
		logger:    logger.Named("progress"),
		Now:       time.Now,
	}
}

// Today splits today's templates into active and completed and computes the
// completed share of scheduled minutes, clamped to [0,1].
func (p *ProgressCalculator) Today(ctx context.Context) (*Progress, error) {
	now := p.Now()
	todayISO := model.DateISO(now)
	weekday := model.WeekdayOf(now)

	templates, err := p.templates.ListByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}

	progress := &Progress{
		DateISO: todayISO,
		Weekday: weekday,
	}

	for _, t := range templates {
		duration := t.DurationMinutes()
		progress.TotalMinutes += duration
		if t.CompletedOn(todayISO) {
			progress.Completed = append(progress.Completed, t)
			progress.CompletedMinutes += duration
		} else {
			progress.Active = append(progress.Active, t)
		}
	}

	total := progress.TotalMinutes
	if total < 1 {
		total = 1
	}
	progress.Percent = float64(progress.CompletedMinutes) / float64(total)
	if progress.Percent < 0 {
		progress.Percent = 0
	}
	if progress.Percent > 1 {
		progress.Percent = 1
	}

	p.logger.Debug("progress recomputed",
		zap.String("date", todayISO),
		zap.Int64("completed_minutes", progress.CompletedMinutes),
		zap.Int64("total_minutes", progress.TotalMinutes),
		zap.Float64("percent", progress.Percent))
	return progress, nil
}
