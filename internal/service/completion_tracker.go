package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/emmyjay256/weekday-planner/internal/model"
	"github.com/emmyjay256/weekday-planner/internal/repository"
)

// CompletionTracker mutates a template's completion state for a date. The
// template keeps a single most-recent marker for live views; every
// completion is additionally journaled to the completion log so finalizing
// older dates still sees it.
type CompletionTracker struct {
	templates   *repository.TemplateRepository
	completions *repository.CompletionLogRepository
	feed        *TemplateFeed
	logger      *zap.Logger

	// Now returns the current wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func NewCompletionTracker(templates *repository.TemplateRepository, completions *repository.CompletionLogRepository, feed *TemplateFeed, logger *zap.Logger) *CompletionTracker {
	return &CompletionTracker{
		templates:   templates,
		completions: completions,
		feed:        feed,
		logger:      logger.Named("completion_tracker"),
		Now:         time.Now,
	}
}

// MarkCompleted records the template as done on the given date. Store
// failures propagate unchanged.
func (t *CompletionTracker) MarkCompleted(ctx context.Context, template *model.TaskTemplate, dateISO string) error {
	completedAt := t.Now()
	template.LastCompletedDate = &dateISO
	template.CompletedAt = &completedAt

	if err := t.templates.Save(ctx, template); err != nil {
		return err
	}
	if err := t.completions.Log(ctx, template.ID, dateISO, completedAt); err != nil {
		return err
	}

	t.logger.Debug("template completed",
		zap.Uint("template_id", template.ID),
		zap.String("date", dateISO))
	t.feed.Publish(TemplateEvent{Kind: CompletionChanged, TemplateID: template.ID, Weekday: template.Weekday})
	return nil
}

// MarkIncomplete clears the template's completion marker and removes today's
// log entry. Entries for earlier dates stay recorded; un-completing today
// must not rewrite already-finalized history.
func (t *CompletionTracker) MarkIncomplete(ctx context.Context, template *model.TaskTemplate) error {
	todayISO := model.DateISO(t.Now())

	template.LastCompletedDate = nil
	template.CompletedAt = nil

	if err := t.templates.Save(ctx, template); err != nil {
		return err
	}
	if err := t.completions.Remove(ctx, template.ID, todayISO); err != nil {
		return err
	}

	t.logger.Debug("template completion cleared",
		zap.Uint("template_id", template.ID))
	t.feed.Publish(TemplateEvent{Kind: CompletionChanged, TemplateID: template.ID, Weekday: template.Weekday})
	return nil
}
