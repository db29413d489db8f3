// Package planner is the upward interface presentation code talks to:
// observe a weekday's templates, edit them, toggle completion, trigger the
// launch-time finalizer, and read today's progress.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/emmyjay256/weekday-planner/internal/model"
	"github.com/emmyjay256/weekday-planner/internal/repository"
	"github.com/emmyjay256/weekday-planner/internal/service"
)

// TemplateInput carries the user-editable fields of a template.
type TemplateInput struct {
	Title    string
	Weekday  int
	Start    model.TimeOfDay
	End      model.TimeOfDay
	Category model.Category
}

// Planner wires the repositories and services behind a single facade.
type Planner struct {
	templates *repository.TemplateRepository
	history   *repository.HistoryRepository
	tracker   *service.CompletionTracker
	finalizer *service.DayFinalizer
	progress  *service.ProgressCalculator
	feed      *service.TemplateFeed
	logger    *zap.Logger

	// Now returns the current wall-clock time; defaults to time.Now.
	Now func() time.Time
}

func New(
	templates *repository.TemplateRepository,
	history *repository.HistoryRepository,
	tracker *service.CompletionTracker,
	finalizer *service.DayFinalizer,
	progress *service.ProgressCalculator,
	feed *service.TemplateFeed,
	logger *zap.Logger,
) *Planner {
	return &Planner{
		templates: templates,
		history:   history,
		tracker:   tracker,
		finalizer: finalizer,
		progress:  progress,
		feed:      feed,
		logger:    logger.Named("planner"),
		Now:       time.Now,
	}
}

func validateInput(input *TemplateInput) error {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return fmt.Errorf("title is required")
	}
	if input.Weekday < 1 || input.Weekday > 7 {
		return fmt.Errorf("weekday must be 1..7, got %d", input.Weekday)
	}
	if input.Category == "" {
		input.Category = model.CategoryProject
	}
	if !input.Category.Valid() {
		return fmt.Errorf("unknown category %q", input.Category)
	}
	return nil
}

// AddTemplate creates a new recurring slot.
func (p *Planner) AddTemplate(ctx context.Context, input TemplateInput) (*model.TaskTemplate, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	template := model.TaskTemplate{
		Title:    input.Title,
		Weekday:  input.Weekday,
		Start:    input.Start,
		End:      input.End,
		Category: input.Category,
	}
	if err := p.templates.Create(ctx, &template); err != nil {
		return nil, err
	}

	p.feed.Publish(service.TemplateEvent{Kind: service.TemplateCreated, TemplateID: template.ID, Weekday: template.Weekday})
	return &template, nil
}

// UpdateTemplate rewrites an existing slot's editable fields. Completion
// state is untouched; finalized history keeps its frozen snapshot values.
func (p *Planner) UpdateTemplate(ctx context.Context, id uint, input TemplateInput) (*model.TaskTemplate, error) {
	if err := validateInput(&input); err != nil {
		return nil, err
	}

	template, err := p.templates.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldWeekday := template.Weekday
	template.Title = input.Title
	template.Weekday = input.Weekday
	template.Start = input.Start
	template.End = input.End
	template.Category = input.Category
	if err := p.templates.Save(ctx, template); err != nil {
		return nil, err
	}

	p.feed.Publish(service.TemplateEvent{Kind: service.TemplateUpdated, TemplateID: template.ID, Weekday: template.Weekday})
	if oldWeekday != template.Weekday {
		p.feed.Publish(service.TemplateEvent{Kind: service.TemplateUpdated, TemplateID: template.ID, Weekday: oldWeekday})
	}
	return template, nil
}

// DeleteTemplate removes a slot. Snapshot rows referencing it stay intact.
func (p *Planner) DeleteTemplate(ctx context.Context, id uint) error {
	template, err := p.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := p.templates.Delete(ctx, id); err != nil {
		return err
	}
	p.feed.Publish(service.TemplateEvent{Kind: service.TemplateDeleted, TemplateID: id, Weekday: template.Weekday})
	return nil
}

// Complete marks a template done for today.
func (p *Planner) Complete(ctx context.Context, id uint) error {
	template, err := p.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return p.tracker.MarkCompleted(ctx, template, model.DateISO(p.Now()))
}

// Uncomplete clears a template's completion marker.
func (p *Planner) Uncomplete(ctx context.Context, id uint) error {
	template, err := p.templates.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return p.tracker.MarkIncomplete(ctx, template)
}

// TodayProgress returns the live completion state of the current day.
func (p *Planner) TodayProgress(ctx context.Context) (*service.Progress, error) {
	return p.progress.Today(ctx)
}

// FinalizeOnLaunch runs one finalizer pass; call it once at process start.
func (p *Planner) FinalizeOnLaunch(ctx context.Context) error {
	return p.finalizer.Run(ctx)
}

// TemplatesForWeekday returns the slots of one 1..7 weekday.
func (p *Planner) TemplatesForWeekday(ctx context.Context, weekday int) ([]model.TaskTemplate, error) {
	if weekday < 1 || weekday > 7 {
		return nil, fmt.Errorf("weekday must be 1..7, got %d", weekday)
	}
	return p.templates.ListByWeekday(ctx, weekday)
}

// ObserveWeekday streams the weekday's template list: an initial snapshot,
// then a fresh list after every template mutation. The consumer re-derives
// from the store each time; stale intermediate lists may be skipped. The
// returned stop func ends the stream and closes the channel.
func (p *Planner) ObserveWeekday(ctx context.Context, weekday int) (<-chan []model.TaskTemplate, func(), error) {
	if weekday < 1 || weekday > 7 {
		return nil, nil, fmt.Errorf("weekday must be 1..7, got %d", weekday)
	}

	events, unsubscribe := p.feed.Subscribe(8)
	out := make(chan []model.TaskTemplate, 1)

	go func() {
		defer close(out)

		push := func() {
			list, err := p.templates.ListByWeekday(ctx, weekday)
			if err != nil {
				p.logger.Warn("observe requery failed",
					zap.Int("weekday", weekday),
					zap.Error(err))
				return
			}
			// Replace a pending unread snapshot rather than queue behind it.
			select {
			case <-out:
			default:
			}
			select {
			case out <- list:
			default:
			}
		}

		push()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				push()
			}
		}
	}()

	return out, unsubscribe, nil
}

// DayRecord returns the finalized summary for one date, nil if the date has
// not been finalized.
func (p *Planner) DayRecord(ctx context.Context, dateISO string) (*model.DayRecord, error) {
	return p.history.DayRecordByDate(ctx, dateISO)
}

// DayRecords returns finalized summaries for dates in [fromISO, toISO].
func (p *Planner) DayRecords(ctx context.Context, fromISO, toISO string) ([]model.DayRecord, error) {
	return p.history.DayRecordsBetween(ctx, fromISO, toISO)
}

// Snapshots returns the per-template rows of one finalized date.
func (p *Planner) Snapshots(ctx context.Context, dateISO string) ([]model.DayTaskRecord, error) {
	return p.history.SnapshotsForDate(ctx, dateISO)
}

// TemplateHistory returns a template's finalized rows, newest first.
func (p *Planner) TemplateHistory(ctx context.Context, id uint) ([]model.DayTaskRecord, error) {
	return p.history.SnapshotsForTemplate(ctx, id)
}
