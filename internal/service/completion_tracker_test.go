package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

func newTracker(t *testing.T, env *testEnv, now time.Time) (*CompletionTracker, *TemplateFeed) {
	t.Helper()
	feed := NewTemplateFeed(zap.NewNop())
	tracker := NewCompletionTracker(env.templates, env.completions, feed, zap.NewNop())
	tracker.Now = func() time.Time { return now }
	return tracker, feed
}

func TestMarkCompletedSetsMarkerAndLog(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	now := fixedDate(t, monday).Add(9 * time.Hour)
	tracker, feed := newTracker(t, env, now)

	events, unsubscribe := feed.Subscribe(1)
	defer unsubscribe()

	template := addTemplate(t, env, "Deep work", 1, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(10, 0))
	require.NoError(t, tracker.MarkCompleted(ctx, template, monday))

	found, err := env.templates.FindByID(ctx, template.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastCompletedDate)
	assert.Equal(t, monday, *found.LastCompletedDate)
	require.NotNil(t, found.CompletedAt)
	assert.Equal(t, now.Unix(), found.CompletedAt.Unix())

	done, err := env.completions.CompletedOn(ctx, monday)
	require.NoError(t, err)
	assert.Contains(t, done, template.ID)

	select {
	case event := <-events:
		assert.Equal(t, CompletionChanged, event.Kind)
		assert.Equal(t, template.ID, event.TemplateID)
	default:
		t.Fatal("expected a feed event")
	}
}

func TestMarkIncompleteClearsMarkerKeepsHistory(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	now := fixedDate(t, tuesday).Add(12 * time.Hour)
	tracker, _ := newTracker(t, env, now)

	template := addTemplate(t, env, "Deep work", 2, model.NewTimeOfDay(9, 0), model.NewTimeOfDay(10, 0))

	// Completed yesterday and again today.
	require.NoError(t, tracker.MarkCompleted(ctx, template, monday))
	require.NoError(t, tracker.MarkCompleted(ctx, template, tuesday))

	require.NoError(t, tracker.MarkIncomplete(ctx, template))

	found, err := env.templates.FindByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Nil(t, found.LastCompletedDate)
	assert.Nil(t, found.CompletedAt)

	// Today's log entry is gone; yesterday's survives.
	dates, err := env.completions.DatesForTask(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{monday}, dates)
}
