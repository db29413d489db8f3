package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

func TestTemplateCRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(newTestDB(t))

	template := &model.TaskTemplate{
		Title:    "Morning run",
		Weekday:  1,
		Start:    model.NewTimeOfDay(7, 0),
		End:      model.NewTimeOfDay(7, 45),
		Category: model.CategoryHealth,
	}
	require.NoError(t, repo.Create(ctx, template))
	require.NotZero(t, template.ID)

	found, err := repo.FindByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning run", found.Title)
	assert.Equal(t, model.NewTimeOfDay(7, 0), found.Start)
	assert.Equal(t, model.CategoryHealth, found.Category)
	assert.Nil(t, found.LastCompletedDate)

	found.Title = "Evening run"
	require.NoError(t, repo.Save(ctx, found))
	again, err := repo.FindByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Equal(t, "Evening run", again.Title)

	require.NoError(t, repo.Delete(ctx, template.ID))
	_, err = repo.FindByID(ctx, template.ID)
	assert.Error(t, err)
}

func TestListByWeekdayOrdersByStart(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(newTestDB(t))

	late := &model.TaskTemplate{Title: "Late", Weekday: 3, Start: model.NewTimeOfDay(20, 0), End: model.NewTimeOfDay(21, 0), Category: model.CategoryPersonal}
	early := &model.TaskTemplate{Title: "Early", Weekday: 3, Start: model.NewTimeOfDay(6, 0), End: model.NewTimeOfDay(7, 0), Category: model.CategoryWork}
	otherDay := &model.TaskTemplate{Title: "Other", Weekday: 4, Start: model.NewTimeOfDay(9, 0), End: model.NewTimeOfDay(10, 0), Category: model.CategoryWork}
	for _, tmpl := range []*model.TaskTemplate{late, early, otherDay} {
		require.NoError(t, repo.Create(ctx, tmpl))
	}

	list, err := repo.ListByWeekday(ctx, 3)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Early", list[0].Title)
	assert.Equal(t, "Late", list[1].Title)

	empty, err := repo.ListByWeekday(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSavePersistsClearedMarker(t *testing.T) {
	ctx := context.Background()
	repo := NewTemplateRepository(newTestDB(t))

	date := "2026-02-16"
	completedAt := mustParse(t, date)
	template := &model.TaskTemplate{
		Title:             "Review",
		Weekday:           1,
		Start:             model.NewTimeOfDay(9, 0),
		End:               model.NewTimeOfDay(10, 0),
		Category:          model.CategoryWork,
		LastCompletedDate: &date,
		CompletedAt:       &completedAt,
	}
	require.NoError(t, repo.Create(ctx, template))

	template.LastCompletedDate = nil
	template.CompletedAt = nil
	require.NoError(t, repo.Save(ctx, template))

	found, err := repo.FindByID(ctx, template.ID)
	require.NoError(t, err)
	assert.Nil(t, found.LastCompletedDate)
	assert.Nil(t, found.CompletedAt)
}
