package service

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emmyjay256/weekday-planner/internal/model"
	"github.com/emmyjay256/weekday-planner/internal/repository"
)

type testEnv struct {
	db          *gorm.DB
	templates   *repository.TemplateRepository
	history     *repository.HistoryRepository
	checkpoint  *repository.CheckpointRepository
	completions *repository.CompletionLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "planner.db"), zap.NewNop())
	require.NoError(t, err)
	return &testEnv{
		db:          db,
		templates:   repository.NewTemplateRepository(db),
		history:     repository.NewHistoryRepository(db),
		checkpoint:  repository.NewCheckpointRepository(db),
		completions: repository.NewCompletionLogRepository(db),
	}
}

func (e *testEnv) newFinalizer(t *testing.T, today time.Time) *DayFinalizer {
	t.Helper()
	f := NewDayFinalizer(e.templates, e.history, e.checkpoint, e.completions, zap.NewNop())
	f.Now = func() time.Time { return today }
	return f
}

func fixedDate(t *testing.T, dateISO string) time.Time {
	t.Helper()
	ts, err := model.ParseDateISO(dateISO, time.UTC)
	require.NoError(t, err)
	return ts
}
