package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/emmyjay256/weekday-planner/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "planner.db"), zap.NewNop())
	require.NoError(t, err)
	return db
}

func mustParse(t *testing.T, dateISO string) time.Time {
	t.Helper()
	ts, err := model.ParseDateISO(dateISO, time.UTC)
	require.NoError(t, err)
	return ts
}
