package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDurationMinutes(t *testing.T) {
	tests := []struct {
		name  string
		start TimeOfDay
		end   TimeOfDay
		want  int64
	}{
		{name: "normal range", start: NewTimeOfDay(9, 0), end: NewTimeOfDay(10, 30), want: 90},
		{name: "zero range", start: NewTimeOfDay(9, 0), end: NewTimeOfDay(9, 0), want: 0},
		{name: "inverted range clamps to zero", start: NewTimeOfDay(18, 0), end: NewTimeOfDay(9, 0), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template := &TaskTemplate{Start: tt.start, End: tt.end}
			assert.Equal(t, tt.want, template.DurationMinutes())
		})
	}
}

func TestCompletedOn(t *testing.T) {
	date := "2026-02-16"
	template := &TaskTemplate{}
	assert.False(t, template.CompletedOn(date))

	template.LastCompletedDate = &date
	assert.True(t, template.CompletedOn(date))
	assert.False(t, template.CompletedOn("2026-02-17"))
}

func TestWeekdayOf(t *testing.T) {
	// 2026-02-16 is a Monday.
	monday := time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC)
	for i, want := range []int{1, 2, 3, 4, 5, 6, 7} {
		assert.Equal(t, want, WeekdayOf(monday.AddDate(0, 0, i)))
	}
}

func TestDateISO(t *testing.T) {
	ts := time.Date(2026, 2, 16, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-02-16", DateISO(ts))

	parsed, err := ParseDateISO("2026-02-16", time.UTC)
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC), parsed)

	_, err = ParseDateISO("not-a-date", time.UTC)
	assert.Error(t, err)
}
