package model

import "time"

// TaskTemplate is a weekly-recurring schedule slot. Completion state is
// per calendar date, so the same template repeats every week.
type TaskTemplate struct {
	ID       uint `gorm:"primaryKey"`
	Title    string
	Weekday  int       `gorm:"index"` // 1..7, Monday=1
	Start    TimeOfDay `gorm:"type:text"`
	End      TimeOfDay `gorm:"type:text"`
	Category Category  `gorm:"type:text"`

	// Most recent date this template was marked done, ISO "YYYY-MM-DD".
	// Both fields are nil or both are set.
	LastCompletedDate *string
	CompletedAt       *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (TaskTemplate) TableName() string { return "tasks" }

// DurationMinutes returns the scheduled length of the slot, floored at zero
// for inverted ranges.
func (t *TaskTemplate) DurationMinutes() int64 {
	d := int64(t.End - t.Start)
	if d < 0 {
		return 0
	}
	return d
}

// CompletedOn reports whether the template's completion marker points at
// the given date.
func (t *TaskTemplate) CompletedOn(dateISO string) bool {
	return t.LastCompletedDate != nil && *t.LastCompletedDate == dateISO
}
