package model

import "time"

// CompletionEntry is one row of the append-only completion log. Unlike the
// template's single completion marker, the log keeps every (template, date)
// completion, so finalizing an older date still sees completions that the
// marker has since moved past.
type CompletionEntry struct {
	ID          uint   `gorm:"primaryKey"`
	TaskID      uint   `gorm:"index:idx_completion_task;uniqueIndex:idx_completion_task_date,priority:1"`
	DateISO     string `gorm:"column:date_iso;index:idx_completion_date;uniqueIndex:idx_completion_task_date,priority:2"`
	CompletedAt time.Time
}

func (CompletionEntry) TableName() string { return "completion_log" }
