package model

import "time"

// DayTaskStatus is the finalized outcome of one template on one date.
type DayTaskStatus string

const (
	StatusCompleted DayTaskStatus = "completed"
	StatusMissed    DayTaskStatus = "missed"
)

// DayRecord is the immutable summary of one finalized calendar date.
// At most one row exists per date; once written it is never updated.
type DayRecord struct {
	DateISO          string `gorm:"primaryKey;column:date_iso"`
	Weekday          int
	TotalMinutes     int64
	CompletedMinutes int64
	MissedMinutes    int64
	Percent          float64
	CreatedAt        time.Time
}

func (DayRecord) TableName() string { return "day_records" }

// DayTaskRecord is one immutable snapshot row per (date, template) pair.
// The schedule fields are frozen copies so history survives template edits
// and deletes; TaskID is a reference only, not an ownership edge.
type DayTaskRecord struct {
	ID      uint   `gorm:"primaryKey"`
	DateISO string `gorm:"column:date_iso;index:idx_day_task_date;index:idx_day_task,priority:1"`
	TaskID  uint   `gorm:"index:idx_day_task_task;index:idx_day_task,priority:2"`

	Title           string
	Category        Category  `gorm:"type:text"`
	Start           TimeOfDay `gorm:"type:text"`
	End             TimeOfDay `gorm:"type:text"`
	DurationMinutes int64

	Status      DayTaskStatus
	CompletedAt *time.Time
}

func (DayTaskRecord) TableName() string { return "day_task_records" }
