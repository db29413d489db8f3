package model

import "time"

// Checkpoint is the single-row high-water mark of finalization progress:
// the last ISO date through which history has been written. It never moves
// backward.
type Checkpoint struct {
	ID               uint   `gorm:"primaryKey"`
	LastFinalizedISO string `gorm:"column:last_finalized_iso"`
	UpdatedAt        time.Time
}

func (Checkpoint) TableName() string { return "checkpoint" }
