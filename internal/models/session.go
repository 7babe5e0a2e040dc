package models

import (
	"time"
)

// Category is the classification outcome for a foreground application.
type Category string

const (
	CategoryProductive Category = "productive"
	CategoryDistracted Category = "distracted"
	CategoryNeutral    Category = "neutral"
)

// FocusSession is one session-transition record. Rows are append-only:
// the tracker writes one whenever the classified category changes, and
// nothing ever updates or deletes them.
type FocusSession struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AppName   string    `gorm:"column:app_name;not null;index" json:"app_name"`
	Mode      Category  `gorm:"column:mode;not null" json:"mode"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
}

// TableName pins the canonical schema (the same table the pre-Go
// versions of this tool wrote).
func (FocusSession) TableName() string {
	return "focus_log"
}

// SessionView is a FocusSession paired with its derived duration, as
// returned by the query facade. Duration is the gap to the next newer
// record, or to "now" for the most recent one.
type SessionView struct {
	AppName  string        `json:"app_name"`
	Category Category      `json:"category"`
	Duration time.Duration `json:"duration"`
}

// SessionStats aggregates the most recent session history.
type SessionStats struct {
	TotalSessions   int     `json:"total_sessions"`
	TotalMinutes    float64 `json:"total_minutes"`
	ProductiveCount int     `json:"productive_count"`
	DistractedCount int     `json:"distracted_count"`
}
