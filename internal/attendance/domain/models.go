package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Attendance is one class check-in row.
type Attendance struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	MemberID   snowflake.ID `gorm:"not null;index" json:"member_id"`
	MemberName string       `gorm:"not null" json:"member_name"`
	Date       string       `gorm:"not null;index;size:10" json:"date"` // YYYY-MM-DD
	Site       string       `gorm:"not null;index" json:"site"`
	Shift      string       `gorm:"not null" json:"shift"`
	RecordedBy string       `gorm:"not null" json:"recorded_by"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// GroupCount is one bucket of the daily roll-up.
type GroupCount struct {
	Site  string `json:"site"`
	Shift string `json:"shift"`
	Count int64  `json:"count"`
}
