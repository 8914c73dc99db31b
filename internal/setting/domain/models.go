package domain

import "time"

// Setting is one key/value configuration row.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	UpdatedBy string    `gorm:"not null" json:"updated_by"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

const (
	// KeyCutoffDay holds the day-of-month after which new recurring charges
	// roll into the next calendar month.
	KeyCutoffDay = "billing.cutoff_day"
)
