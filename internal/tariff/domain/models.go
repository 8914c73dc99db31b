package domain

import "time"

// Tariff maps a plan/concept name to its price in whole pesos.
type Tariff struct {
	Concept   string    `gorm:"primaryKey;size:128" json:"concept"`
	Price     int64     `gorm:"not null" json:"price"`
	UpdatedBy string    `gorm:"not null" json:"updated_by"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
