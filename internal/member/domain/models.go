package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Member is one roster row. Plan is the denormalized pricing key the billing
// subsystem reads and, on reconciliation, writes back.
type Member struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	Code          string       `gorm:"not null;uniqueIndex" json:"code"`
	FirstName     string       `gorm:"not null" json:"first_name"`
	LastName      string       `gorm:"not null" json:"last_name"`
	DocumentID    string       `gorm:"" json:"document_id,omitempty"`
	BirthDate     *time.Time   `gorm:"" json:"birth_date,omitempty"`
	Guardian      string       `gorm:"" json:"guardian,omitempty"`
	WhatsApp      string       `gorm:"" json:"whatsapp,omitempty"`
	Email         string       `gorm:"" json:"email,omitempty"`
	Site          string       `gorm:"not null;index" json:"site"`
	Plan          string       `gorm:"not null" json:"plan"`
	Notes         string       `gorm:"" json:"notes,omitempty"`
	Active        bool         `gorm:"not null;default:true;index" json:"active"`
	ShirtSize     string       `gorm:"" json:"shirt_size,omitempty"`
	TrainingGroup string       `gorm:"index" json:"training_group,omitempty"`
	WeightKg      float64      `gorm:"" json:"weight_kg,omitempty"`
	HeightCm      float64      `gorm:"" json:"height_cm,omitempty"`
	EnrolledAt    time.Time    `gorm:"not null" json:"enrolled_at"`
	CreatedBy     string       `gorm:"not null" json:"created_by"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DisplayName is the denormalized name stamped onto payment records.
func (m Member) DisplayName() string {
	return strings.TrimSpace(m.FirstName + " " + m.LastName)
}

// Age derives the member's age at the given date; -1 when unknown.
func (m Member) Age(at time.Time) int {
	if m.BirthDate == nil {
		return -1
	}
	birth := *m.BirthDate
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
