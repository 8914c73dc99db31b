package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Status is the payment record lifecycle state. The machine is
// pending -> confirmed, with confirmed terminal; there is no reverse edge.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
)

// PaymentRecord is one row in the append-only debt/payment ledger. Records
// are never deleted; a confirmed record is immutable.
type PaymentRecord struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	MemberID      snowflake.ID `gorm:"not null;index" json:"member_id"`
	MemberName    string       `gorm:"not null" json:"member_name"`
	Amount        int64        `gorm:"not null" json:"amount"`
	Concept       string       `gorm:"not null" json:"concept"`
	Method        *string      `gorm:"" json:"method,omitempty"`
	Note          string       `gorm:"" json:"note,omitempty"`
	Status        Status       `gorm:"not null;index" json:"status"`
	Period        string       `gorm:"not null;index" json:"period"`
	Recurring     bool         `gorm:"not null;default:false" json:"recurring"`
	RecordedBy    string       `gorm:"not null" json:"recorded_by"`
	SettledBy     string       `gorm:"" json:"settled_by,omitempty"`
	SettledAt     *time.Time   `gorm:"" json:"settled_at,omitempty"`
	ReceiptNumber string       `gorm:"" json:"receipt_number,omitempty"`
	CreatedAt     time.Time    `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (r PaymentRecord) IsSettled() bool {
	return r.Status == StatusConfirmed
}

// ConceptSummary is one aggregation bucket of the collections report.
type ConceptSummary struct {
	Concept string `json:"concept"`
	Total   int64  `json:"total"`
	Count   int64  `json:"count"`
}
