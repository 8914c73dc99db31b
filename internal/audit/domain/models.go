package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// AuditLog is one immutable trail entry. Detail carries the human-readable
// "field: old -> new" change list; Metadata keeps the structured copy.
type AuditLog struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	EntityID  string            `gorm:"not null;index" json:"entity_id"`
	Action    string            `gorm:"not null;index" json:"action"`
	Detail    string            `gorm:"not null" json:"detail"`
	Actor     string            `gorm:"not null" json:"actor"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// FieldChange is a single audited mutation.
type FieldChange struct {
	Field string
	Old   string
	New   string
}

func (c FieldChange) String() string {
	return c.Field + ": " + c.Old + " -> " + c.New
}
