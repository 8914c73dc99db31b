package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type ListFilter struct {
	EntityID string
	Action   string
	Actor    string
	StartAt  *time.Time
	EndAt    *time.Time
	Limit    int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditLog) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*AuditLog, error)
}
