package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	Site          string
	TrainingGroup string
	Plan          string
	Active        *bool
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *Member) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Member, error)
	FindActive(ctx context.Context, db *gorm.DB) ([]*Member, error)
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Member, error)
	Update(ctx context.Context, db *gorm.DB, member *Member) error
	UpdatePlan(ctx context.Context, db *gorm.DB, id snowflake.ID, plan string) error
}
