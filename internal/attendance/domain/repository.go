package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListFilter struct {
	MemberID snowflake.ID
	Date     string
	Site     string
	Limit    int
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, attendance *Attendance) error
	List(ctx context.Context, db *gorm.DB, filter ListFilter) ([]*Attendance, error)
	CountForMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) (int64, error)
	CountByGroup(ctx context.Context, db *gorm.DB, date string) ([]GroupCount, error)
}
