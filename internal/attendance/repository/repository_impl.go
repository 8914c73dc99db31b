package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/clubarqueros/clubops/internal/attendance/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, attendance *domain.Attendance) error {
	return db.WithContext(ctx).Create(attendance).Error
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.Attendance, error) {
	var attendances []*domain.Attendance
	stmt := db.WithContext(ctx).Model(&domain.Attendance{})
	if filter.MemberID != 0 {
		stmt = stmt.Where("member_id = ?", filter.MemberID)
	}
	if filter.Date != "" {
		stmt = stmt.Where("date = ?", filter.Date)
	}
	if filter.Site != "" {
		stmt = stmt.Where("site = ?", filter.Site)
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	err := stmt.Order("date desc, id desc").Limit(limit).Find(&attendances).Error
	if err != nil {
		return nil, err
	}
	return attendances, nil
}

func (r *repo) CountForMember(ctx context.Context, db *gorm.DB, memberID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).Model(&domain.Attendance{}).
		Where("member_id = ?", memberID).
		Count(&count).Error
	return count, err
}

func (r *repo) CountByGroup(ctx context.Context, db *gorm.DB, date string) ([]domain.GroupCount, error) {
	var counts []domain.GroupCount
	err := db.WithContext(ctx).Model(&domain.Attendance{}).
		Select("site, shift, COUNT(*) AS count").
		Where("date = ?", date).
		Group("site").Group("shift").
		Order("site asc, shift asc").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
