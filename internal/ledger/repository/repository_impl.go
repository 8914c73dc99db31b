package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/clubarqueros/clubops/internal/ledger/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.PaymentRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.PaymentRecord, error) {
	var record domain.PaymentRecord
	err := db.WithContext(ctx).First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListFilter) ([]*domain.PaymentRecord, error) {
	var records []*domain.PaymentRecord
	stmt := db.WithContext(ctx).Model(&domain.PaymentRecord{})
	if filter.Period != "" {
		stmt = stmt.Where("period = ?", filter.Period)
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.MemberID != 0 {
		stmt = stmt.Where("member_id = ?", filter.MemberID)
	}
	if filter.From != nil {
		stmt = stmt.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		stmt = stmt.Where("created_at <= ?", filter.To.UTC())
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}

	err := stmt.Order("created_at desc, id desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) RecurringMemberIDsForPeriod(ctx context.Context, db *gorm.DB, period string) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := db.WithContext(ctx).Model(&domain.PaymentRecord{}).
		Where("period = ? AND recurring = ?", period, true).
		Distinct().
		Pluck("member_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, record *domain.PaymentRecord) error {
	return db.WithContext(ctx).Save(record).Error
}

func (r *repo) SummaryByConcept(ctx context.Context, db *gorm.DB, filter domain.SummaryFilter) ([]domain.ConceptSummary, error) {
	var summaries []domain.ConceptSummary
	stmt := db.WithContext(ctx).Model(&domain.PaymentRecord{}).
		Select("concept, SUM(amount) AS total, COUNT(*) AS count").
		Where("status = ?", domain.StatusConfirmed)
	if filter.Period != "" {
		stmt = stmt.Where("period = ?", filter.Period)
	}
	if filter.From != nil {
		stmt = stmt.Where("created_at >= ?", filter.From.UTC())
	}
	if filter.To != nil {
		stmt = stmt.Where("created_at <= ?", filter.To.UTC())
	}

	err := stmt.Group("concept").Order("total desc").Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
