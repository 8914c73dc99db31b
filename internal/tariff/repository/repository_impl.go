package repository

import (
	"context"
	"errors"

	"github.com/clubarqueros/clubops/internal/tariff/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindByConcept(ctx context.Context, db *gorm.DB, concept string) (*domain.Tariff, error) {
	var tariff domain.Tariff
	err := db.WithContext(ctx).First(&tariff, "concept = ?", concept).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tariff, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]*domain.Tariff, error) {
	var tariffs []*domain.Tariff
	err := db.WithContext(ctx).Order("concept asc").Find(&tariffs).Error
	if err != nil {
		return nil, err
	}
	return tariffs, nil
}

func (r *repo) Upsert(ctx context.Context, db *gorm.DB, tariff *domain.Tariff) error {
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "concept"}},
		DoUpdates: clause.AssignmentColumns([]string{"price", "updated_by", "updated_at"}),
	}).Create(tariff).Error
}

// ReplaceAll swaps the whole table in one transaction, mirroring the bulk
// tariff editor.
func (r *repo) ReplaceAll(ctx context.Context, db *gorm.DB, tariffs []*domain.Tariff) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Tariff{}).Error; err != nil {
			return err
		}
		if len(tariffs) == 0 {
			return nil
		}
		return tx.Create(tariffs).Error
	})
}
