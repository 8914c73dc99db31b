package domain

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	FindByConcept(ctx context.Context, db *gorm.DB, concept string) (*Tariff, error)
	List(ctx context.Context, db *gorm.DB) ([]*Tariff, error)
	Upsert(ctx context.Context, db *gorm.DB, tariff *Tariff) error
	ReplaceAll(ctx context.Context, db *gorm.DB, tariffs []*Tariff) error
}
