package seed

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/clubarqueros/clubops/internal/config"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"gorm.io/gorm"
)

const seedActor = "bootstrap"

// EnsureDefaults seeds the cutoff-day setting and the recurring tariff row
// on first startup so billing works before anyone touches configuration.
func EnsureDefaults(db *gorm.DB, billing config.BillingConfig) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureSetting(tx, settingdomain.KeyCutoffDay, strconv.Itoa(billing.CutoffDay)); err != nil {
			return err
		}
		return ensureTariff(tx, billing.RecurringConcept, billing.DefaultFee)
	})
}

func ensureSetting(tx *gorm.DB, key, value string) error {
	var existing settingdomain.Setting
	err := tx.First(&existing, "key = ?", key).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(&settingdomain.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: seedActor,
		UpdatedAt: time.Now().UTC(),
	}).Error
}

func ensureTariff(tx *gorm.DB, concept string, price int64) error {
	var existing tariffdomain.Tariff
	err := tx.First(&existing, "concept = ?", concept).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return tx.Create(&tariffdomain.Tariff{
		Concept:   concept,
		Price:     price,
		UpdatedBy: seedActor,
		UpdatedAt: time.Now().UTC(),
	}).Error
}
