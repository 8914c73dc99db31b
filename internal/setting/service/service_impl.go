package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/clubarqueros/clubops/internal/billingperiod"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/setting/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Repo    domain.Repository
	Billing *config.BillingConfigHolder
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	billing *config.BillingConfigHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("setting.service"),
		repo:    p.Repo,
		billing: p.Billing,
	}
}

// Get reads a setting, degrading to the default when the row is missing or
// the store is unreachable.
func (s *Service) Get(ctx context.Context, key, def string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return def
	}

	setting, err := s.repo.Get(ctx, s.db, key)
	if err != nil {
		s.log.Warn("setting read failed, using default",
			zap.String("key", key),
			zap.Error(err),
		)
		return def
	}
	if setting == nil {
		return def
	}
	return setting.Value
}

func (s *Service) Set(ctx context.Context, key, value, actor string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrInvalidKey
	}

	return s.repo.Upsert(ctx, s.db, &domain.Setting{
		Key:       key,
		Value:     value,
		UpdatedBy: strings.TrimSpace(actor),
		UpdatedAt: time.Now().UTC(),
	})
}

// CutoffDay returns the stored cutoff day, falling back to the file-backed
// billing policy when unset or unreadable.
func (s *Service) CutoffDay(ctx context.Context) int {
	def := s.billing.Get().CutoffDay

	raw := s.Get(ctx, domain.KeyCutoffDay, strconv.Itoa(def))
	day, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || billingperiod.ValidateCutoffDay(day) != nil {
		s.log.Warn("stored cutoff day is invalid, using default",
			zap.String("raw", raw),
			zap.Int("default", def),
		)
		return def
	}
	return day
}

func (s *Service) SetCutoffDay(ctx context.Context, day int, actor string) error {
	if err := billingperiod.ValidateCutoffDay(day); err != nil {
		return err
	}
	return s.Set(ctx, domain.KeyCutoffDay, strconv.Itoa(day), actor)
}
