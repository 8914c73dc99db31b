package service

import (
	"context"
	"strings"
	"time"

	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/tariff/domain"
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
	Audit   auditdomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	repo    domain.Repository
	billing *config.BillingConfigHolder
	audit   auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("tariff.service"),
		repo:    p.Repo,
		billing: p.Billing,
		audit:   p.Audit,
	}
}

func (s *Service) PriceFor(ctx context.Context, concept string) (int64, error) {
	concept = strings.TrimSpace(concept)
	if concept == "" {
		return 0, domain.ErrInvalidConcept
	}

	tariff, err := s.repo.FindByConcept(ctx, s.db, concept)
	if err != nil {
		return 0, err
	}
	if tariff == nil {
		return 0, domain.ErrNotFound
	}
	return tariff.Price, nil
}

// PriceOrDefault is the lookup billing flows use: a missing tariff row or an
// unreachable store yields the baseline fee, never zero.
func (s *Service) PriceOrDefault(ctx context.Context, concept string) int64 {
	price, err := s.PriceFor(ctx, concept)
	if err != nil {
		def := s.billing.Get().DefaultFee
		s.log.Warn("tariff lookup fell back to default fee",
			zap.String("concept", concept),
			zap.Int64("default_fee", def),
			zap.Error(err),
		)
		return def
	}
	return price
}

func (s *Service) List(ctx context.Context) (domain.ListTariffResponse, error) {
	items, err := s.repo.List(ctx, s.db)
	if err != nil {
		return domain.ListTariffResponse{}, err
	}

	tariffs := make([]domain.Tariff, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		tariffs = append(tariffs, *item)
	}
	return domain.ListTariffResponse{Tariffs: tariffs}, nil
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertTariffRequest) (domain.Tariff, error) {
	tariff, err := s.buildTariff(ctx, req)
	if err != nil {
		return domain.Tariff{}, err
	}

	if err := s.repo.Upsert(ctx, s.db, &tariff); err != nil {
		return domain.Tariff{}, err
	}

	s.audit.Record(ctx, tariff.Concept, "tariff.upsert", "", tariff.UpdatedBy, map[string]any{
		"concept": tariff.Concept,
		"price":   tariff.Price,
	})
	return tariff, nil
}

func (s *Service) ReplaceAll(ctx context.Context, reqs []domain.UpsertTariffRequest) (domain.ListTariffResponse, error) {
	tariffs := make([]*domain.Tariff, 0, len(reqs))
	for _, req := range reqs {
		tariff, err := s.buildTariff(ctx, req)
		if err != nil {
			return domain.ListTariffResponse{}, err
		}
		tariffs = append(tariffs, &tariff)
	}

	if err := s.repo.ReplaceAll(ctx, s.db, tariffs); err != nil {
		return domain.ListTariffResponse{}, err
	}

	s.audit.Record(ctx, "tariffs", "tariff.replace_all", "", actorcontext.ActorFromContext(ctx), map[string]any{
		"count": len(tariffs),
	})
	return s.List(ctx)
}

func (s *Service) buildTariff(ctx context.Context, req domain.UpsertTariffRequest) (domain.Tariff, error) {
	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		return domain.Tariff{}, domain.ErrInvalidConcept
	}
	if req.Price <= 0 {
		return domain.Tariff{}, domain.ErrInvalidPrice
	}

	return domain.Tariff{
		Concept:   concept,
		Price:     req.Price,
		UpdatedBy: actorcontext.ActorFromContext(ctx),
		UpdatedAt: time.Now().UTC(),
	}, nil
}
