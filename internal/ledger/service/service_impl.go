package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/billingperiod"
	"github.com/clubarqueros/clubops/internal/clock"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/ledger/domain"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	obsmetrics "github.com/clubarqueros/clubops/internal/observability/metrics"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	Members  memberdomain.Service
	Tariffs  tariffdomain.Service
	Resolver *billingperiod.Resolver
	Billing  *config.BillingConfigHolder
	Audit    auditdomain.Service
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	members  memberdomain.Service
	tariffs  tariffdomain.Service
	resolver *billingperiod.Resolver
	billing  *config.BillingConfigHolder
	audit    auditdomain.Service
	metrics  *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("ledger.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		members:  p.Members,
		tariffs:  p.Tariffs,
		resolver: p.Resolver,
		billing:  p.Billing,
		audit:    p.Audit,
		metrics:  p.Metrics,
	}
}

func (s *Service) CreateCharge(ctx context.Context, req domain.CreateChargeRequest) (domain.PaymentRecord, error) {
	concept := strings.TrimSpace(req.Concept)
	if concept == "" {
		return domain.PaymentRecord{}, domain.ErrInvalidConcept
	}

	member, err := s.members.GetByID(ctx, req.MemberID)
	if err != nil {
		if err == memberdomain.ErrNotFound {
			return domain.PaymentRecord{}, domain.ErrNotFound
		}
		return domain.PaymentRecord{}, err
	}
	if !member.Active {
		return domain.PaymentRecord{}, domain.ErrMemberInactive
	}

	period := strings.TrimSpace(req.Period)
	if period == "" {
		current, err := s.resolver.Current(ctx)
		if err != nil {
			return domain.PaymentRecord{}, err
		}
		period = current.Label()
	} else if _, ok := billingperiod.ParseLabel(period); !ok {
		return domain.PaymentRecord{}, domain.ErrInvalidPeriod
	}

	amount := req.Amount
	if amount <= 0 {
		amount = s.tariffs.PriceOrDefault(ctx, concept)
	}

	status := domain.StatusPending
	var method *string
	var settledBy string
	if req.Confirmed {
		trimmed := strings.TrimSpace(req.Method)
		if trimmed == "" {
			return domain.PaymentRecord{}, domain.ErrInvalidMethod
		}
		status = domain.StatusConfirmed
		method = &trimmed
		settledBy = actorcontext.ActorFromContext(ctx)
	}

	now := s.clock.Now()
	record := domain.PaymentRecord{
		ID:         s.genID.Generate(),
		MemberID:   member.ID,
		MemberName: member.DisplayName(),
		Amount:     amount,
		Concept:    concept,
		Method:     method,
		Note:       req.Note,
		Status:     status,
		Period:     period,
		Recurring:  concept == s.billing.Get().RecurringConcept,
		RecordedBy: actorcontext.ActorFromContext(ctx),
		SettledBy:  settledBy,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.Confirmed {
		record.SettledAt = &now
	}

	if err := s.repo.Insert(ctx, s.db, &record); err != nil {
		return domain.PaymentRecord{}, err
	}

	s.metrics.RecordChargeCreated(ctx, concept)
	s.audit.Record(ctx, record.ID.String(), "charge.create", concept+" "+period, record.RecordedBy, map[string]any{
		"member_id": member.ID.String(),
		"amount":    amount,
		"status":    string(status),
		"period":    period,
	})
	return record, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.PaymentRecord, error) {
	recordID, err := s.parseID(id)
	if err != nil {
		return domain.PaymentRecord{}, err
	}

	record, err := s.repo.FindByID(ctx, s.db, recordID)
	if err != nil {
		return domain.PaymentRecord{}, err
	}
	if record == nil {
		return domain.PaymentRecord{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListChargeRequest) (domain.ListChargeResponse, error) {
	filter := domain.ListFilter{
		Period: strings.TrimSpace(req.Period),
		From:   req.From,
		To:     req.To,
		Limit:  req.Limit,
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filter.Status = domain.Status(status)
	}
	if memberID := strings.TrimSpace(req.MemberID); memberID != "" {
		id, err := s.parseID(memberID)
		if err != nil {
			return domain.ListChargeResponse{}, err
		}
		filter.MemberID = id
	}

	items, err := s.repo.List(ctx, s.db, filter)
	if err != nil {
		// Reads degrade to an empty view; losing a listing beats a crash.
		s.log.Warn("ledger list failed, returning empty view", zap.Error(err))
		return domain.ListChargeResponse{Records: []domain.PaymentRecord{}}, nil
	}

	records := make([]domain.PaymentRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}
	return domain.ListChargeResponse{Records: records}, nil
}

func (s *Service) Summary(ctx context.Context, req domain.SummaryRequest) (domain.SummaryResponse, error) {
	concepts, err := s.repo.SummaryByConcept(ctx, s.db, domain.SummaryFilter{
		Period: strings.TrimSpace(req.Period),
		From:   req.From,
		To:     req.To,
	})
	if err != nil {
		s.log.Warn("ledger summary failed, returning empty view", zap.Error(err))
		return domain.SummaryResponse{Concepts: []domain.ConceptSummary{}}, nil
	}

	resp := domain.SummaryResponse{Concepts: concepts}
	for _, c := range concepts {
		resp.Total += c.Total
		resp.Count += c.Count
	}
	return resp, nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
