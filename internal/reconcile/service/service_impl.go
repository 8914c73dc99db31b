package service

import (
	"context"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/clock"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	obsmetrics "github.com/clubarqueros/clubops/internal/observability/metrics"
	"github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Clock   clock.Clock
	Ledger  ledgerdomain.Repository
	Members memberdomain.Service
	Audit   auditdomain.Service
	Metrics *obsmetrics.Metrics `optional:"true"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	clock   clock.Clock
	ledger  ledgerdomain.Repository
	members memberdomain.Service
	audit   auditdomain.Service
	metrics *obsmetrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("reconcile.service"),
		clock:   p.Clock,
		ledger:  p.Ledger,
		members: p.Members,
		audit:   p.Audit,
		metrics: p.Metrics,
	}
}

// Settle confirms a pending debt, applying amount/concept/method/note edits
// and propagating a changed concept to the member's stored plan.
//
// The debt update and the plan update are two writes with no transaction
// spanning them; they are kept adjacent and the audit entry records what
// changed so a crash in between can be reconciled by hand.
func (s *Service) Settle(ctx context.Context, req domain.SettleRequest) (domain.Receipt, error) {
	method := strings.TrimSpace(req.Method)
	if method == "" {
		return domain.Receipt{}, domain.ErrInvalidMethod
	}

	debtID, err := snowflake.ParseString(strings.TrimSpace(req.DebtID))
	if err != nil || debtID == 0 {
		return domain.Receipt{}, domain.ErrNotFound
	}

	record, err := s.ledger.FindByID(ctx, s.db, debtID)
	if err != nil {
		return domain.Receipt{}, err
	}
	if record == nil {
		return domain.Receipt{}, domain.ErrNotFound
	}
	if record.IsSettled() {
		return domain.Receipt{}, domain.ErrAlreadySettled
	}

	actor := actorcontext.ActorFromContext(ctx)
	now := s.clock.Now()

	updated := *record
	changes := []auditdomain.FieldChange{
		{Field: "status", Old: string(record.Status), New: string(ledgerdomain.StatusConfirmed)},
	}

	if req.NewAmount != nil && *req.NewAmount != record.Amount {
		if *req.NewAmount <= 0 {
			return domain.Receipt{}, domain.ErrInvalidAmount
		}
		changes = append(changes, auditdomain.FieldChange{
			Field: "amount",
			Old:   strconv.FormatInt(record.Amount, 10),
			New:   strconv.FormatInt(*req.NewAmount, 10),
		})
		updated.Amount = *req.NewAmount
	}

	if req.NewConcept != nil {
		concept := strings.TrimSpace(*req.NewConcept)
		if concept != "" && concept != record.Concept {
			changes = append(changes, auditdomain.FieldChange{
				Field: "concept",
				Old:   record.Concept,
				New:   concept,
			})
			updated.Concept = concept
		}
	}

	oldMethod := ""
	if record.Method != nil {
		oldMethod = *record.Method
	}
	if oldMethod != method {
		changes = append(changes, auditdomain.FieldChange{Field: "method", Old: oldMethod, New: method})
	}
	updated.Method = &method

	if req.Note != nil {
		updated.Note = *req.Note
	}

	updated.Status = ledgerdomain.StatusConfirmed
	updated.SettledBy = actor
	updated.SettledAt = &now
	updated.ReceiptNumber = ulid.Make().String()
	updated.UpdatedAt = now

	if err := s.ledger.Update(ctx, s.db, &updated); err != nil {
		return domain.Receipt{}, err
	}

	if err := s.propagatePlan(ctx, updated, actor); err != nil {
		// The debt is confirmed already; surface the failure so the
		// operator fixes the plan by hand, guided by the audit trail.
		s.log.Error("plan propagation failed after settlement",
			zap.String("debt_id", updated.ID.String()),
			zap.String("member_id", updated.MemberID.String()),
			zap.String("concept", updated.Concept),
			zap.Error(err),
		)
		return domain.Receipt{}, err
	}

	s.audit.RecordChanges(ctx, updated.ID.String(), "payment.settle", actor, changes)
	s.metrics.RecordPaymentSettled(ctx, method)

	return domain.Receipt{
		Number:     updated.ReceiptNumber,
		Date:       now,
		MemberName: updated.MemberName,
		Concept:    updated.Concept,
		Amount:     updated.Amount,
		Method:     method,
		Period:     updated.Period,
		Note:       updated.Note,
	}, nil
}

// propagatePlan keeps the member's stored plan in sync with the settled
// concept. Equal concepts leave the member untouched, no write, no audit.
func (s *Service) propagatePlan(ctx context.Context, record ledgerdomain.PaymentRecord, actor string) error {
	member, err := s.members.GetByID(ctx, record.MemberID.String())
	if err != nil {
		if err == memberdomain.ErrNotFound {
			// The debt outlived its member; nothing to sync.
			s.log.Warn("settled debt references missing member",
				zap.String("debt_id", record.ID.String()),
				zap.String("member_id", record.MemberID.String()),
			)
			return nil
		}
		return err
	}

	if member.Plan == record.Concept {
		return nil
	}

	if err := s.members.UpdatePlan(ctx, member.ID.String(), record.Concept); err != nil {
		return err
	}

	s.audit.RecordChanges(ctx, member.ID.String(), "member.plan_sync", actor, []auditdomain.FieldChange{
		{Field: "plan", Old: member.Plan, New: record.Concept},
	})
	return nil
}
