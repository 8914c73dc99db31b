package debtrun

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/billingperiod"
	"github.com/clubarqueros/clubops/internal/clock"
	"github.com/clubarqueros/clubops/internal/config"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	obsmetrics "github.com/clubarqueros/clubops/internal/observability/metrics"
	tariffdomain "github.com/clubarqueros/clubops/internal/tariff/domain"
	"github.com/clubarqueros/clubops/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Report describes the outcome of one generation run. Written counts what
// actually landed in the store; a run that fails midway still reports the
// records it managed to append.
type Report struct {
	Period   string `json:"period"`
	Eligible int    `json:"eligible"`
	Written  int    `json:"written"`
	Skipped  int    `json:"skipped"`
}

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Members  memberdomain.Service
	Ledger   ledgerdomain.Repository
	Tariffs  tariffdomain.Service
	Resolver *billingperiod.Resolver
	Billing  *config.BillingConfigHolder
	Audit    auditdomain.Service
	Metrics  *obsmetrics.Metrics `optional:"true"`
}

// Generator appends one pending recurring-charge record per active member
// that has none for the period yet.
//
// Two generators racing on the same period can still double-bill: the store
// gives read-then-write semantics only. The unique index on
// (member_id, period) for recurring rows turns that race into a skipped
// duplicate-key insert where the backend enforces partial indexes; without
// it the race stands, as it did in the spreadsheet this replaces.
type Generator struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	members  memberdomain.Service
	ledger   ledgerdomain.Repository
	tariffs  tariffdomain.Service
	resolver *billingperiod.Resolver
	billing  *config.BillingConfigHolder
	audit    auditdomain.Service
	metrics  *obsmetrics.Metrics
}

func New(p Params) *Generator {
	return &Generator{
		db:       p.DB,
		log:      p.Log.Named("debtrun.generator"),
		genID:    p.GenID,
		clock:    p.Clock,
		members:  p.Members,
		ledger:   p.Ledger,
		tariffs:  p.Tariffs,
		resolver: p.Resolver,
		billing:  p.Billing,
		audit:    p.Audit,
		metrics:  p.Metrics,
	}
}

// GenerateForPeriod runs the debt generation for the given period label, or
// for the currently open period when the label is empty.
//
// The run is idempotent against visible state: members already holding a
// recurring record for the period, settled or not, are excluded before any
// write. Appends happen one record at a time so a failure partway leaves
// the written prefix standing; the returned Report carries the real count
// alongside the error.
func (g *Generator) GenerateForPeriod(ctx context.Context, periodLabel string) (Report, error) {
	periodLabel = strings.TrimSpace(periodLabel)
	if periodLabel == "" {
		current, err := g.resolver.Current(ctx)
		if err != nil {
			return Report{}, err
		}
		periodLabel = current.Label()
	} else if _, ok := billingperiod.ParseLabel(periodLabel); !ok {
		return Report{}, ledgerdomain.ErrInvalidPeriod
	}

	report := Report{Period: periodLabel}

	active, err := g.members.ListActive(ctx)
	if err != nil {
		return report, err
	}

	billedIDs, err := g.ledger.RecurringMemberIDsForPeriod(ctx, g.db, periodLabel)
	if err != nil {
		return report, err
	}
	billed := make(map[snowflake.ID]struct{}, len(billedIDs))
	for _, id := range billedIDs {
		billed[id] = struct{}{}
	}

	systemUser := g.billing.Get().SystemUser
	now := g.clock.Now()

	for _, member := range active {
		if _, ok := billed[member.ID]; ok {
			report.Skipped++
			continue
		}
		report.Eligible++

		record := ledgerdomain.PaymentRecord{
			ID:         g.genID.Generate(),
			MemberID:   member.ID,
			MemberName: member.DisplayName(),
			Amount:     g.tariffs.PriceOrDefault(ctx, member.Plan),
			Concept:    member.Plan,
			Status:     ledgerdomain.StatusPending,
			Period:     periodLabel,
			Recurring:  true,
			RecordedBy: systemUser,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		if err := g.ledger.Insert(ctx, g.db, &record); err != nil {
			if db.IsDuplicateKeyErr(err) {
				// Another run got there first; their record stands.
				report.Skipped++
				continue
			}
			g.log.Error("debt generation stopped partway",
				zap.String("period", periodLabel),
				zap.Int("written", report.Written),
				zap.Error(err),
			)
			g.finishRun(ctx, report, systemUser)
			return report, err
		}
		report.Written++
	}

	g.finishRun(ctx, report, systemUser)
	return report, nil
}

func (g *Generator) finishRun(ctx context.Context, report Report, systemUser string) {
	g.metrics.RecordDebtsGenerated(ctx, report.Period, report.Written)
	if report.Written == 0 {
		return
	}
	g.audit.Record(ctx, report.Period, "debt.generate", "", systemUser, map[string]any{
		"period":  report.Period,
		"written": report.Written,
		"skipped": report.Skipped,
	})
	g.log.Info("debt generation finished",
		zap.String("period", report.Period),
		zap.Int("written", report.Written),
		zap.Int("skipped", report.Skipped),
	)
}

var Module = fx.Module("debtrun",
	fx.Provide(New),
)
