package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	auditrepository "github.com/clubarqueros/clubops/internal/audit/repository"
	auditservice "github.com/clubarqueros/clubops/internal/audit/service"
	"github.com/clubarqueros/clubops/internal/clock"
	ledgerdomain "github.com/clubarqueros/clubops/internal/ledger/domain"
	ledgerrepository "github.com/clubarqueros/clubops/internal/ledger/repository"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	memberrepository "github.com/clubarqueros/clubops/internal/member/repository"
	memberservice "github.com/clubarqueros/clubops/internal/member/service"
	"github.com/clubarqueros/clubops/internal/reconcile/domain"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	db      *gorm.DB
	node    *snowflake.Node
	clock   *clock.FakeClock
	members memberdomain.Service
	ledger  ledgerdomain.Repository
	audit   auditdomain.Service
	svc     domain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&memberdomain.Member{},
		&ledgerdomain.PaymentRecord{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	logger := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2024, time.June, 20, 15, 0, 0, 0, time.UTC))

	auditSvc := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})

	memberSvc := memberservice.New(memberservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Clock: fakeClock,
		Repo:  memberrepository.Provide(),
		Audit: auditSvc,
	})

	ledgerRepo := ledgerrepository.Provide()
	svc := New(Params{
		DB:      db,
		Log:     logger,
		Clock:   fakeClock,
		Ledger:  ledgerRepo,
		Members: memberSvc,
		Audit:   auditSvc,
	})

	return &fixture{
		db:      db,
		node:    node,
		clock:   fakeClock,
		members: memberSvc,
		ledger:  ledgerRepo,
		audit:   auditSvc,
		svc:     svc,
	}
}

func (f *fixture) addMember(t *testing.T, ctx context.Context, plan string) memberdomain.Member {
	t.Helper()
	member, err := f.members.Create(ctx, memberdomain.CreateMemberRequest{
		FirstName: "Ana",
		LastName:  "Alvarez",
		Site:      "Sede C1",
		Plan:      plan,
	})
	require.NoError(t, err)
	return member
}

func (f *fixture) addPendingDebt(t *testing.T, ctx context.Context, member memberdomain.Member, amount int64, concept string) ledgerdomain.PaymentRecord {
	t.Helper()
	now := f.clock.Now()
	record := ledgerdomain.PaymentRecord{
		ID:         f.node.Generate(),
		MemberID:   member.ID,
		MemberName: member.DisplayName(),
		Amount:     amount,
		Concept:    concept,
		Status:     ledgerdomain.StatusPending,
		Period:     "Julio 2024",
		Recurring:  true,
		RecordedBy: "system",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.ledger.Insert(ctx, f.db, &record))
	return record
}

func (f *fixture) auditEntries(t *testing.T, ctx context.Context, entityID string) []auditdomain.AuditLog {
	t.Helper()
	resp, err := f.audit.List(ctx, auditdomain.ListAuditLogRequest{EntityID: entityID})
	require.NoError(t, err)
	return resp.AuditLogs
}

func intPtr(v int64) *int64   { return &v }
func strPtr(v string) *string { return &v }

func TestSettle_ConfirmsAndPropagatesPlan(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	receipt, err := f.svc.Settle(ctx, domain.SettleRequest{
		DebtID:     debt.ID.String(),
		Method:     "Efectivo",
		NewAmount:  intPtr(5000),
		NewConcept: strPtr("Matrícula"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana Alvarez", receipt.MemberName)
	assert.Equal(t, "Matrícula", receipt.Concept)
	assert.Equal(t, int64(5000), receipt.Amount)
	assert.Equal(t, "Efectivo", receipt.Method)
	assert.Equal(t, "Julio 2024", receipt.Period)
	assert.NotEmpty(t, receipt.Number)

	stored, err := f.ledger.FindByID(ctx, f.db, debt.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, ledgerdomain.StatusConfirmed, stored.Status)
	assert.Equal(t, "Matrícula", stored.Concept)
	assert.Equal(t, int64(5000), stored.Amount)
	require.NotNil(t, stored.Method)
	assert.Equal(t, "Efectivo", *stored.Method)
	assert.Equal(t, "conta", stored.SettledBy)
	require.NotNil(t, stored.SettledAt)

	updated, err := f.members.GetByID(ctx, member.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Matrícula", updated.Plan)

	entries := f.auditEntries(t, ctx, debt.ID.String())
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Detail, "concept: Cuota -> Matrícula")
	assert.Contains(t, entries[0].Detail, "amount: 15000 -> 5000")
	assert.Contains(t, entries[0].Detail, "status: pending -> confirmed")
}

func TestSettle_SecondCallRejectedUnchanged(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	_, err := f.svc.Settle(ctx, domain.SettleRequest{DebtID: debt.ID.String(), Method: "Efectivo"})
	require.NoError(t, err)

	before, err := f.ledger.FindByID(ctx, f.db, debt.ID)
	require.NoError(t, err)

	_, err = f.svc.Settle(ctx, domain.SettleRequest{
		DebtID:    debt.ID.String(),
		Method:    "Transferencia",
		NewAmount: intPtr(999),
	})
	assert.ErrorIs(t, err, domain.ErrAlreadySettled)

	after, err := f.ledger.FindByID(ctx, f.db, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, *before, *after)
}

func TestSettle_SameConceptLeavesPlanUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	_, err := f.svc.Settle(ctx, domain.SettleRequest{
		DebtID:     debt.ID.String(),
		Method:     "Efectivo",
		NewConcept: strPtr("Cuota"),
	})
	require.NoError(t, err)

	updated, err := f.members.GetByID(ctx, member.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Cuota", updated.Plan)

	// No plan-sync entry: the only member entries are from enrollment.
	for _, entry := range f.auditEntries(t, ctx, member.ID.String()) {
		assert.NotEqual(t, "member.plan_sync", entry.Action)
	}
}

func TestSettle_UnknownDebt(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	_, err := f.svc.Settle(ctx, domain.SettleRequest{
		DebtID: f.node.Generate().String(),
		Method: "Efectivo",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.svc.Settle(ctx, domain.SettleRequest{DebtID: "garbage", Method: "Efectivo"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSettle_RequiresMethod(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	_, err := f.svc.Settle(ctx, domain.SettleRequest{DebtID: debt.ID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidMethod)

	stored, err := f.ledger.FindByID(ctx, f.db, debt.ID)
	require.NoError(t, err)
	assert.Equal(t, ledgerdomain.StatusPending, stored.Status)
}

func TestSettle_RejectsNonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	_, err := f.svc.Settle(ctx, domain.SettleRequest{
		DebtID:    debt.ID.String(),
		Method:    "Efectivo",
		NewAmount: intPtr(0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestReceiptFromRecord(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "conta")

	member := f.addMember(t, ctx, "Cuota")
	debt := f.addPendingDebt(t, ctx, member, 15000, "Cuota")

	_, ok := domain.ReceiptFromRecord(debt)
	assert.False(t, ok, "pending record has no receipt")

	settled, err := f.svc.Settle(ctx, domain.SettleRequest{DebtID: debt.ID.String(), Method: "Efectivo"})
	require.NoError(t, err)

	stored, err := f.ledger.FindByID(ctx, f.db, debt.ID)
	require.NoError(t, err)

	rebuilt, ok := domain.ReceiptFromRecord(*stored)
	require.True(t, ok)
	assert.Equal(t, settled.Number, rebuilt.Number)
	assert.Equal(t, settled.Amount, rebuilt.Amount)
	assert.Equal(t, settled.Method, rebuilt.Method)
}
