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
	"github.com/clubarqueros/clubops/internal/member/domain"
	"github.com/clubarqueros/clubops/internal/member/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc   domain.Service
	audit auditdomain.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Member{}, &auditdomain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()

	auditSvc := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})

	svc := New(Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)),
		Repo:  repository.Provide(),
		Audit: auditSvc,
	})

	return &fixture{svc: svc, audit: auditSvc}
}

func TestCreate_DefaultsAndCode(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	member, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Ana María",
		LastName:  "Álvarez",
		Site:      "Sede C1",
	})
	require.NoError(t, err)

	assert.True(t, member.Active)
	assert.Equal(t, "General", member.Plan)
	assert.Equal(t, "admin", member.CreatedBy)
	assert.True(t, strings.HasPrefix(member.Code, "ana-maria-alvarez-"), member.Code)
	assert.Equal(t, "Ana María Álvarez", member.DisplayName())
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, domain.CreateMemberRequest{LastName: "Solo", Site: "Sede C1"})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = f.svc.Create(ctx, domain.CreateMemberRequest{FirstName: "Ana", LastName: "Alvarez"})
	assert.ErrorIs(t, err, domain.ErrInvalidSite)
}

func TestUpdate_AuditsFieldDiff(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	member, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Ana", LastName: "Alvarez", Site: "Sede C1", Plan: "Cuota",
	})
	require.NoError(t, err)

	updated, err := f.svc.Update(ctx, domain.UpdateMemberRequest{
		ID:        member.ID.String(),
		FirstName: "Ana",
		LastName:  "Alvarez",
		Site:      "Sede Saa",
		Plan:      "Cuota Familiar",
		Active:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sede Saa", updated.Site)

	resp, err := f.audit.List(ctx, auditdomain.ListAuditLogRequest{
		EntityID: member.ID.String(),
		Action:   "member.update",
	})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
	assert.Contains(t, resp.AuditLogs[0].Detail, "site: Sede C1 -> Sede Saa")
	assert.Contains(t, resp.AuditLogs[0].Detail, "plan: Cuota -> Cuota Familiar")
}

func TestUpdate_NoChangesNoAuditEntry(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	member, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Ana", LastName: "Alvarez", Site: "Sede C1", Plan: "Cuota",
	})
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, domain.UpdateMemberRequest{
		ID:        member.ID.String(),
		FirstName: "Ana",
		LastName:  "Alvarez",
		Site:      "Sede C1",
		Plan:      "Cuota",
		Active:    true,
	})
	require.NoError(t, err)

	resp, err := f.audit.List(ctx, auditdomain.ListAuditLogRequest{
		EntityID: member.ID.String(),
		Action:   "member.update",
	})
	require.NoError(t, err)
	assert.Empty(t, resp.AuditLogs)
}

func TestDeactivateAndListActive(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	keep, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Ana", LastName: "Alvarez", Site: "Sede C1",
	})
	require.NoError(t, err)
	drop, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Bruno", LastName: "Benitez", Site: "Sede C1",
	})
	require.NoError(t, err)

	deactivated, err := f.svc.Deactivate(ctx, drop.ID.String())
	require.NoError(t, err)
	assert.False(t, deactivated.Active)

	active, err := f.svc.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, keep.ID, active[0].ID)

	// Deactivating twice is a no-op.
	again, err := f.svc.Deactivate(ctx, drop.ID.String())
	require.NoError(t, err)
	assert.False(t, again.Active)
}

func TestUpdatePlan(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	member, err := f.svc.Create(ctx, domain.CreateMemberRequest{
		FirstName: "Ana", LastName: "Alvarez", Site: "Sede C1", Plan: "Cuota",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.UpdatePlan(ctx, member.ID.String(), "Matrícula"))

	reread, err := f.svc.GetByID(ctx, member.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Matrícula", reread.Plan)

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	assert.ErrorIs(t, f.svc.UpdatePlan(ctx, node.Generate().String(), "Cuota"), domain.ErrNotFound)
}

func TestAge(t *testing.T) {
	birth := time.Date(2010, time.July, 1, 0, 0, 0, 0, time.UTC)
	member := domain.Member{BirthDate: &birth}

	assert.Equal(t, 13, member.Age(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 14, member.Age(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, domain.Member{}.Age(time.Now()))
}
