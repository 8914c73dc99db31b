package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	"github.com/clubarqueros/clubops/internal/attendance/domain"
	"github.com/clubarqueros/clubops/internal/attendance/repository"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	auditrepository "github.com/clubarqueros/clubops/internal/audit/repository"
	auditservice "github.com/clubarqueros/clubops/internal/audit/service"
	"github.com/clubarqueros/clubops/internal/clock"
	memberdomain "github.com/clubarqueros/clubops/internal/member/domain"
	memberrepository "github.com/clubarqueros/clubops/internal/member/repository"
	memberservice "github.com/clubarqueros/clubops/internal/member/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fixture struct {
	svc     domain.Service
	members memberdomain.Service
	clock   *clock.FakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Attendance{},
		&memberdomain.Member{},
		&auditdomain.AuditLog{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()
	fakeClock := clock.NewFakeClock(time.Date(2024, time.June, 10, 18, 0, 0, 0, time.UTC))

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

	svc := New(Params{
		DB:      db,
		Log:     logger,
		GenID:   node,
		Clock:   fakeClock,
		Repo:    repository.Provide(),
		Members: memberSvc,
	})

	return &fixture{svc: svc, members: memberSvc, clock: fakeClock}
}

func (f *fixture) addMember(t *testing.T, ctx context.Context, firstName string) memberdomain.Member {
	t.Helper()
	member, err := f.members.Create(ctx, memberdomain.CreateMemberRequest{
		FirstName: firstName,
		LastName:  "Prueba",
		Site:      "Sede C1",
	})
	require.NoError(t, err)
	return member
}

func TestRecord_DefaultsToToday(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "profe")

	member := f.addMember(t, ctx, "Ana")

	attendance, err := f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: member.ID.String(),
		Site:     "Sede C1",
		Shift:    "Tarde",
	})
	require.NoError(t, err)

	assert.Equal(t, "2024-06-10", attendance.Date)
	assert.Equal(t, "profe", attendance.RecordedBy)
	assert.Equal(t, member.DisplayName(), attendance.MemberName)
}

func TestRecord_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "profe")

	member := f.addMember(t, ctx, "Ana")

	_, err := f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: member.ID.String(),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSite)

	_, err = f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: member.ID.String(),
		Site:     "Sede C1",
		Date:     "10/06/2024",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: "garbage",
		Site:     "Sede C1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	inactive := f.addMember(t, ctx, "Bruno")
	_, err = f.members.Deactivate(ctx, inactive.ID.String())
	require.NoError(t, err)
	_, err = f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: inactive.ID.String(),
		Site:     "Sede C1",
	})
	assert.ErrorIs(t, err, domain.ErrMemberInactive)
}

func TestList_ByMemberWithTotal(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "profe")

	member := f.addMember(t, ctx, "Ana")
	other := f.addMember(t, ctx, "Bruno")

	for _, date := range []string{"2024-06-03", "2024-06-05", "2024-06-10"} {
		_, err := f.svc.Record(ctx, domain.RecordAttendanceRequest{
			MemberID: member.ID.String(), Site: "Sede C1", Shift: "Tarde", Date: date,
		})
		require.NoError(t, err)
	}
	_, err := f.svc.Record(ctx, domain.RecordAttendanceRequest{
		MemberID: other.ID.String(), Site: "Sede Saa", Shift: "Mañana",
	})
	require.NoError(t, err)

	resp, err := f.svc.List(ctx, domain.ListAttendanceRequest{MemberID: member.ID.String()})
	require.NoError(t, err)
	assert.Len(t, resp.Attendances, 3)
	assert.Equal(t, int64(3), resp.Total)
}

func TestToday_GroupsBySiteAndShift(t *testing.T) {
	f := newFixture(t)
	ctx := actorcontext.WithActor(context.Background(), "profe")

	for _, name := range []string{"Ana", "Bruno", "Carla"} {
		member := f.addMember(t, ctx, name)
		site := "Sede C1"
		if name == "Carla" {
			site = "Sede Saa"
		}
		_, err := f.svc.Record(ctx, domain.RecordAttendanceRequest{
			MemberID: member.ID.String(), Site: site, Shift: "Tarde",
		})
		require.NoError(t, err)
	}

	summary, err := f.svc.Today(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", summary.Date)
	assert.Equal(t, int64(3), summary.Present)
	require.Len(t, summary.Groups, 2)
}
