package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/clubarqueros/clubops/internal/audit/domain"
	"github.com/clubarqueros/clubops/internal/audit/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newService(t *testing.T) domain.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
}

func TestRecordAndList(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	svc.Record(ctx, "42", "payment.settle", "Pago Validado", "conta", map[string]any{"amount": 15000})
	svc.Record(ctx, "43", "member.create", "enrolled Ana Alvarez", "admin", nil)

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{EntityID: "42"})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
	assert.Equal(t, "payment.settle", resp.AuditLogs[0].Action)
	assert.Equal(t, "conta", resp.AuditLogs[0].Actor)

	resp, err = svc.List(ctx, domain.ListAuditLogRequest{Action: "member.create"})
	require.NoError(t, err)
	assert.Len(t, resp.AuditLogs, 1)
}

func TestRecord_BlankActionDropped(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	svc.Record(ctx, "42", "  ", "detail", "admin", nil)

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{EntityID: "42"})
	require.NoError(t, err)
	assert.Empty(t, resp.AuditLogs)
}

func TestRecordChanges(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	svc.RecordChanges(ctx, "42", "payment.settle", "conta", []domain.FieldChange{
		{Field: "concept", Old: "Cuota", New: "Matrícula"},
		{Field: "amount", Old: "15000", New: "5000"},
	})

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{EntityID: "42"})
	require.NoError(t, err)
	require.Len(t, resp.AuditLogs, 1)
	assert.Equal(t, "concept: Cuota -> Matrícula | amount: 15000 -> 5000", resp.AuditLogs[0].Detail)
}

func TestRecordChanges_EmptyDiffEmitsNothing(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	svc.RecordChanges(ctx, "42", "payment.settle", "conta", nil)

	resp, err := svc.List(ctx, domain.ListAuditLogRequest{EntityID: "42"})
	require.NoError(t, err)
	assert.Empty(t, resp.AuditLogs)
}
