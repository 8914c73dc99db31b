package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	actorcontext "github.com/clubarqueros/clubops/internal/actorcontext"
	auditdomain "github.com/clubarqueros/clubops/internal/audit/domain"
	auditrepository "github.com/clubarqueros/clubops/internal/audit/repository"
	auditservice "github.com/clubarqueros/clubops/internal/audit/service"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/tariff/domain"
	"github.com/clubarqueros/clubops/internal/tariff/repository"
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
	require.NoError(t, db.AutoMigrate(&domain.Tariff{}, &auditdomain.AuditLog{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	logger := zap.NewNop()

	auditSvc := auditservice.New(auditservice.Params{
		DB:    db,
		Log:   logger,
		GenID: node,
		Repo:  auditrepository.Provide(),
	})

	return New(Params{
		DB:      db,
		Log:     logger,
		Repo:    repository.Provide(),
		Billing: config.NewStaticBillingConfigHolder(config.DefaultBillingConfig()),
		Audit:   auditSvc,
	})
}

func TestPriceFor_ExactMatchOnly(t *testing.T) {
	svc := newService(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	_, err := svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Cuota", Price: 15000})
	require.NoError(t, err)

	price, err := svc.PriceFor(ctx, "Cuota")
	require.NoError(t, err)
	assert.Equal(t, int64(15000), price)

	_, err = svc.PriceFor(ctx, "cuota")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.PriceFor(ctx, "Cuota Familiar")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.PriceFor(ctx, "")
	assert.ErrorIs(t, err, domain.ErrInvalidConcept)
}

func TestPriceOrDefault_FallsBackToBaselineFee(t *testing.T) {
	svc := newService(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	assert.Equal(t, config.DefaultBillingConfig().DefaultFee, svc.PriceOrDefault(ctx, "Desconocido"))

	_, err := svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Matrícula", Price: 5000})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), svc.PriceOrDefault(ctx, "Matrícula"))
}

func TestUpsert_Validation(t *testing.T) {
	svc := newService(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	_, err := svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "", Price: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidConcept)

	_, err = svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Cuota", Price: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	tariff, err := svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Cuota", Price: 15000})
	require.NoError(t, err)
	assert.Equal(t, "admin", tariff.UpdatedBy)

	tariff, err = svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Cuota", Price: 16000})
	require.NoError(t, err)
	assert.Equal(t, int64(16000), tariff.Price)
}

func TestReplaceAll_SwapsTheTable(t *testing.T) {
	svc := newService(t)
	ctx := actorcontext.WithActor(context.Background(), "admin")

	_, err := svc.Upsert(ctx, domain.UpsertTariffRequest{Concept: "Vieja", Price: 100})
	require.NoError(t, err)

	resp, err := svc.ReplaceAll(ctx, []domain.UpsertTariffRequest{
		{Concept: "Cuota", Price: 15000},
		{Concept: "Matrícula", Price: 5000},
	})
	require.NoError(t, err)
	require.Len(t, resp.Tariffs, 2)

	_, err = svc.PriceFor(ctx, "Vieja")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
