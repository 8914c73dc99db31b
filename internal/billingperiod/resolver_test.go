package billingperiod_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/clubarqueros/clubops/internal/billingperiod"
	"github.com/clubarqueros/clubops/internal/clock"
	"github.com/clubarqueros/clubops/internal/config"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	settingrepository "github.com/clubarqueros/clubops/internal/setting/repository"
	settingservice "github.com/clubarqueros/clubops/internal/setting/service"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newResolverFixture(t *testing.T, now time.Time) (*billingperiod.Resolver, *clock.FakeClock, settingdomain.Service) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&settingdomain.Setting{}))

	fakeClock := clock.NewFakeClock(now)
	settings := settingservice.New(settingservice.Params{
		DB:      db,
		Log:     zap.NewNop(),
		Repo:    settingrepository.Provide(),
		Billing: config.NewStaticBillingConfigHolder(config.DefaultBillingConfig()),
	})

	resolver := billingperiod.NewResolver(billingperiod.ResolverParams{
		Log:      zap.NewNop(),
		Clock:    fakeClock,
		Settings: settings,
	})
	return resolver, fakeClock, settings
}

func TestResolver_UsesStoredCutoffDay(t *testing.T) {
	resolver, fakeClock, settings := newResolverFixture(t, time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC))
	ctx := context.Background()

	// Default cutoff 19: the 10th stays in June.
	period, err := resolver.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Junio 2024", period.Label())

	// Cutoff 5: the 10th already belongs to July.
	require.NoError(t, settings.SetCutoffDay(ctx, 5, "admin"))
	period, err = resolver.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Julio 2024", period.Label())

	fakeClock.Set(time.Date(2024, time.December, 20, 9, 0, 0, 0, time.UTC))
	period, err = resolver.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Enero 2025", period.Label())
}
