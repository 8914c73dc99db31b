package billingperiod

import (
	"context"

	"github.com/clubarqueros/clubops/internal/clock"
	settingdomain "github.com/clubarqueros/clubops/internal/setting/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Resolver computes the period currently open for billing from the stored
// cutoff day.
type Resolver struct {
	log      *zap.Logger
	clock    clock.Clock
	settings settingdomain.Service
}

type ResolverParams struct {
	fx.In

	Log      *zap.Logger
	Clock    clock.Clock
	Settings settingdomain.Service
}

func NewResolver(p ResolverParams) *Resolver {
	return &Resolver{
		log:      p.Log.Named("billingperiod.resolver"),
		clock:    p.Clock,
		settings: p.Settings,
	}
}

// Current resolves today's billing period using the configured cutoff day.
func (r *Resolver) Current(ctx context.Context) (Period, error) {
	return Resolve(r.clock.Now(), r.settings.CutoffDay(ctx))
}

var Module = fx.Module("billingperiod",
	fx.Provide(NewResolver),
)
