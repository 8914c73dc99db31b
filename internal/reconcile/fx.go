package reconcile

import (
	"github.com/clubarqueros/clubops/internal/reconcile/service"
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.service",
	fx.Provide(service.New),
)
