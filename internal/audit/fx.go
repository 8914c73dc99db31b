package audit

import (
	"github.com/clubarqueros/clubops/internal/audit/repository"
	"github.com/clubarqueros/clubops/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
