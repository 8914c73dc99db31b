package tariff

import (
	"github.com/clubarqueros/clubops/internal/tariff/repository"
	"github.com/clubarqueros/clubops/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
