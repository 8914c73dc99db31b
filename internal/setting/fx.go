package setting

import (
	"github.com/clubarqueros/clubops/internal/setting/repository"
	"github.com/clubarqueros/clubops/internal/setting/service"
	"go.uber.org/fx"
)

var Module = fx.Module("setting.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
