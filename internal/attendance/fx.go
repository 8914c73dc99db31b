package attendance

import (
	"github.com/clubarqueros/clubops/internal/attendance/repository"
	"github.com/clubarqueros/clubops/internal/attendance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("attendance.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
