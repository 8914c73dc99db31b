package member

import (
	"github.com/clubarqueros/clubops/internal/member/repository"
	"github.com/clubarqueros/clubops/internal/member/service"
	"go.uber.org/fx"
)

var Module = fx.Module("member.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
