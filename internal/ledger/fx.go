package ledger

import (
	"github.com/clubarqueros/clubops/internal/ledger/repository"
	"github.com/clubarqueros/clubops/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
