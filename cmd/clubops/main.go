package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/clubarqueros/clubops/internal/clock"
	"github.com/clubarqueros/clubops/internal/config"
	"github.com/clubarqueros/clubops/internal/migration"
	"github.com/clubarqueros/clubops/internal/observability"
	"github.com/clubarqueros/clubops/internal/server"
	"github.com/clubarqueros/clubops/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
