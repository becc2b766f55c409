package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/coopaguas/facturador/internal/clock"
	"github.com/coopaguas/facturador/internal/config"
	"github.com/coopaguas/facturador/internal/migration"
	"github.com/coopaguas/facturador/internal/observability"
	"github.com/coopaguas/facturador/internal/server"
	"github.com/coopaguas/facturador/pkg/db"
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
