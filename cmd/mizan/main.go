package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/config"
	"github.com/mizanapp/mizan/internal/logger"
	"github.com/mizanapp/mizan/internal/migration"
	"github.com/mizanapp/mizan/internal/server"
	"github.com/mizanapp/mizan/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
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
