package main

import (
	"github.com/atriumhq/atrium/internal/account"
	"github.com/atriumhq/atrium/internal/boardmember"
	"github.com/atriumhq/atrium/internal/company"
	"github.com/atriumhq/atrium/internal/config"
	"github.com/atriumhq/atrium/internal/deal"
	"github.com/atriumhq/atrium/internal/employment"
	"github.com/atriumhq/atrium/internal/investment"
	"github.com/atriumhq/atrium/internal/investor"
	"github.com/atriumhq/atrium/internal/logger"
	"github.com/atriumhq/atrium/internal/metric"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/internal/person"
	"github.com/atriumhq/atrium/internal/portfolio"
	"github.com/atriumhq/atrium/internal/seed"
	"github.com/atriumhq/atrium/internal/server"
	"github.com/atriumhq/atrium/internal/telemetry"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
)

func newSnowflakeNode() (*snowflake.Node, error) {
	return snowflake.NewNode(1)
}

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(newSnowflakeNode),
		db.Module,
		telemetry.Module,
		migration.Module,
		seed.Module,

		account.Module,
		company.Module,
		person.Module,
		employment.Module,
		boardmember.Module,
		investor.Module,
		investment.Module,
		metric.Module,
		deal.Module,
		portfolio.Module,

		server.Module,
	)
	app.Run()
}
