package migration

import (
	"embed"
	"errors"
	"fmt"

	accountdomain "github.com/atriumhq/atrium/internal/account/domain"
	boardmemberdomain "github.com/atriumhq/atrium/internal/boardmember/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/config"
	dealdomain "github.com/atriumhq/atrium/internal/deal/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	metricdomain "github.com/atriumhq/atrium/internal/metric/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed sql/*.sql
var migrations embed.FS

// Module applies schema migrations on startup.
var Module = fx.Module("migration",
	fx.Invoke(Run),
)

// Run brings the schema up to date. Postgres goes through versioned SQL
// migrations; other dialects, used in development and tests, are handled by
// AutoMigrate since the migrate tooling is postgres-only here.
func Run(cfg config.Config, conn *gorm.DB, log *zap.Logger) error {
	if cfg.DBType != "postgres" {
		return AutoMigrate(conn)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}

	source, err := iofs.New(migrations, "sql")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, cfg.DBName, driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	log.Info("schema migrated", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

// AutoMigrate creates the schema from the model definitions.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&accountdomain.Account{},
		&accountdomain.User{},
		&companydomain.Company{},
		&companydomain.CompanyTag{},
		&persondomain.Person{},
		&persondomain.PersonTag{},
		&employmentdomain.Employment{},
		&boardmemberdomain.BoardMember{},
		&investordomain.Investor{},
		&investmentdomain.Investment{},
		&investmentdomain.InvestorInvestment{},
		&metricdomain.Metric{},
		&metricdomain.MetricValue{},
		&dealdomain.Deal{},
	)
}
