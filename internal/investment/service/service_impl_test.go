package service

import (
	"context"
	"testing"

	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	"github.com/atriumhq/atrium/internal/investment/domain"
	"github.com/atriumhq/atrium/internal/investment/repository"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	investorrepository "github.com/atriumhq/atrium/internal/investor/repository"
	investorservice "github.com/atriumhq/atrium/internal/investor/service"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	investments domain.Service
	investors   investordomain.Service
	conn        *gorm.DB
	ctx         context.Context
	companyID   snowflake.ID
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	conn, err := db.NewTest()
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := migration.AutoMigrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	log := zap.NewNop()

	investmentRepo := repository.Provide()
	investors := investorservice.New(investorservice.Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        investorrepository.Provide(),
		Investments: investmentRepo,
	})
	investments := New(Params{
		DB:        conn,
		Log:       log,
		GenID:     node,
		Repo:      investmentRepo,
		Investors: investors,
	})

	ctx := tenantctx.WithAccountID(context.Background(), node.Generate())
	companies := companyservice.New(companyservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  companyrepository.Provide(),
	})
	company, err := companies.GetOrCreate(ctx, "Acme")
	if err != nil {
		t.Fatalf("company: %v", err)
	}

	return testEnv{
		investments: investments,
		investors:   investors,
		conn:        conn,
		ctx:         ctx,
		companyID:   company.ID,
	}
}

func f64(v float64) *float64 { return &v }

func TestUpsertKeyedBySeries(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Series A",
		Date:      "2022-05-01",
		Raised:    f64(5_000_000),
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	second, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Series A",
		PreMoney:  f64(20_000_000),
	})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected single round per series, got %v and %v", first.ID, second.ID)
	}
	if second.Raised == nil || *second.Raised != 5_000_000 {
		t.Fatalf("absent fields must survive the upsert, got %+v", second.Raised)
	}
	if second.PreMoney == nil || *second.PreMoney != 20_000_000 {
		t.Fatalf("expected pre-money applied, got %+v", second.PreMoney)
	}

	var count int64
	env.conn.Table("investments").Where("company_id = ?", env.companyID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}
}

func TestTotalRaisedDefaultsToZero(t *testing.T) {
	env := newTestEnv(t)

	total, err := env.investments.TotalRaised(env.ctx, env.companyID)
	if err != nil {
		t.Fatalf("total raised: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected zero with no rounds, got %v", total)
	}

	if _, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Seed",
		Raised:    f64(1_500_000),
	}); err != nil {
		t.Fatalf("upsert seed: %v", err)
	}
	if _, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Series A",
		Raised:    f64(5_000_000),
	}); err != nil {
		t.Fatalf("upsert a: %v", err)
	}
	// A round with no recorded amount contributes nothing.
	if _, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Series B",
	}); err != nil {
		t.Fatalf("upsert b: %v", err)
	}

	total, err = env.investments.TotalRaised(env.ctx, env.companyID)
	if err != nil {
		t.Fatalf("total raised: %v", err)
	}
	if total != 6_500_000 {
		t.Fatalf("expected 6.5m, got %v", total)
	}
}

func TestAddParticipantCreatesInvestorAndUpserts(t *testing.T) {
	env := newTestEnv(t)

	round, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Seed",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}

	lead := true
	row, err := env.investments.AddParticipant(env.ctx, domain.AddParticipantRequest{
		InvestmentID: round.ID.String(),
		Investor:     "First Capital",
		Invested:     f64(1_000_000),
		Lead:         &lead,
	})
	if err != nil {
		t.Fatalf("add participant: %v", err)
	}

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}
	if row.InvestorID != investor.ID {
		t.Fatalf("expected participation to reference the named investor")
	}

	// Same investor again patches the row instead of duplicating it.
	again, err := env.investments.AddParticipant(env.ctx, domain.AddParticipantRequest{
		InvestmentID: round.ID.String(),
		Investor:     "First Capital",
		Ownership:    f64(0.12),
	})
	if err != nil {
		t.Fatalf("add participant again: %v", err)
	}
	if again.ID != row.ID {
		t.Fatalf("expected upsert on (investment, investor), got new row")
	}
	if again.Invested == nil || *again.Invested != 1_000_000 {
		t.Fatalf("invested must survive the patch, got %+v", again.Invested)
	}
	if !again.Lead {
		t.Fatal("lead flag must survive the patch")
	}

	var count int64
	env.conn.Table("investor_investments").Where("investment_id = ?", round.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected one participation row, got %d", count)
	}
}

func TestDeleteRemovesParticipants(t *testing.T) {
	env := newTestEnv(t)

	round, err := env.investments.Upsert(env.ctx, domain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    "Seed",
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := env.investments.AddParticipant(env.ctx, domain.AddParticipantRequest{
		InvestmentID: round.ID.String(),
		Investor:     "First Capital",
	}); err != nil {
		t.Fatalf("add participant: %v", err)
	}

	if err := env.investments.Delete(env.ctx, round.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	env.conn.Table("investor_investments").Where("investment_id = ?", round.ID).Count(&count)
	if count != 0 {
		t.Fatalf("expected participation rows removed, got %d", count)
	}

	// The investor survives its rounds.
	if _, err := env.investors.GetOrCreate(env.ctx, "First Capital"); err != nil {
		t.Fatalf("investor lookup: %v", err)
	}
	var investors int64
	env.conn.Table("investors").Count(&investors)
	if investors != 1 {
		t.Fatalf("expected investor to survive round deletion, got %d rows", investors)
	}
}
