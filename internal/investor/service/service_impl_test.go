package service

import (
	"context"
	"testing"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investmentrepository "github.com/atriumhq/atrium/internal/investment/repository"
	investmentservice "github.com/atriumhq/atrium/internal/investment/service"
	"github.com/atriumhq/atrium/internal/investor/domain"
	"github.com/atriumhq/atrium/internal/investor/repository"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	investors   domain.Service
	investments investmentdomain.Service
	companies   companydomain.Service
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

	investmentRepo := investmentrepository.Provide()
	investors := New(Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		Investments: investmentRepo,
	})
	investments := investmentservice.New(investmentservice.Params{
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
		investors:   investors,
		investments: investments,
		companies:   companies,
		conn:        conn,
		ctx:         ctx,
		companyID:   company.ID,
	}
}

func f64(v float64) *float64 { return &v }

func (env *testEnv) round(t *testing.T, series, date string) investmentdomain.Investment {
	t.Helper()
	round, err := env.investments.Upsert(env.ctx, investmentdomain.UpsertInvestmentRequest{
		CompanyID: env.companyID.String(),
		Series:    series,
		Date:      date,
	})
	if err != nil {
		t.Fatalf("round %s: %v", series, err)
	}
	return round
}

func (env *testEnv) participate(t *testing.T, round investmentdomain.Investment, investor string, invested, ownership *float64) {
	t.Helper()
	if _, err := env.investments.AddParticipant(env.ctx, investmentdomain.AddParticipantRequest{
		InvestmentID: round.ID.String(),
		Investor:     investor,
		Invested:     invested,
		Ownership:    ownership,
	}); err != nil {
		t.Fatalf("participate in %s: %v", round.Series, err)
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	second, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one investor per name, got %v and %v", first.ID, second.ID)
	}
	if first.Type != domain.TypeCompany {
		t.Fatalf("unlinked investors default to COMPANY, got %q", first.Type)
	}
}

func TestUnionShapeValidation(t *testing.T) {
	investor := domain.Investor{Name: "Broken", Type: domain.TypePerson}
	companyID := snowflake.ID(42)
	investor.CompanyID = &companyID
	if err := investor.Validate(); err != domain.ErrInvalidType {
		t.Fatalf("PERSON investor with company reference must fail, got %v", err)
	}

	if err := (&domain.Investor{Name: "NoType"}).Validate(); err != domain.ErrInvalidType {
		t.Fatalf("missing type must fail, got %v", err)
	}
	if err := (&domain.Investor{Type: domain.TypeCompany}).Validate(); err != domain.ErrInvalidName {
		t.Fatalf("missing name must fail, got %v", err)
	}
}

func TestListCursorVisitsEveryRowOnce(t *testing.T) {
	env := newTestEnv(t)

	// Insertion order deliberately inverts the alphabetical order.
	for _, name := range []string{"Zeta Ventures", "Alpha Ventures"} {
		if _, err := env.investors.GetOrCreate(env.ctx, name); err != nil {
			t.Fatalf("investor %s: %v", name, err)
		}
	}

	seen := map[string]int{}
	token := ""
	for i := 0; i < 5; i++ {
		page, err := env.investors.List(env.ctx, domain.ListInvestorRequest{PageSize: 1, PageToken: token})
		if err != nil {
			t.Fatalf("list page %d: %v", i, err)
		}
		for _, investor := range page.Investors {
			seen[investor.Name]++
		}
		if !page.HasMore {
			break
		}
		token = page.NextPageToken
	}
	if seen["Zeta Ventures"] != 1 || seen["Alpha Ventures"] != 1 {
		t.Fatalf("every row must appear exactly once across pages, got %v", seen)
	}
}

func TestTotalInvestmentDefaultsToZero(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	total, err := env.investors.TotalInvestment(env.ctx, investor.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected zero with no participation, got %v", total)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	a := env.round(t, "Series A", "2022-06-01")
	env.participate(t, seed, "First Capital", f64(500_000), nil)
	env.participate(t, a, "First Capital", f64(2_000_000), nil)

	total, err = env.investors.TotalInvestment(env.ctx, investor.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if total != 2_500_000 {
		t.Fatalf("expected 2.5m, got %v", total)
	}
}

func TestTotalInvestmentScopedToCompany(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	env.participate(t, seed, "First Capital", f64(500_000), nil)

	globex, err := env.companies.GetOrCreate(env.ctx, "Globex")
	if err != nil {
		t.Fatalf("globex: %v", err)
	}
	other, err := env.investments.Upsert(env.ctx, investmentdomain.UpsertInvestmentRequest{
		CompanyID: globex.ID.String(),
		Series:    "Seed",
		Date:      "2023-03-01",
	})
	if err != nil {
		t.Fatalf("globex round: %v", err)
	}
	env.participate(t, other, "First Capital", f64(250_000), nil)

	scoped, err := env.investors.TotalInvestmentInCompany(env.ctx, investor.ID, env.companyID)
	if err != nil {
		t.Fatalf("scoped total: %v", err)
	}
	if scoped != 500_000 {
		t.Fatalf("other companies' rounds must not leak in, got %v", scoped)
	}

	all, err := env.investors.TotalInvestment(env.ctx, investor.ID)
	if err != nil {
		t.Fatalf("total: %v", err)
	}
	if all != 750_000 {
		t.Fatalf("expected 750k across companies, got %v", all)
	}
}

func TestCurrentOwnershipSkipsRoundsWithoutData(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	a := env.round(t, "Series A", "2022-06-01")
	b := env.round(t, "Series B", "2023-09-01")

	// Ownership recorded only at the seed; the two newer rounds carry none.
	env.participate(t, seed, "First Capital", f64(500_000), f64(0.10))
	env.participate(t, a, "First Capital", f64(2_000_000), nil)
	env.participate(t, b, "First Capital", nil, nil)

	ownership, err := env.investors.CurrentOwnership(env.ctx, investor.ID, env.companyID)
	if err != nil {
		t.Fatalf("ownership: %v", err)
	}
	if ownership == nil || *ownership != 0.10 {
		t.Fatalf("expected older round's 0.10 over newer rounds without data, got %+v", ownership)
	}
}

func TestCurrentOwnershipPrefersNewestData(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	a := env.round(t, "Series A", "2022-06-01")
	env.participate(t, seed, "First Capital", nil, f64(0.15))
	env.participate(t, a, "First Capital", nil, f64(0.08))

	ownership, err := env.investors.CurrentOwnership(env.ctx, investor.ID, env.companyID)
	if err != nil {
		t.Fatalf("ownership: %v", err)
	}
	if ownership == nil || *ownership != 0.08 {
		t.Fatalf("expected newest recorded ownership 0.08, got %+v", ownership)
	}

	none, err := env.investors.CurrentOwnership(env.ctx, investor.ID, snowflake.ID(99))
	if err != nil {
		t.Fatalf("ownership other company: %v", err)
	}
	if none != nil {
		t.Fatalf("expected nil for a company without rounds, got %+v", none)
	}
}

func TestCurrentOwnershipFollowsParticipationDates(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	a := env.round(t, "Series A", "2022-06-01")

	// The seed position was re-papered after the A round closed, so its
	// participation date is newer even though the round is older.
	if _, err := env.investments.AddParticipant(env.ctx, investmentdomain.AddParticipantRequest{
		InvestmentID: seed.ID.String(),
		Investor:     "First Capital",
		Date:         "2023-01-10",
		Ownership:    f64(0.12),
	}); err != nil {
		t.Fatalf("seed participation: %v", err)
	}
	if _, err := env.investments.AddParticipant(env.ctx, investmentdomain.AddParticipantRequest{
		InvestmentID: a.ID.String(),
		Investor:     "First Capital",
		Date:         "2022-06-01",
		Ownership:    f64(0.30),
	}); err != nil {
		t.Fatalf("a participation: %v", err)
	}

	ownership, err := env.investors.CurrentOwnership(env.ctx, investor.ID, env.companyID)
	if err != nil {
		t.Fatalf("ownership: %v", err)
	}
	if ownership == nil || *ownership != 0.12 {
		t.Fatalf("expected the latest-dated participation's 0.12, got %+v", ownership)
	}
}

func TestDeleteProtectedByParticipation(t *testing.T) {
	env := newTestEnv(t)

	investor, err := env.investors.GetOrCreate(env.ctx, "First Capital")
	if err != nil {
		t.Fatalf("investor: %v", err)
	}

	seed := env.round(t, "Seed", "2021-01-15")
	env.participate(t, seed, "First Capital", f64(500_000), nil)

	if err := env.investors.Delete(env.ctx, investor.ID.String()); err != domain.ErrProtected {
		t.Fatalf("expected protected, got %v", err)
	}

	if err := env.investments.Delete(env.ctx, seed.ID.String()); err != nil {
		t.Fatalf("delete round: %v", err)
	}
	if err := env.investors.Delete(env.ctx, investor.ID.String()); err != nil {
		t.Fatalf("delete after rounds removed: %v", err)
	}
}
