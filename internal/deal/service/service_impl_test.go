package service

import (
	"context"
	"testing"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	"github.com/atriumhq/atrium/internal/deal/domain"
	"github.com/atriumhq/atrium/internal/deal/repository"
	employmentrepository "github.com/atriumhq/atrium/internal/employment/repository"
	investmentrepository "github.com/atriumhq/atrium/internal/investment/repository"
	investmentservice "github.com/atriumhq/atrium/internal/investment/service"
	investorrepository "github.com/atriumhq/atrium/internal/investor/repository"
	investorservice "github.com/atriumhq/atrium/internal/investor/service"
	"github.com/atriumhq/atrium/internal/migration"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	personrepository "github.com/atriumhq/atrium/internal/person/repository"
	personservice "github.com/atriumhq/atrium/internal/person/service"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	deals     domain.Service
	people    persondomain.Service
	companies companydomain.Service
	conn      *gorm.DB
	ctx       context.Context
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

	companies := companyservice.New(companyservice.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  companyrepository.Provide(),
	})
	people := personservice.New(personservice.Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        personrepository.Provide(),
		Companies:   companies,
		Employments: employmentrepository.Provide(),
	})
	investmentRepo := investmentrepository.Provide()
	investors := investorservice.New(investorservice.Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        investorrepository.Provide(),
		Investments: investmentRepo,
	})
	investments := investmentservice.New(investmentservice.Params{
		DB:        conn,
		Log:       log,
		GenID:     node,
		Repo:      investmentRepo,
		Investors: investors,
	})
	deals := New(Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		Companies:   companies,
		Investments: investments,
		People:      people,
	})

	return testEnv{
		deals:     deals,
		people:    people,
		companies: companies,
		conn:      conn,
		ctx:       tenantctx.WithAccountID(context.Background(), node.Generate()),
	}
}

func TestCreateResolvesReferences(t *testing.T) {
	env := newTestEnv(t)

	referrer, err := env.people.Create(env.ctx, persondomain.CreatePersonRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatalf("referrer: %v", err)
	}

	record, err := env.deals.Create(env.ctx, domain.CreateDealRequest{
		Name:       "Acme Series B",
		Stage:      "Diligence",
		ReferrerID: referrer.ID.String(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if record.ReferrerName != "Jane Doe" {
		t.Fatalf("expected joined referrer name, got %q", record.ReferrerName)
	}

	if _, err := env.deals.Create(env.ctx, domain.CreateDealRequest{
		Name:       "Dangling",
		ReferrerID: "123456789",
	}); err != domain.ErrInvalidReference {
		t.Fatalf("expected invalid_reference for unknown person, got %v", err)
	}
}

func TestSameCompanyMayAppearInManyDeals(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if _, err := env.deals.Create(env.ctx, domain.CreateDealRequest{Name: "Acme follow-on"}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	var count int64
	env.conn.Model(&domain.Deal{}).Count(&count)
	if count != 2 {
		t.Fatalf("deals carry no uniqueness, expected 2 rows, got %d", count)
	}
}

func TestPersonDeleteNullsDealReferences(t *testing.T) {
	env := newTestEnv(t)

	referrer, err := env.people.Create(env.ctx, persondomain.CreatePersonRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
	})
	if err != nil {
		t.Fatalf("referrer: %v", err)
	}

	record, err := env.deals.Create(env.ctx, domain.CreateDealRequest{
		Name:       "Acme Series B",
		ReferrerID: referrer.ID.String(),
		OwnerID:    referrer.ID.String(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.people.Delete(env.ctx, referrer.ID.String()); err != nil {
		t.Fatalf("delete person: %v", err)
	}

	after, err := env.deals.GetByID(env.ctx, record.ID.String())
	if err != nil {
		t.Fatalf("reload deal: %v", err)
	}
	if after.ReferrerID != nil || after.OwnerID != nil {
		t.Fatalf("expected person references nulled, got %+v %+v", after.ReferrerID, after.OwnerID)
	}
	if after.Name != "Acme Series B" {
		t.Fatalf("deal itself must survive, got %q", after.Name)
	}
}

func TestCompanyDeleteRemovesDeals(t *testing.T) {
	env := newTestEnv(t)

	company, err := env.companies.GetOrCreate(env.ctx, "Acme")
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	record, err := env.deals.Create(env.ctx, domain.CreateDealRequest{
		Name:      "Acme Series B",
		CompanyID: company.ID.String(),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := env.companies.Delete(env.ctx, company.ID.String()); err != nil {
		t.Fatalf("delete company: %v", err)
	}

	if _, err := env.deals.GetByID(env.ctx, record.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("deals follow their company, expected not_found, got %v", err)
	}
}

func TestUpdatePatchesOnlyProvidedFields(t *testing.T) {
	env := newTestEnv(t)

	record, err := env.deals.Create(env.ctx, domain.CreateDealRequest{
		Name:   "Acme Series B",
		Source: "Referral",
		Stage:  "Sourced",
		Date:   "2024-05-01",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.deals.Update(env.ctx, record.ID.String(), domain.UpdateDealRequest{
		Stage: "Term Sheet",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Stage != "Term Sheet" {
		t.Fatalf("expected stage updated, got %q", updated.Stage)
	}
	if updated.Name != "Acme Series B" || updated.Source != "Referral" {
		t.Fatalf("untouched fields must survive, got %q %q", updated.Name, updated.Source)
	}
	if updated.Date == nil || updated.Date.Format("2006-01-02") != "2024-05-01" {
		t.Fatalf("date must survive, got %+v", updated.Date)
	}
}
