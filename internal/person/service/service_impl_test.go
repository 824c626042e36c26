package service

import (
	"context"
	"testing"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	employmentrepository "github.com/atriumhq/atrium/internal/employment/repository"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/internal/person/domain"
	"github.com/atriumhq/atrium/internal/person/repository"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testEnv struct {
	people      domain.Service
	companies   companydomain.Service
	employments employmentdomain.Repository
	conn        *gorm.DB
	ctx         context.Context
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
	employments := employmentrepository.Provide()
	people := New(Params{
		DB:          conn,
		Log:         log,
		GenID:       node,
		Repo:        repository.Provide(),
		Companies:   companies,
		Employments: employments,
	})

	return testEnv{
		people:      people,
		companies:   companies,
		employments: employments,
		conn:        conn,
		ctx:         tenantctx.WithAccountID(context.Background(), node.Generate()),
	}
}

func TestCreateDedupByEmail(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Location:  "London",
	})
	if err != nil {
		t.Fatalf("create again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected dedup by email, got two rows %v and %v", first.ID, second.ID)
	}
	if second.Location != "London" {
		t.Fatalf("expected merged location, got %q", second.Location)
	}

	var count int64
	env.conn.Model(&domain.Person{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one person row, got %d", count)
	}
}

func TestCreateDedupByLinkedin(t *testing.T) {
	env := newTestEnv(t)

	first, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName:   "Grace",
		LastName:    "Hopper",
		LinkedinURL: "https://linkedin.com/in/ghopper",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	second, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName:   "Grace",
		LastName:    "Hopper",
		LinkedinURL: "https://linkedin.com/in/ghopper",
		Email:       "grace@example.com",
	})
	if err != nil {
		t.Fatalf("create again: %v", err)
	}

	if first.ID != second.ID {
		t.Fatalf("expected dedup by linkedin url, got %v and %v", first.ID, second.ID)
	}
	if second.EmailValue() != "grace@example.com" {
		t.Fatalf("expected merged email, got %q", second.EmailValue())
	}
}

func TestCreateWithoutIdentityAlwaysInserts(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 2; i++ {
		if _, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
			FirstName: "John",
			LastName:  "Smith",
		}); err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
	}

	var count int64
	env.conn.Model(&domain.Person{}).Count(&count)
	if count != 2 {
		t.Fatalf("people without email or linkedin must not dedup, got %d rows", count)
	}
}

func TestCreateAttachesEmployment(t *testing.T) {
	env := newTestEnv(t)

	person, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		Title:     "Founder",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	company, err := env.companies.GetOrCreate(env.ctx, "Analytical Engines")
	if err != nil {
		t.Fatalf("resolve company: %v", err)
	}

	// Resubmitting the same payload must not stack a second employment row.
	if _, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		Title:     "Founder",
	}); err != nil {
		t.Fatalf("create again: %v", err)
	}

	accountID, _ := tenantctx.AccountID(env.ctx)
	records, err := env.employments.ListByPerson(env.ctx, env.conn, accountID, person.ID)
	if err != nil {
		t.Fatalf("list employments: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected one employment row, got %d", len(records))
	}
	if records[0].CompanyID != company.ID || records[0].Title != "Founder" {
		t.Fatalf("unexpected employment %+v", records[0].Employment)
	}
}

func TestUpdateAppliesOnlyNonEmptyFields(t *testing.T) {
	env := newTestEnv(t)

	person, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Location:  "London",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := env.people.Update(env.ctx, person.ID.String(), domain.UpdatePersonRequest{
		Location: "Cambridge",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Location != "Cambridge" {
		t.Fatalf("expected location updated, got %q", updated.Location)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" {
		t.Fatalf("empty fields must not clear names, got %q %q", updated.FirstName, updated.LastName)
	}
	if updated.EmailValue() != "ada@example.com" {
		t.Fatalf("empty email must not clear stored email, got %q", updated.EmailValue())
	}
}

func TestExperienceOrdersTimeline(t *testing.T) {
	env := newTestEnv(t)

	person, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	accountID, _ := tenantctx.AccountID(env.ctx)

	node, err := snowflake.NewNode(2)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}
	insert := func(name string, start, end string, current bool) {
		t.Helper()
		company, err := env.companies.GetOrCreate(env.ctx, name)
		if err != nil {
			t.Fatalf("company %s: %v", name, err)
		}
		employment := employmentdomain.Employment{
			ID:        node.Generate(),
			AccountID: accountID,
			PersonID:  person.ID,
			CompanyID: company.ID,
			Current:   current,
		}
		patch.Date(&employment.StartDate, start)
		patch.Date(&employment.EndDate, end)
		if err := env.employments.Insert(env.ctx, env.conn, &employment); err != nil {
			t.Fatalf("insert employment: %v", err)
		}
	}

	insert("Current Co", "2020-01-01", "", true)
	insert("Ended Co", "2010-01-01", "2015-01-01", false)
	insert("Ongoing Co", "2016-01-01", "", false)

	records, err := env.people.Experience(env.ctx, person.ID.String())
	if err != nil {
		t.Fatalf("experience: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected three rows, got %d", len(records))
	}

	want := []string{"Ended Co", "Ongoing Co", "Current Co"}
	for i := range want {
		if records[i].CompanyName != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], records[i].CompanyName)
		}
	}

	latest, err := env.people.LatestEmployment(env.ctx, person.ID)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if latest == nil || latest.CompanyName != "Current Co" {
		t.Fatalf("expected Current Co as latest, got %+v", latest)
	}
}

func TestDeleteRemovesDependents(t *testing.T) {
	env := newTestEnv(t)

	person, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Company:   "Analytical Engines",
		Title:     "Founder",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := env.people.AddTag(env.ctx, person.ID.String(), "founder"); err != nil {
		t.Fatalf("tag: %v", err)
	}

	if err := env.people.Delete(env.ctx, person.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var employments, tags int64
	env.conn.Table("employments").Where("person_id = ?", person.ID).Count(&employments)
	env.conn.Table("person_tags").Where("person_id = ?", person.ID).Count(&tags)
	if employments != 0 || tags != 0 {
		t.Fatalf("expected dependents removed, got %d employments and %d tags", employments, tags)
	}

	if _, err := env.people.GetByID(env.ctx, person.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestListCursorVisitsEveryRowOnce(t *testing.T) {
	env := newTestEnv(t)

	// Insertion order deliberately inverts the alphabetical order.
	for _, last := range []string{"Zeta", "Alpha"} {
		if _, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
			FirstName: "Ann",
			LastName:  last,
		}); err != nil {
			t.Fatalf("create %s: %v", last, err)
		}
	}

	seen := map[string]int{}
	token := ""
	for i := 0; i < 5; i++ {
		page, err := env.people.List(env.ctx, domain.ListPersonRequest{PageSize: 1, PageToken: token})
		if err != nil {
			t.Fatalf("list page %d: %v", i, err)
		}
		for _, person := range page.People {
			seen[person.LastName]++
		}
		if !page.HasMore {
			break
		}
		token = page.NextPageToken
	}
	if seen["Zeta"] != 1 || seen["Alpha"] != 1 {
		t.Fatalf("every row must appear exactly once across pages, got %v", seen)
	}
}

func TestTenantIsolation(t *testing.T) {
	env := newTestEnv(t)

	person, err := env.people.Create(env.ctx, domain.CreatePersonRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	node, _ := snowflake.NewNode(3)
	otherCtx := tenantctx.WithAccountID(context.Background(), node.Generate())
	if _, err := env.people.GetByID(otherCtx, person.ID.String()); err != domain.ErrNotFound {
		t.Fatalf("expected not_found across accounts, got %v", err)
	}
}
