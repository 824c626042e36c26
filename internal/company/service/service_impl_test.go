package service

import (
	"context"
	"testing"

	"github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/company/repository"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, context.Context) {
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

	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Repo:  repository.Provide(),
	})
	return svc, conn, tenantctx.WithAccountID(context.Background(), node.Generate())
}

func TestCreateRequiresName(t *testing.T) {
	svc, _, ctx := newTestService(t)

	if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "  "}); err != domain.ErrInvalidName {
		t.Fatalf("expected invalid_name, got %v", err)
	}
}

func TestCreateRejectsDuplicateCrunchbaseID(t *testing.T) {
	svc, _, ctx := newTestService(t)

	if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Acme", CrunchbaseID: "cb-1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Other", CrunchbaseID: "cb-1"}); err != domain.ErrConflict {
		t.Fatalf("expected conflict, got %v", err)
	}

	// Companies without a crunchbase reference never collide.
	if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Third"}); err != nil {
		t.Fatalf("create without crunchbase id: %v", err)
	}
	if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: "Fourth"}); err != nil {
		t.Fatalf("second create without crunchbase id: %v", err)
	}
}

func TestGetOrCreateByName(t *testing.T) {
	svc, conn, ctx := newTestService(t)

	first, err := svc.GetOrCreate(ctx, "Acme")
	if err != nil {
		t.Fatalf("get or create: %v", err)
	}
	second, err := svc.GetOrCreate(ctx, "Acme")
	if err != nil {
		t.Fatalf("get or create again: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected one company per name, got %v and %v", first.ID, second.ID)
	}

	var count int64
	conn.Model(&domain.Company{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}
}

func TestUpdateAppliesOnlyNonEmptyFields(t *testing.T) {
	svc, _, ctx := newTestService(t)

	company, err := svc.Create(ctx, domain.CreateCompanyRequest{
		Name:    "Acme",
		Sector:  "Fintech",
		Segment: "SMB",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, company.ID.String(), domain.UpdateCompanyRequest{
		Sector: "Infrastructure",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Sector != "Infrastructure" {
		t.Fatalf("expected sector updated, got %q", updated.Sector)
	}
	if updated.Name != "Acme" || updated.Segment != "SMB" {
		t.Fatalf("empty fields must not clear stored values, got %q %q", updated.Name, updated.Segment)
	}
}

func TestTagTwiceIsNoOp(t *testing.T) {
	svc, _, ctx := newTestService(t)

	company, err := svc.GetOrCreate(ctx, "Acme")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := svc.AddTag(ctx, company.ID.String(), "portfolio"); err != nil {
		t.Fatalf("tag: %v", err)
	}
	if err := svc.AddTag(ctx, company.ID.String(), "portfolio"); err != nil {
		t.Fatalf("tag again: %v", err)
	}

	tags, err := svc.Tags(ctx, company.ID.String())
	if err != nil {
		t.Fatalf("tags: %v", err)
	}
	if len(tags) != 1 {
		t.Fatalf("expected one tag, got %d", len(tags))
	}
}

func TestListPaginates(t *testing.T) {
	svc, _, ctx := newTestService(t)

	for _, name := range []string{"Alpha", "Beta", "Gamma"} {
		if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	page, err := svc.List(ctx, domain.ListCompanyRequest{PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Companies) != 2 || !page.HasMore {
		t.Fatalf("expected first page of two with more, got %d hasMore=%v", len(page.Companies), page.HasMore)
	}

	rest, err := svc.List(ctx, domain.ListCompanyRequest{PageSize: 2, PageToken: page.NextPageToken})
	if err != nil {
		t.Fatalf("list rest: %v", err)
	}
	if len(rest.Companies) != 1 || rest.HasMore {
		t.Fatalf("expected final page of one, got %d hasMore=%v", len(rest.Companies), rest.HasMore)
	}
}

func TestListCursorVisitsEveryRowOnce(t *testing.T) {
	svc, _, ctx := newTestService(t)

	// Insertion order deliberately inverts the alphabetical order.
	for _, name := range []string{"Zeta", "Alpha"} {
		if _, err := svc.Create(ctx, domain.CreateCompanyRequest{Name: name}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	seen := map[string]int{}
	token := ""
	for i := 0; i < 5; i++ {
		page, err := svc.List(ctx, domain.ListCompanyRequest{PageSize: 1, PageToken: token})
		if err != nil {
			t.Fatalf("list page %d: %v", i, err)
		}
		for _, company := range page.Companies {
			seen[company.Name]++
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
