package service

import (
	"context"
	"testing"

	companyrepository "github.com/atriumhq/atrium/internal/company/repository"
	companyservice "github.com/atriumhq/atrium/internal/company/service"
	"github.com/atriumhq/atrium/internal/metric/domain"
	"github.com/atriumhq/atrium/internal/metric/repository"
	"github.com/atriumhq/atrium/internal/migration"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, context.Context, snowflake.ID) {
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

	metrics := New(Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  repository.Provide(),
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
	return metrics, conn, ctx, company.ID
}

func TestIngestSkipsBadKeysAndEmptyValues(t *testing.T) {
	metrics, conn, ctx, companyID := newTestService(t)

	metric, err := metrics.Ingest(ctx, domain.IngestRequest{
		CompanyID: companyID.String(),
		Name:      "Revenue",
		Values: map[string]any{
			"2024-03-31":   1200.0,
			"2024-06-30":   "1750",
			"not-a-date":   99.0,
			"2024-09-30":   nil,
			"2024-12-31":   0.0,
			"2025-13-40":   5.0,
			"alsoNotADate": "text",
		},
	})
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}

	if metric.Interval != domain.DefaultInterval || metric.Estimated {
		t.Fatalf("expected canonical variant, got %q estimated=%v", metric.Interval, metric.Estimated)
	}

	var count int64
	conn.Table("metric_values").Where("metric_id = ?", metric.ID).Count(&count)
	if count != 2 {
		t.Fatalf("expected two observations, got %d", count)
	}
}

func TestIngestIsIdempotent(t *testing.T) {
	metrics, conn, ctx, companyID := newTestService(t)

	payload := domain.IngestRequest{
		CompanyID: companyID.String(),
		Name:      "Headcount",
		Values:    map[string]any{"2024-03-31": 40.0},
	}
	if _, err := metrics.Ingest(ctx, payload); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	payload.Values = map[string]any{"2024-03-31": 45.0}
	metric, err := metrics.Ingest(ctx, payload)
	if err != nil {
		t.Fatalf("ingest again: %v", err)
	}

	var metricCount, valueCount int64
	conn.Table("metrics").Where("company_id = ?", companyID).Count(&metricCount)
	conn.Table("metric_values").Where("metric_id = ?", metric.ID).Count(&valueCount)
	if metricCount != 1 || valueCount != 1 {
		t.Fatalf("expected one metric and one value, got %d and %d", metricCount, valueCount)
	}

	point, err := metrics.LastValue(ctx, companyID, "Headcount")
	if err != nil {
		t.Fatalf("last value: %v", err)
	}
	if point == nil || point.Value != 45.0 {
		t.Fatalf("expected overwrite to 45, got %+v", point)
	}
}

func TestLastValueUsesCanonicalVariant(t *testing.T) {
	metrics, _, ctx, companyID := newTestService(t)

	if _, err := metrics.Ingest(ctx, domain.IngestRequest{
		CompanyID: companyID.String(),
		Name:      "Revenue",
		Values: map[string]any{
			"2023-12-31": 900.0,
			"2024-03-31": 1200.0,
		},
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	// An estimated series under the same name must not shadow actuals.
	if _, err := metrics.Ingest(ctx, domain.IngestRequest{
		CompanyID: companyID.String(),
		Name:      "Revenue",
		Estimated: true,
		Values:    map[string]any{"2024-06-30": 9999.0},
	}); err != nil {
		t.Fatalf("ingest estimate: %v", err)
	}

	point, err := metrics.LastValue(ctx, companyID, "Revenue")
	if err != nil {
		t.Fatalf("last value: %v", err)
	}
	if point == nil || point.Value != 1200.0 {
		t.Fatalf("expected newest actual 1200, got %+v", point)
	}

	missing, err := metrics.LastValue(ctx, companyID, "Burn")
	if err != nil {
		t.Fatalf("last value missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for unreported metric, got %+v", missing)
	}
}

func TestListByCompanyProjectsSeries(t *testing.T) {
	metrics, _, ctx, companyID := newTestService(t)

	if _, err := metrics.Ingest(ctx, domain.IngestRequest{
		CompanyID: companyID.String(),
		Name:      "Cash",
		Values:    map[string]any{"2024-03-31": 5000.0, "2024-06-30": 4200.0},
	}); err != nil {
		t.Fatalf("ingest: %v", err)
	}

	views, err := metrics.ListByCompany(ctx, companyID.String())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected one metric, got %d", len(views))
	}
	if views[0].Values["2024-06-30"] != 4200.0 {
		t.Fatalf("expected date-keyed map, got %+v", views[0].Values)
	}
}
