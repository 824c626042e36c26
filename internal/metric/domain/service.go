package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// IngestRequest carries the loose ingestion payload: a metric name plus
// date-keyed values, for example {"metric": "Revenue", "2024-03-31": 1200}.
// Interval and Estimated select the variant, defaulting to the canonical
// quarterly actuals.
type IngestRequest struct {
	CompanyID string
	Name      string
	Interval  string
	Estimated bool
	Values    map[string]any
}

type Service interface {
	// Ingest resolves the metric variant, creating it when absent, and
	// upserts one observation per well-formed date key. Keys that do not
	// parse as dates and values that are missing or zero are skipped
	// without error.
	Ingest(context.Context, IngestRequest) (Metric, error)
	// ListByCompany returns the company's metrics with their full series.
	ListByCompany(ctx context.Context, companyID string) ([]View, error)
	// LastValue reads the newest observation of the canonical quarterly
	// variant, nil when the company does not report the metric.
	LastValue(ctx context.Context, companyID snowflake.ID, name string) (*Point, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidMetric  = errors.New("invalid_metric")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
