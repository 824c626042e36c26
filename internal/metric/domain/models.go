package domain

import (
	"time"

	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/bwmarrin/snowflake"
)

// DefaultInterval is the canonical reporting cadence. Lookups that do not
// name an interval resolve against (Quarter, not estimated).
const DefaultInterval = "Quarter"

// Metric is a named time series a company reports, for example Revenue or
// Headcount. A company may carry the same name at several cadences and as
// both actuals and estimates; each variant is its own row.
type Metric struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID   snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_metrics,priority:1"`
	CompanyID   snowflake.ID `json:"company_id" gorm:"column:company_id;not null;uniqueIndex:ux_metrics,priority:2"`
	Name        string       `json:"name" gorm:"type:text;not null;uniqueIndex:ux_metrics,priority:3"`
	Description string       `json:"description,omitempty" gorm:"type:text"`
	Interval    string       `json:"interval" gorm:"type:text;not null;default:'Quarter';uniqueIndex:ux_metrics,priority:4"`
	Estimated   bool         `json:"estimated" gorm:"not null;default:false;uniqueIndex:ux_metrics,priority:5"`
	CreatedAt   time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Metric) TableName() string { return "metrics" }

// MetricValue is one observation: the metric's value on a date. One row per
// (metric, date); re-ingestion overwrites in place.
type MetricValue struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_metric_values,priority:1"`
	MetricID  snowflake.ID `json:"metric_id" gorm:"column:metric_id;not null;uniqueIndex:ux_metric_values,priority:2"`
	Date      time.Time    `json:"date" gorm:"type:date;not null;uniqueIndex:ux_metric_values,priority:3"`
	Value     float64      `json:"value" gorm:"not null"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (MetricValue) TableName() string { return "metric_values" }

// Point is one dated observation on the wire.
type Point struct {
	Date  time.Time `json:"-"`
	Value float64   `json:"value"`
}

// View is the wire projection of a metric: its identity plus the series as a
// date-keyed map.
type View struct {
	ID        snowflake.ID       `json:"id"`
	Name      string             `json:"name"`
	Interval  string             `json:"interval"`
	Estimated bool               `json:"estimated"`
	Values    map[string]float64 `json:"values"`
}

func (m *Metric) View(values []MetricValue) View {
	v := View{
		ID:        m.ID,
		Name:      m.Name,
		Interval:  m.Interval,
		Estimated: m.Estimated,
		Values:    make(map[string]float64, len(values)),
	}
	for i := range values {
		d := values[i].Date
		v.Values[patch.FormatDate(&d)] = values[i].Value
	}
	return v
}
