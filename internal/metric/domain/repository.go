package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, metric *Metric) error
	// Delete removes the metric and its values.
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Metric, error)
	Find(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, name, interval string, estimated bool) (*Metric, error)
	ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]Metric, error)

	InsertValue(ctx context.Context, db *gorm.DB, value *MetricValue) error
	UpdateValue(ctx context.Context, db *gorm.DB, value *MetricValue) error
	FindValue(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID, date time.Time) (*MetricValue, error)
	// ListValues returns the series ordered by date ascending.
	ListValues(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID) ([]MetricValue, error)
	// LastValue returns the newest observation, nil when the series is empty.
	LastValue(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID) (*MetricValue, error)
}
