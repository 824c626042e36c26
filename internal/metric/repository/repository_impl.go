package repository

import (
	"context"
	"errors"
	"time"

	"github.com/atriumhq/atrium/internal/metric/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, metric *domain.Metric) error {
	return db.WithContext(ctx).Create(metric).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM metric_values WHERE account_id = ? AND metric_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM metrics WHERE account_id = ? AND id = ?`, accountID, id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Metric, error) {
	var metric domain.Metric
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, name, interval string, estimated bool) (*domain.Metric, error) {
	var metric domain.Metric
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ? AND name = ? AND interval = ? AND estimated = ?",
			accountID, companyID, name, interval, estimated).
		First(&metric).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]domain.Metric, error) {
	var metrics []domain.Metric
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ?", accountID, companyID).
		Order("name asc, interval asc, estimated asc").
		Find(&metrics).Error
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (r *repo) InsertValue(ctx context.Context, db *gorm.DB, value *domain.MetricValue) error {
	return db.WithContext(ctx).Create(value).Error
}

func (r *repo) UpdateValue(ctx context.Context, db *gorm.DB, value *domain.MetricValue) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", value.AccountID, value.ID).
		Save(value).Error
}

func (r *repo) FindValue(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID, date time.Time) (*domain.MetricValue, error) {
	var value domain.MetricValue
	err := db.WithContext(ctx).
		Where("account_id = ? AND metric_id = ? AND date = ?", accountID, metricID, date).
		First(&value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}

func (r *repo) ListValues(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID) ([]domain.MetricValue, error) {
	var values []domain.MetricValue
	err := db.WithContext(ctx).
		Where("account_id = ? AND metric_id = ?", accountID, metricID).
		Order("date asc").
		Find(&values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *repo) LastValue(ctx context.Context, db *gorm.DB, accountID, metricID snowflake.ID) (*domain.MetricValue, error) {
	var value domain.MetricValue
	err := db.WithContext(ctx).
		Where("account_id = ? AND metric_id = ?", accountID, metricID).
		Order("date desc").
		First(&value).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &value, nil
}
