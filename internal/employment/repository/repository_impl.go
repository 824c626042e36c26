package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/employment/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, employment *domain.Employment) error {
	return db.WithContext(ctx).Create(employment).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, employment *domain.Employment) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", employment.AccountID, employment.ID).
		Save(employment).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM employments WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Employment, error) {
	var employment domain.Employment
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&employment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employment, nil
}

func (r *repo) FindByPersonCompanyTitle(ctx context.Context, db *gorm.DB, accountID, personID, companyID snowflake.ID, title string) (*domain.Employment, error) {
	var employment domain.Employment
	err := db.WithContext(ctx).
		Where("account_id = ? AND person_id = ? AND company_id = ? AND title = ?",
			accountID, personID, companyID, title).
		First(&employment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employment, nil
}

func (r *repo) FindCurrent(ctx context.Context, db *gorm.DB, accountID, personID, companyID snowflake.ID) (*domain.Employment, error) {
	var employment domain.Employment
	err := db.WithContext(ctx).
		Where("account_id = ? AND person_id = ? AND company_id = ? AND current = ?",
			accountID, personID, companyID, true).
		First(&employment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employment, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]domain.Employment, error) {
	var employments []domain.Employment
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ?", accountID, companyID).
		Order("current desc, start_date asc, id asc").
		Find(&employments).Error
	if err != nil {
		return nil, err
	}
	return employments, nil
}

func (r *repo) ListByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]domain.Record, error) {
	var records []domain.Record
	err := db.WithContext(ctx).Raw(
		`SELECT e.*, c.name AS company_name
		 FROM employments e
		 JOIN companies c ON c.id = e.company_id AND c.account_id = e.account_id
		 WHERE e.account_id = ? AND e.person_id = ?`,
		accountID, personID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
