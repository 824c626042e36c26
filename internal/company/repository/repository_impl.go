package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).Create(company).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, company *domain.Company) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", company.AccountID, company.ID).
		Save(company).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			`DELETE FROM investor_investments
			 WHERE account_id = ? AND investment_id IN
			   (SELECT id FROM investments WHERE account_id = ? AND company_id = ?)`,
			accountID, accountID, id,
		).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			`DELETE FROM metric_values
			 WHERE account_id = ? AND metric_id IN
			   (SELECT id FROM metrics WHERE account_id = ? AND company_id = ?)`,
			accountID, accountID, id,
		).Error; err != nil {
			return err
		}
		tables := []string{"investments", "metrics", "employments", "board_members", "company_tags", "deals"}
		for _, table := range tables {
			if err := tx.Exec(
				`DELETE FROM `+table+` WHERE account_id = ? AND company_id = ?`,
				accountID, id,
			).Error; err != nil {
				return err
			}
		}
		return tx.Exec(
			`DELETE FROM companies WHERE account_id = ? AND id = ?`,
			accountID, id,
		).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*domain.Company, error) {
	var company domain.Company
	err := db.WithContext(ctx).
		Where("account_id = ? AND name = ?", accountID, name).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter domain.ListCompanyFilter, page pagination.Pagination) ([]*domain.Company, error) {
	var companies []*domain.Company
	stmt := db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("account_id = ?", accountID)
	if filter.Name != "" {
		stmt = stmt.Where("name = ?", filter.Name)
	}
	if filter.Sector != "" {
		stmt = stmt.Where("sector = ?", filter.Sector)
	}
	if filter.Segment != "" {
		stmt = stmt.Where("segment = ?", filter.Segment)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err == nil && cursor.ID != "" {
			stmt = stmt.Where("id > ?", cursor.ID)
		}
	}
	if page.PageSize > 0 {
		stmt = stmt.Limit(page.PageSize + 1)
	}
	// Snowflake ids are insertion-ordered, so the keyset cursor and the sort
	// key are the same column.
	err := stmt.
		Order("id asc").
		Find(&companies).Error
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *repo) InsertTag(ctx context.Context, db *gorm.DB, tag *domain.CompanyTag) error {
	return db.WithContext(ctx).Create(tag).Error
}

func (r *repo) DeleteTag(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, tag string) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM company_tags WHERE account_id = ? AND company_id = ? AND tag = ?`,
		accountID, companyID, tag,
	).Error
}

func (r *repo) ListTags(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]domain.CompanyTag, error) {
	var tags []domain.CompanyTag
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ?", accountID, companyID).
		Order("tag asc").
		Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
