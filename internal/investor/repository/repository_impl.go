package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/investor/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, investor *domain.Investor) error {
	return db.WithContext(ctx).Create(investor).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, investor *domain.Investor) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", investor.AccountID, investor.ID).
		Save(investor).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM investors WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Investor, error) {
	return r.findOne(ctx, db, "account_id = ? AND id = ?", accountID, id)
}

func (r *repo) FindByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*domain.Investor, error) {
	return r.findOne(ctx, db, "account_id = ? AND name = ?", accountID, name)
}

func (r *repo) FindByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) (*domain.Investor, error) {
	return r.findOne(ctx, db, "account_id = ? AND person_id = ?", accountID, personID)
}

func (r *repo) FindByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) (*domain.Investor, error) {
	return r.findOne(ctx, db, "account_id = ? AND company_id = ?", accountID, companyID)
}

func (r *repo) findOne(ctx context.Context, db *gorm.DB, query string, args ...any) (*domain.Investor, error) {
	var investor domain.Investor
	err := db.WithContext(ctx).Where(query, args...).First(&investor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investor, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string, page pagination.Pagination) ([]*domain.Investor, error) {
	query := db.WithContext(ctx).
		Model(&domain.Investor{}).
		Where("account_id = ?", accountID)

	if name != "" {
		query = query.Where("name LIKE ?", "%"+name+"%")
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		query = query.Where("id > ?", cursor.ID)
	}

	// Snowflake ids are insertion-ordered, so the keyset cursor and the sort
	// key are the same column.
	var investors []*domain.Investor
	err := query.
		Order("id asc").
		Limit(page.PageSize + 1).
		Find(&investors).Error
	if err != nil {
		return nil, err
	}
	return investors, nil
}
