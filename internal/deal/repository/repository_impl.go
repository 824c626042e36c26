package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/deal/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const recordSelect = `
	SELECT d.*,
	       COALESCE(c.name, '') AS company_name,
	       COALESCE(inv.series, '') AS series,
	       COALESCE(TRIM(rp.first_name || ' ' || rp.last_name), '') AS referrer_name,
	       COALESCE(TRIM(op.first_name || ' ' || op.last_name), '') AS owner_name
	FROM deals d
	LEFT JOIN companies c ON c.id = d.company_id AND c.account_id = d.account_id
	LEFT JOIN investments inv ON inv.id = d.investment_id AND inv.account_id = d.account_id
	LEFT JOIN people rp ON rp.id = d.referrer_id AND rp.account_id = d.account_id
	LEFT JOIN people op ON op.id = d.owner_id AND op.account_id = d.account_id`

func (r *repo) Insert(ctx context.Context, db *gorm.DB, deal *domain.Deal) error {
	return db.WithContext(ctx).Create(deal).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, deal *domain.Deal) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", deal.AccountID, deal.ID).
		Save(deal).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM deals WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Deal, error) {
	var deal domain.Deal
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&deal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

func (r *repo) FindRecord(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Record, error) {
	var records []domain.Record
	err := db.WithContext(ctx).Raw(
		recordSelect+` WHERE d.account_id = ? AND d.id = ?`,
		accountID, id,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, stage string, page pagination.Pagination) ([]*domain.Record, error) {
	query := recordSelect + ` WHERE d.account_id = ?`
	args := []any{accountID}

	if stage != "" {
		query += ` AND d.stage = ?`
		args = append(args, stage)
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, err
		}
		query += ` AND d.id > ?`
		args = append(args, cursor.ID)
	}
	query += ` ORDER BY d.id ASC LIMIT ?`
	args = append(args, page.PageSize+1)

	var records []*domain.Record
	err := db.WithContext(ctx).Raw(query, args...).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
