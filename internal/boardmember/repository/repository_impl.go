package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/boardmember/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, member *domain.BoardMember) error {
	return db.WithContext(ctx).Create(member).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, member *domain.BoardMember) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", member.AccountID, member.ID).
		Save(member).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM board_members WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.BoardMember, error) {
	var member domain.BoardMember
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &member, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]domain.BoardMember, error) {
	var members []domain.BoardMember
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ?", accountID, companyID).
		Order("current desc, start_date asc, id asc").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

func (r *repo) ListByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]domain.Record, error) {
	var records []domain.Record
	err := db.WithContext(ctx).Raw(
		`SELECT b.*, c.name AS company_name
		 FROM board_members b
		 JOIN companies c ON c.id = b.company_id AND c.account_id = b.account_id
		 WHERE b.account_id = ? AND b.person_id = ?`,
		accountID, personID,
	).Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
