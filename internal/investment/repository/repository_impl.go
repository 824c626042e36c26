package repository

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/internal/investment/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, investment *domain.Investment) error {
	return db.WithContext(ctx).Create(investment).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, investment *domain.Investment) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", investment.AccountID, investment.ID).
		Save(investment).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(`DELETE FROM investor_investments WHERE account_id = ? AND investment_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		if err := tx.Exec(`UPDATE deals SET investment_id = NULL WHERE account_id = ? AND investment_id = ?`, accountID, id).Error; err != nil {
			return err
		}
		return tx.Exec(`DELETE FROM investments WHERE account_id = ? AND id = ?`, accountID, id).Error
	})
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*domain.Investment, error) {
	var investment domain.Investment
	err := db.WithContext(ctx).
		Where("account_id = ? AND id = ?", accountID, id).
		First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investment, nil
}

func (r *repo) FindByCompanySeries(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, series string) (*domain.Investment, error) {
	var investment domain.Investment
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ? AND series = ?", accountID, companyID, series).
		First(&investment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &investment, nil
}

func (r *repo) ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]domain.Investment, error) {
	var investments []domain.Investment
	err := db.WithContext(ctx).
		Where("account_id = ? AND company_id = ?", accountID, companyID).
		Order("date IS NULL, date asc, id asc").
		Find(&investments).Error
	if err != nil {
		return nil, err
	}
	return investments, nil
}

func (r *repo) TotalRaised(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(raised), 0) FROM investments WHERE account_id = ? AND company_id = ?`,
		accountID, companyID,
	).Scan(&total).Error
	return total, err
}

func (r *repo) InsertParticipant(ctx context.Context, db *gorm.DB, row *domain.InvestorInvestment) error {
	return db.WithContext(ctx).Create(row).Error
}

func (r *repo) UpdateParticipant(ctx context.Context, db *gorm.DB, row *domain.InvestorInvestment) error {
	return db.WithContext(ctx).
		Where("account_id = ? AND id = ?", row.AccountID, row.ID).
		Save(row).Error
}

func (r *repo) DeleteParticipant(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(
		`DELETE FROM investor_investments WHERE account_id = ? AND id = ?`,
		accountID, id,
	).Error
}

func (r *repo) FindParticipant(ctx context.Context, db *gorm.DB, accountID, investmentID, investorID snowflake.ID) (*domain.InvestorInvestment, error) {
	var row domain.InvestorInvestment
	err := db.WithContext(ctx).
		Where("account_id = ? AND investment_id = ? AND investor_id = ?", accountID, investmentID, investorID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *repo) ListParticipants(ctx context.Context, db *gorm.DB, accountID, investmentID snowflake.ID) ([]domain.Participant, error) {
	var rows []domain.Participant
	err := db.WithContext(ctx).Raw(
		`SELECT ii.*, i.name AS investor_name
		 FROM investor_investments ii
		 JOIN investors i ON i.id = ii.investor_id AND i.account_id = ii.account_id
		 WHERE ii.account_id = ? AND ii.investment_id = ?
		 ORDER BY ii.lead DESC, ii.invested DESC, i.name ASC`,
		accountID, investmentID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) CountByInvestor(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.InvestorInvestment{}).
		Where("account_id = ? AND investor_id = ?", accountID, investorID).
		Count(&count).Error
	return count, err
}

func (r *repo) ListByInvestor(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) ([]domain.Round, error) {
	var rounds []domain.Round
	err := db.WithContext(ctx).Raw(
		`SELECT ii.*, inv.company_id, inv.series, inv.date AS round_date
		 FROM investor_investments ii
		 JOIN investments inv ON inv.id = ii.investment_id AND inv.account_id = ii.account_id
		 WHERE ii.account_id = ? AND ii.investor_id = ?
		 ORDER BY ii.date IS NULL, ii.date DESC, inv.date IS NULL, inv.date DESC, ii.id DESC`,
		accountID, investorID,
	).Scan(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *repo) ListByInvestorCompany(ctx context.Context, db *gorm.DB, accountID, investorID, companyID snowflake.ID) ([]domain.Round, error) {
	var rounds []domain.Round
	err := db.WithContext(ctx).Raw(
		`SELECT ii.*, inv.company_id, inv.series, inv.date AS round_date
		 FROM investor_investments ii
		 JOIN investments inv ON inv.id = ii.investment_id AND inv.account_id = ii.account_id
		 WHERE ii.account_id = ? AND ii.investor_id = ? AND inv.company_id = ?
		 ORDER BY ii.date IS NULL, ii.date DESC, inv.date IS NULL, inv.date DESC, ii.id DESC`,
		accountID, investorID, companyID,
	).Scan(&rounds).Error
	if err != nil {
		return nil, err
	}
	return rounds, nil
}

func (r *repo) TotalInvested(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(invested), 0) FROM investor_investments WHERE account_id = ? AND investor_id = ?`,
		accountID, investorID,
	).Scan(&total).Error
	return total, err
}

func (r *repo) TotalInvestedInCompany(ctx context.Context, db *gorm.DB, accountID, investorID, companyID snowflake.ID) (float64, error) {
	var total float64
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(ii.invested), 0)
		 FROM investor_investments ii
		 JOIN investments inv ON inv.id = ii.investment_id AND inv.account_id = ii.account_id
		 WHERE ii.account_id = ? AND ii.investor_id = ? AND inv.company_id = ?`,
		accountID, investorID, companyID,
	).Scan(&total).Error
	return total, err
}
