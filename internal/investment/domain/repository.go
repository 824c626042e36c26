package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, investment *Investment) error
	Update(ctx context.Context, db *gorm.DB, investment *Investment) error
	// Delete removes the round and its participation rows.
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Investment, error)
	// FindByCompanySeries is the upsert key for round ingestion.
	FindByCompanySeries(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, series string) (*Investment, error)
	// ListByCompany returns a company's rounds ordered by date ascending,
	// nulls last.
	ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]Investment, error)
	// TotalRaised sums the raised amounts across a company's rounds, zero
	// when nothing is recorded.
	TotalRaised(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) (float64, error)

	InsertParticipant(ctx context.Context, db *gorm.DB, row *InvestorInvestment) error
	UpdateParticipant(ctx context.Context, db *gorm.DB, row *InvestorInvestment) error
	DeleteParticipant(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindParticipant(ctx context.Context, db *gorm.DB, accountID, investmentID, investorID snowflake.ID) (*InvestorInvestment, error)
	// ListParticipants returns a round's investors, leads first, then by
	// invested amount descending.
	ListParticipants(ctx context.Context, db *gorm.DB, accountID, investmentID snowflake.ID) ([]Participant, error)
	// CountByInvestor reports how many participation rows reference the
	// investor; a non-zero count blocks investor deletion.
	CountByInvestor(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) (int64, error)
	// ListByInvestor returns the investor's participation rows joined with
	// their rounds, newest first by participation date, falling back to the
	// round date, nulls last.
	ListByInvestor(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) ([]Round, error)
	// ListByInvestorCompany narrows ListByInvestor to one company.
	ListByInvestorCompany(ctx context.Context, db *gorm.DB, accountID, investorID, companyID snowflake.ID) ([]Round, error)
	// TotalInvested sums the invested amounts across the investor's rows,
	// zero when nothing is recorded.
	TotalInvested(ctx context.Context, db *gorm.DB, accountID, investorID snowflake.ID) (float64, error)
	// TotalInvestedInCompany narrows TotalInvested to rounds of one company.
	TotalInvestedInCompany(ctx context.Context, db *gorm.DB, accountID, investorID, companyID snowflake.ID) (float64, error)
}
