package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

// UpsertInvestmentRequest creates or amends the round keyed by
// (company, series); only the fields present in the payload are written.
type UpsertInvestmentRequest struct {
	CompanyID          string
	Series             string
	Date               string
	Raised             *float64
	PreMoney           *float64
	PostMoney          *float64
	SharePrice         *float64
	PreferenceMultiple *float64
	PreferenceDollars  *float64
	ConversionRatio    *float64
	Seniority          *int
	Notes              string
}

// AddParticipantRequest records an investor's participation in a round. The
// investor is named, not referenced: unknown names create unlinked investors.
type AddParticipantRequest struct {
	InvestmentID string
	Investor     string
	Date         string
	Invested     *float64
	Ownership    *float64
	Shares       *float64
	Lead         *bool
}

type Service interface {
	Upsert(context.Context, UpsertInvestmentRequest) (Investment, error)
	GetByID(ctx context.Context, id string) (Investment, error)
	// ListByCompany returns a company's rounds with their investors, oldest
	// round first.
	ListByCompany(ctx context.Context, companyID string) ([]View, error)
	Delete(ctx context.Context, id string) error

	AddParticipant(context.Context, AddParticipantRequest) (InvestorInvestment, error)
	RemoveParticipant(ctx context.Context, id string) error

	TotalRaised(ctx context.Context, companyID snowflake.ID) (float64, error)
	RoundsByInvestor(ctx context.Context, investorID snowflake.ID) ([]Round, error)
}

var (
	ErrInvalidAccount  = errors.New("invalid_account")
	ErrInvalidCompany  = errors.New("invalid_company")
	ErrInvalidSeries   = errors.New("invalid_series")
	ErrInvalidInvestor = errors.New("invalid_investor")
	ErrInvalidID       = errors.New("invalid_id")
	ErrNotFound        = errors.New("not_found")
)
