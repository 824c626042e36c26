package domain

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

type CreateInvestorRequest struct {
	Name      string
	Type      string
	PersonID  string
	CompanyID string
}

type ListInvestorRequest struct {
	PageToken string
	PageSize  int
	Name      string
}

type ListInvestorResponse struct {
	pagination.PageInfo
	Investors []Investor `json:"investors"`
}

type Service interface {
	Create(context.Context, CreateInvestorRequest) (Investor, error)
	// GetOrCreate resolves an investor by (account, name), inserting an
	// unlinked row when absent.
	GetOrCreate(ctx context.Context, name string) (Investor, error)
	GetByID(ctx context.Context, id string) (Investor, error)
	List(context.Context, ListInvestorRequest) (ListInvestorResponse, error)
	// Delete refuses to remove an investor with recorded participation.
	Delete(ctx context.Context, id string) error

	// TotalInvestment sums the investor's invested amounts across all
	// rounds, zero when nothing is recorded.
	TotalInvestment(ctx context.Context, investorID snowflake.ID) (float64, error)
	// TotalInvestmentInCompany narrows TotalInvestment to the investor's
	// rounds in one company.
	TotalInvestmentInCompany(ctx context.Context, investorID, companyID snowflake.ID) (float64, error)
	// CurrentOwnership walks the investor's rounds in a company from newest
	// to oldest and returns the first recorded ownership, nil when none.
	CurrentOwnership(ctx context.Context, investorID, companyID snowflake.ID) (*float64, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidType    = errors.New("invalid_type")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
	ErrProtected      = errors.New("protected")
)
