package domain

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/pkg/db/pagination"
)

// CreateDealRequest carries the inbound payload; every reference is an
// optional ID that must resolve when present.
type CreateDealRequest struct {
	Name         string
	CompanyID    string
	InvestmentID string
	ReferrerID   string
	OwnerID      string
	Date         string
	Source       string
	Type         string
	Status       string
	Stage        string
}

type UpdateDealRequest struct {
	Name         string
	CompanyID    string
	InvestmentID string
	ReferrerID   string
	OwnerID      string
	Date         string
	Source       string
	Type         string
	Status       string
	Stage        string
}

type ListDealRequest struct {
	PageToken string
	PageSize  int
	Stage     string
}

type ListDealResponse struct {
	pagination.PageInfo
	Deals []View `json:"deals"`
}

type Service interface {
	Create(context.Context, CreateDealRequest) (Record, error)
	Update(ctx context.Context, id string, req UpdateDealRequest) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	List(context.Context, ListDealRequest) (ListDealResponse, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount   = errors.New("invalid_account")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidReference = errors.New("invalid_reference")
	ErrNotFound         = errors.New("not_found")
)
