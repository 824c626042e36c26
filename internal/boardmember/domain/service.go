package domain

import (
	"context"
	"errors"
)

type CreateBoardMemberRequest struct {
	PersonID  string
	Company   string
	Location  string
	StartDate string
	EndDate   string
	Notes     string
}

type UpdateBoardMemberRequest struct {
	Company   string
	Location  string
	StartDate string
	EndDate   string
	Notes     string
}

type Service interface {
	Create(context.Context, CreateBoardMemberRequest) (Record, error)
	Update(ctx context.Context, id string, req UpdateBoardMemberRequest) (Record, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidPerson  = errors.New("invalid_person")
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
