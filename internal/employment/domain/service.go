package domain

import (
	"context"
	"errors"
)

// CreateEmploymentRequest carries the camelCase payload; Company is a company
// name resolved by get-or-create, date strings are YYYY-MM-DD.
type CreateEmploymentRequest struct {
	PersonID  string
	Company   string
	Title     string
	Location  string
	StartDate string
	EndDate   string
	Current   bool
	Notes     string
}

type UpdateEmploymentRequest struct {
	Company   string
	Title     string
	Location  string
	StartDate string
	EndDate   string
	Notes     string
}

type Service interface {
	Create(context.Context, CreateEmploymentRequest) (Record, error)
	Update(ctx context.Context, id string, req UpdateEmploymentRequest) (Record, error)
	Delete(ctx context.Context, id string) error
	// SetCurrent upserts the single current employment for (person, company),
	// patching the title when supplied.
	SetCurrent(ctx context.Context, personID, companyID string, title string) (Employment, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidPerson  = errors.New("invalid_person")
	ErrInvalidCompany = errors.New("invalid_company")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
