package domain

import (
	"context"
	"errors"

	"github.com/atriumhq/atrium/pkg/db/pagination"
)

// CreateCompanyRequest carries the camelCase payload fields; only non-empty
// values are written.
type CreateCompanyRequest struct {
	Name                string
	Segment             string
	Sector              string
	Location            string
	LogoURL             string
	Website             string
	Description         string
	CrunchbaseID        string
	CrunchbasePermalink string
}

type UpdateCompanyRequest struct {
	Name                string
	Segment             string
	Sector              string
	Location            string
	LogoURL             string
	Website             string
	Description         string
	CrunchbasePermalink string
}

type ListCompanyRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Sector    string
	Segment   string
}

type ListCompanyResponse struct {
	pagination.PageInfo
	Companies []Company `json:"companies"`
}

type Service interface {
	Create(context.Context, CreateCompanyRequest) (Company, error)
	// GetOrCreate resolves a company by (account, name), inserting a bare row
	// when absent. No fuzzy matching.
	GetOrCreate(ctx context.Context, name string) (Company, error)
	Update(ctx context.Context, id string, req UpdateCompanyRequest) (Company, error)
	GetByID(ctx context.Context, id string) (Company, error)
	List(context.Context, ListCompanyRequest) (ListCompanyResponse, error)
	Delete(ctx context.Context, id string) error

	AddTag(ctx context.Context, id, tag string) error
	RemoveTag(ctx context.Context, id, tag string) error
	Tags(ctx context.Context, id string) ([]CompanyTag, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidTag     = errors.New("invalid_tag")
	ErrNotFound       = errors.New("not_found")
	ErrConflict       = errors.New("conflict")
)
