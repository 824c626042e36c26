package domain

import (
	"context"
	"errors"

	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
)

// CreatePersonRequest carries the inbound payload. Company and Title are
// convenience fields: when Company is set, the matching company row is
// resolved (or created) and an employment row is attached.
type CreatePersonRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Title       string
	Location    string
	Gender      string
	Race        string
	Website     string
	PhotoURL    string
	LinkedinURL string
	Links       map[string]any
}

type UpdatePersonRequest struct {
	FirstName   string
	LastName    string
	Email       string
	Location    string
	Gender      string
	Race        string
	Website     string
	PhotoURL    string
	LinkedinURL string
	Links       map[string]any
}

type ListPersonRequest struct {
	PageToken string
	PageSize  int
	Name      string
	Location  string
	Tag       string
}

type ListPersonResponse struct {
	pagination.PageInfo
	People []Person `json:"people"`
}

type Service interface {
	// Create upserts by identity: an existing person with the same email
	// wins, then the same LinkedIn URL, otherwise a new row is inserted.
	// Matched rows are updated with the non-empty request fields.
	Create(context.Context, CreatePersonRequest) (Person, error)
	Update(ctx context.Context, id string, req UpdatePersonRequest) (Person, error)
	GetByID(ctx context.Context, id string) (Person, error)
	List(context.Context, ListPersonRequest) (ListPersonResponse, error)
	Delete(ctx context.Context, id string) error

	// Experience is the person's full employment timeline in display order.
	Experience(ctx context.Context, id string) ([]employmentdomain.Record, error)
	LatestEmployment(ctx context.Context, personID snowflake.ID) (*employmentdomain.Record, error)
	// View projects a person for the wire, company and title resolved from
	// the latest employment.
	View(ctx context.Context, person *Person) (View, error)

	AddTag(ctx context.Context, id, tag string) error
	RemoveTag(ctx context.Context, id, tag string) error
	Tags(ctx context.Context, id string) ([]PersonTag, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidName    = errors.New("invalid_name")
	ErrInvalidID      = errors.New("invalid_id")
	ErrInvalidTag     = errors.New("invalid_tag")
	ErrNotFound       = errors.New("not_found")
)
