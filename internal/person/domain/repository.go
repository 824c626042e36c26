package domain

import (
	"context"

	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListPersonFilter struct {
	Name     string
	Location string
	Tag      string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, person *Person) error
	Update(ctx context.Context, db *gorm.DB, person *Person) error
	// Delete removes the person and dependent employment, board seats and
	// tags; deals referencing the person as referrer or owner are nulled.
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Person, error)
	FindByEmail(ctx context.Context, db *gorm.DB, accountID snowflake.ID, email string) (*Person, error)
	FindByLinkedin(ctx context.Context, db *gorm.DB, accountID snowflake.ID, linkedinURL string) (*Person, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter ListPersonFilter, page pagination.Pagination) ([]*Person, error)

	InsertTag(ctx context.Context, db *gorm.DB, tag *PersonTag) error
	DeleteTag(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID, tag string) error
	ListTags(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]PersonTag, error)
}
