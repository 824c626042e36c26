package domain

import (
	"context"

	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ListCompanyFilter struct {
	Name    string
	Sector  string
	Segment string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, company *Company) error
	Update(ctx context.Context, db *gorm.DB, company *Company) error
	// Delete removes the company and every dependent row (employment, board
	// seats, metrics and their values, investments and their participations,
	// tags, deals).
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Company, error)
	FindByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*Company, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, filter ListCompanyFilter, page pagination.Pagination) ([]*Company, error)

	InsertTag(ctx context.Context, db *gorm.DB, tag *CompanyTag) error
	DeleteTag(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID, tag string) error
	ListTags(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]CompanyTag, error)
}
