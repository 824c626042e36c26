package domain

import (
	"context"

	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, investor *Investor) error
	Update(ctx context.Context, db *gorm.DB, investor *Investor) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Investor, error)
	FindByName(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string) (*Investor, error)
	FindByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) (*Investor, error)
	FindByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) (*Investor, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, name string, page pagination.Pagination) ([]*Investor, error)
}
