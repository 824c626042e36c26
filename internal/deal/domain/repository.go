package domain

import (
	"context"

	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, deal *Deal) error
	Update(ctx context.Context, db *gorm.DB, deal *Deal) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Deal, error)
	// FindRecord resolves the deal with its reference names joined in.
	FindRecord(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Record, error)
	List(ctx context.Context, db *gorm.DB, accountID snowflake.ID, stage string, page pagination.Pagination) ([]*Record, error)
}
