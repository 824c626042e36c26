package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, member *BoardMember) error
	Update(ctx context.Context, db *gorm.DB, member *BoardMember) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*BoardMember, error)
	ListByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]Record, error)
	// ListByCompany returns the seats on a company's board, current first.
	ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]BoardMember, error)
}
