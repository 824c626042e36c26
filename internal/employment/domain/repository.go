package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, employment *Employment) error
	Update(ctx context.Context, db *gorm.DB, employment *Employment) error
	Delete(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) error
	FindByID(ctx context.Context, db *gorm.DB, accountID, id snowflake.ID) (*Employment, error)
	// FindByPersonCompanyTitle is the idempotency key for the
	// create-person-with-employment side effect.
	FindByPersonCompanyTitle(ctx context.Context, db *gorm.DB, accountID, personID, companyID snowflake.ID, title string) (*Employment, error)
	FindCurrent(ctx context.Context, db *gorm.DB, accountID, personID, companyID snowflake.ID) (*Employment, error)
	ListByPerson(ctx context.Context, db *gorm.DB, accountID, personID snowflake.ID) ([]Record, error)
	// ListByCompany returns the company's employment rows, the raw material
	// for team rosters.
	ListByCompany(ctx context.Context, db *gorm.DB, accountID, companyID snowflake.ID) ([]Employment, error)
}
