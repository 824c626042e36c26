package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, account *Account) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Account, error)
	InsertUser(ctx context.Context, db *gorm.DB, user *User) error
	ListUsers(ctx context.Context, db *gorm.DB, accountID snowflake.ID) ([]User, error)
}
