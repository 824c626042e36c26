package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Account is the tenant boundary. Every data-layer row belongs to exactly one
// account, and each account owns exactly one company record representing the
// customer organization itself.
type Account struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	CompanyID snowflake.ID `json:"company_id" gorm:"column:company_id;not null;uniqueIndex:ux_accounts_company"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Account) TableName() string { return "accounts" }

const (
	RoleInvestor = "Investor"
	RoleFounder  = "Founder"
)

// User is a login identity attached to an account. Authentication itself is
// handled outside the data layer.
type User struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID  `json:"account_id" gorm:"column:account_id;not null;index:ix_users_account"`
	Email     string        `json:"email" gorm:"type:text;not null;uniqueIndex:ux_users_email"`
	Role      string        `json:"role" gorm:"type:text;not null"`
	PersonID  *snowflake.ID `json:"person_id,omitempty" gorm:"column:person_id"`
	IsActive  bool          `json:"is_active" gorm:"not null;default:true"`
	IsAdmin   bool          `json:"is_admin" gorm:"not null;default:false"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
