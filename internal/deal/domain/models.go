package domain

import (
	"time"

	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/bwmarrin/snowflake"
)

// Deal is pipeline state: a prospective investment being tracked. Deals are
// deliberately unconstrained; the same company can appear in any number of
// them, and every reference is optional and survives the referent's deletion
// by going null.
type Deal struct {
	ID           snowflake.ID  `json:"id" gorm:"primaryKey"`
	AccountID    snowflake.ID  `json:"account_id" gorm:"column:account_id;not null;index:ix_deals_account"`
	Name         string        `json:"name" gorm:"type:text;not null"`
	CompanyID    *snowflake.ID `json:"company_id,omitempty" gorm:"column:company_id"`
	InvestmentID *snowflake.ID `json:"investment_id,omitempty" gorm:"column:investment_id"`
	ReferrerID   *snowflake.ID `json:"referrer_id,omitempty" gorm:"column:referrer_id"`
	OwnerID      *snowflake.ID `json:"owner_id,omitempty" gorm:"column:owner_id"`
	Date         *time.Time    `json:"date,omitempty" gorm:"type:date"`
	Source       string        `json:"source,omitempty" gorm:"type:text"`
	Type         string        `json:"type,omitempty" gorm:"type:text"`
	Status       string        `json:"status,omitempty" gorm:"type:text"`
	Stage        string        `json:"stage,omitempty" gorm:"type:text"`
	CreatedAt    time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Deal) TableName() string { return "deals" }

// Record is a deal joined with the display names of its references.
type Record struct {
	Deal
	CompanyName  string `json:"company_name" gorm:"column:company_name"`
	Series       string `json:"series" gorm:"column:series"`
	ReferrerName string `json:"referrer_name" gorm:"column:referrer_name"`
	OwnerName    string `json:"owner_name" gorm:"column:owner_name"`
}

// View is the wire projection of a deal.
type View struct {
	ID         snowflake.ID `json:"id"`
	Name       string       `json:"name"`
	Company    string       `json:"company,omitempty"`
	Investment string       `json:"investment,omitempty"`
	Referrer   string       `json:"referrer,omitempty"`
	Owner      string       `json:"owner,omitempty"`
	Date       string       `json:"date,omitempty"`
	Source     string       `json:"source,omitempty"`
	Type       string       `json:"type,omitempty"`
	Status     string       `json:"status,omitempty"`
	Stage      string       `json:"stage,omitempty"`
}

func (r *Record) View() View {
	return View{
		ID:         r.ID,
		Name:       r.Name,
		Company:    r.CompanyName,
		Investment: r.Series,
		Referrer:   r.ReferrerName,
		Owner:      r.OwnerName,
		Date:       patch.FormatDate(r.Date),
		Source:     r.Source,
		Type:       r.Type,
		Status:     r.Status,
		Stage:      r.Stage,
	}
}
