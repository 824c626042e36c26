package domain

import (
	"time"

	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/bwmarrin/snowflake"
)

// BoardMember is a person's board seat at a company. Like Employment there is
// no uniqueness constraint, so a member can leave and come back; uniqueness
// of (account, person, company, current=true) is a documented convention, not
// an enforced one.
type BoardMember struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID `json:"account_id" gorm:"column:account_id;not null;index:ix_board_members_account"`
	PersonID  snowflake.ID `json:"person_id" gorm:"column:person_id;not null;index:ix_board_members_person"`
	CompanyID snowflake.ID `json:"company_id" gorm:"column:company_id;not null;index:ix_board_members_company"`
	Location  string       `json:"location,omitempty" gorm:"type:text"`
	StartDate *time.Time   `json:"start_date,omitempty" gorm:"type:date"`
	EndDate   *time.Time   `json:"end_date,omitempty" gorm:"type:date"`
	Current   bool         `json:"current" gorm:"not null;default:true"`
	Notes     string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (BoardMember) TableName() string { return "board_members" }

// Record is a board seat joined with the board company's name.
type Record struct {
	BoardMember
	CompanyName string `json:"company_name" gorm:"column:company_name"`
}

// View is the wire projection of a board seat. Company and title come from
// the member's latest employment, not from the board company: the consumer
// wants to know what the director does for a living.
type View struct {
	ID        snowflake.ID `json:"id"`
	Company   string       `json:"company,omitempty"`
	Title     string       `json:"title,omitempty"`
	Location  string       `json:"location,omitempty"`
	StartDate string       `json:"startDate,omitempty"`
	EndDate   string       `json:"endDate,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

func (r *Record) View(latest *employmentdomain.Record) View {
	view := View{
		ID:        r.ID,
		Location:  r.Location,
		StartDate: patch.FormatDate(r.StartDate),
		EndDate:   patch.FormatDate(r.EndDate),
		Notes:     r.Notes,
	}
	if latest != nil {
		view.Company = latest.CompanyName
		view.Title = latest.Title
	}
	return view
}
