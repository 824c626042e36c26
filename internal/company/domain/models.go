package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company is an organization: a portfolio company, a prospect, or an entity
// acting as an investor.
type Company struct {
	ID                  snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID           snowflake.ID `json:"account_id" gorm:"column:account_id;not null;index:ix_companies_account"`
	Name                string       `json:"name" gorm:"type:text;not null"`
	Location            string       `json:"location,omitempty" gorm:"type:text"`
	Website             string       `json:"website,omitempty" gorm:"type:text"`
	Segment             string       `json:"segment,omitempty" gorm:"type:text"`
	Sector              string       `json:"sector,omitempty" gorm:"type:text"`
	LogoURL             string       `json:"logo_url,omitempty" gorm:"column:logo_url;type:text"`
	Description         string       `json:"description,omitempty" gorm:"type:text"`
	CrunchbaseID        *string      `json:"crunchbase_id,omitempty" gorm:"column:crunchbase_id;type:text;uniqueIndex:ux_companies_crunchbase"`
	CrunchbasePermalink string       `json:"crunchbase_permalink,omitempty" gorm:"type:text"`
	CreatedAt           time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt           time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Company) TableName() string { return "companies" }

// CompanyTag labels a company within an account.
type CompanyTag struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_company_tags,priority:1"`
	CompanyID snowflake.ID `json:"company_id" gorm:"column:company_id;not null;uniqueIndex:ux_company_tags,priority:2"`
	Tag       string       `json:"tag" gorm:"type:text;not null;uniqueIndex:ux_company_tags,priority:3"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (CompanyTag) TableName() string { return "company_tags" }

// View is the wire projection of a company.
type View struct {
	ID       snowflake.ID `json:"id"`
	Name     string       `json:"name"`
	Segment  string       `json:"segment,omitempty"`
	Sector   string       `json:"sector,omitempty"`
	Location string       `json:"location,omitempty"`
	Website  string       `json:"website,omitempty"`
	LogoURL  string       `json:"logoUrl,omitempty"`
}

func (c *Company) View() View {
	return View{
		ID:       c.ID,
		Name:     c.Name,
		Segment:  c.Segment,
		Sector:   c.Sector,
		Location: c.Location,
		Website:  c.Website,
		LogoURL:  c.LogoURL,
	}
}
