package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	TypePerson  = "PERSON"
	TypeCompany = "COMPANY"
)

// Investor is a party that participates in financing rounds. It is a tagged
// union: a PERSON investor references a person row, a COMPANY investor a
// company row, and exactly one of the two references may be set.
type Investor struct {
	ID        snowflake.ID  `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID  `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_investors_name,priority:1"`
	Name      string        `json:"name" gorm:"type:text;not null;uniqueIndex:ux_investors_name,priority:2"`
	Type      string        `json:"type" gorm:"type:text;not null"`
	PersonID  *snowflake.ID `json:"person_id,omitempty" gorm:"column:person_id;uniqueIndex:ux_investors_person"`
	CompanyID *snowflake.ID `json:"company_id,omitempty" gorm:"column:company_id;uniqueIndex:ux_investors_company"`
	CreatedAt time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Investor) TableName() string { return "investors" }

// NewPersonInvestor builds a PERSON investor backed by the given person.
func NewPersonInvestor(id, accountID snowflake.ID, name string, personID snowflake.ID) Investor {
	now := time.Now().UTC()
	return Investor{
		ID:        id,
		AccountID: accountID,
		Name:      name,
		Type:      TypePerson,
		PersonID:  &personID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewCompanyInvestor builds a COMPANY investor backed by the given company.
func NewCompanyInvestor(id, accountID snowflake.ID, name string, companyID snowflake.ID) Investor {
	now := time.Now().UTC()
	return Investor{
		ID:        id,
		AccountID: accountID,
		Name:      name,
		Type:      TypeCompany,
		PersonID:  nil,
		CompanyID: &companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewUnlinkedInvestor builds a COMPANY investor known only by name, the shape
// produced when round ingestion names an investor that does not exist yet.
func NewUnlinkedInvestor(id, accountID snowflake.ID, name string) Investor {
	now := time.Now().UTC()
	return Investor{
		ID:        id,
		AccountID: accountID,
		Name:      name,
		Type:      TypeCompany,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate enforces the union shape.
func (i *Investor) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	switch i.Type {
	case TypePerson:
		if i.CompanyID != nil {
			return ErrInvalidType
		}
	case TypeCompany:
		if i.PersonID != nil {
			return ErrInvalidType
		}
	default:
		return ErrInvalidType
	}
	return nil
}

// View is the wire projection of an investor.
type View struct {
	ID        snowflake.ID `json:"id"`
	Name      string       `json:"name"`
	Type      string       `json:"type"`
	PersonID  string       `json:"personId,omitempty"`
	CompanyID string       `json:"companyId,omitempty"`
}

func (i *Investor) View() View {
	v := View{
		ID:   i.ID,
		Name: i.Name,
		Type: i.Type,
	}
	if i.PersonID != nil {
		v.PersonID = i.PersonID.String()
	}
	if i.CompanyID != nil {
		v.CompanyID = i.CompanyID.String()
	}
	return v
}
