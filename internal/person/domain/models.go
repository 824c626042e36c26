package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Person is an individual: founder, employee, investor, or contact. Email is
// globally unique when present; the LinkedIn URL should be unique too but is
// left unconstrained for flexibility around user input.
type Person struct {
	ID          snowflake.ID      `json:"id" gorm:"primaryKey"`
	AccountID   snowflake.ID      `json:"account_id" gorm:"column:account_id;not null;index:ix_people_account"`
	FirstName   string            `json:"first_name" gorm:"type:text;not null"`
	LastName    string            `json:"last_name" gorm:"type:text;not null"`
	Email       *string           `json:"email,omitempty" gorm:"type:text;uniqueIndex:ux_people_email"`
	Location    string            `json:"location,omitempty" gorm:"type:text"`
	Gender      string            `json:"gender,omitempty" gorm:"type:text"`
	Race        string            `json:"race,omitempty" gorm:"type:text"`
	Website     string            `json:"website,omitempty" gorm:"type:text"`
	PhotoURL    string            `json:"photo_url,omitempty" gorm:"column:photo_url;type:text"`
	LinkedinURL string            `json:"linkedin_url,omitempty" gorm:"column:linkedin_url;type:text"`
	Links       datatypes.JSONMap `json:"links,omitempty" gorm:"type:jsonb"`
	CreatedAt   time.Time         `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Person) TableName() string { return "people" }

func (p *Person) FullName() string {
	names := make([]string, 0, 2)
	if p.FirstName != "" {
		names = append(names, p.FirstName)
	}
	if p.LastName != "" {
		names = append(names, p.LastName)
	}
	return strings.Join(names, " ")
}

func (p *Person) EmailValue() string {
	if p.Email == nil {
		return ""
	}
	return *p.Email
}

// PersonTag labels a person within an account.
type PersonTag struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_person_tags,priority:1"`
	PersonID  snowflake.ID `json:"person_id" gorm:"column:person_id;not null;uniqueIndex:ux_person_tags,priority:2"`
	Tag       string       `json:"tag" gorm:"type:text;not null;uniqueIndex:ux_person_tags,priority:3"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PersonTag) TableName() string { return "person_tags" }

// View is the wire projection of a person; Company and Title come from the
// latest employment.
type View struct {
	ID          snowflake.ID `json:"id"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Name        string       `json:"name"`
	Company     string       `json:"company,omitempty"`
	Title       string       `json:"title,omitempty"`
	Location    string       `json:"location,omitempty"`
	Email       string       `json:"email,omitempty"`
	PhotoURL    string       `json:"photoUrl,omitempty"`
	LinkedinURL string       `json:"linkedinUrl,omitempty"`
}
