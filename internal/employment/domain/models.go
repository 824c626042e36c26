package domain

import (
	"sort"
	"time"

	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/bwmarrin/snowflake"
)

// Employment is one entry in a person's work history. There is deliberately
// no uniqueness constraint: the same (person, company) pair may recur across
// time with different titles or dates.
type Employment struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID snowflake.ID `json:"account_id" gorm:"column:account_id;not null;index:ix_employments_account"`
	PersonID  snowflake.ID `json:"person_id" gorm:"column:person_id;not null;index:ix_employments_person"`
	CompanyID snowflake.ID `json:"company_id" gorm:"column:company_id;not null;index:ix_employments_company"`
	Title     string       `json:"title,omitempty" gorm:"type:text"`
	Location  string       `json:"location,omitempty" gorm:"type:text"`
	StartDate *time.Time   `json:"start_date,omitempty" gorm:"type:date"`
	EndDate   *time.Time   `json:"end_date,omitempty" gorm:"type:date"`
	Current   bool         `json:"current" gorm:"not null;default:false"`
	Notes     string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Employment) TableName() string { return "employments" }

// Record is an employment row joined with its company name, the unit the
// timeline ordering and wire projection operate on.
type Record struct {
	Employment
	CompanyName string `json:"company_name" gorm:"column:company_name"`
}

// View is the wire projection of an employment row.
type View struct {
	ID        snowflake.ID `json:"id"`
	Company   string       `json:"company"`
	Title     string       `json:"title,omitempty"`
	Location  string       `json:"location,omitempty"`
	StartDate string       `json:"startDate,omitempty"`
	EndDate   string       `json:"endDate,omitempty"`
	Notes     string       `json:"notes,omitempty"`
}

func (r *Record) View() View {
	return View{
		ID:        r.ID,
		Company:   r.CompanyName,
		Title:     r.Title,
		Location:  r.Location,
		StartDate: patch.FormatDate(r.StartDate),
		EndDate:   patch.FormatDate(r.EndDate),
		Notes:     r.Notes,
	}
}

// Order merges a person's employment rows into a single timeline. The rows
// are partitioned into three disjoint buckets: explicitly current, ongoing
// (null end date, not current), and ended. Each bucket is sorted by end date,
// start date, company name and title with nulls last, then the buckets are
// concatenated as ended, ongoing, current. The bucket priority is the
// heuristic for "what is this person doing now" over partially filled
// historical data.
func Order(records []Record) []Record {
	var current, ongoing, ended []Record
	for _, r := range records {
		switch {
		case r.Current:
			current = append(current, r)
		case r.EndDate == nil:
			ongoing = append(ongoing, r)
		default:
			ended = append(ended, r)
		}
	}
	sortRecords(current)
	sortRecords(ongoing)
	sortRecords(ended)

	out := make([]Record, 0, len(records))
	out = append(out, ended...)
	out = append(out, ongoing...)
	out = append(out, current...)
	return out
}

// Latest returns the best "present" employment: the last row of the current
// bucket, else of the ongoing bucket, else of the ended bucket.
func Latest(records []Record) *Record {
	var current, ongoing, ended []Record
	for _, r := range records {
		switch {
		case r.Current:
			current = append(current, r)
		case r.EndDate == nil:
			ongoing = append(ongoing, r)
		default:
			ended = append(ended, r)
		}
	}
	for _, bucket := range [][]Record{current, ongoing, ended} {
		if len(bucket) == 0 {
			continue
		}
		sortRecords(bucket)
		last := bucket[len(bucket)-1]
		return &last
	}
	return nil
}

func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if c := compareDates(records[i].EndDate, records[j].EndDate); c != 0 {
			return c < 0
		}
		if c := compareDates(records[i].StartDate, records[j].StartDate); c != 0 {
			return c < 0
		}
		if records[i].CompanyName != records[j].CompanyName {
			return records[i].CompanyName < records[j].CompanyName
		}
		return records[i].Title < records[j].Title
	})
}

// compareDates orders ascending with nulls last, matching the relational
// engine's default.
func compareDates(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	default:
		return 0
	}
}
