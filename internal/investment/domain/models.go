package domain

import (
	"time"

	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/bwmarrin/snowflake"
)

// Investment is one financing round of a company, identified by its series
// label. A company has at most one row per series.
type Investment struct {
	ID                 snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID          snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_investments_series,priority:1"`
	CompanyID          snowflake.ID `json:"company_id" gorm:"column:company_id;not null;uniqueIndex:ux_investments_series,priority:2"`
	Series             string       `json:"series" gorm:"type:text;not null;uniqueIndex:ux_investments_series,priority:3"`
	Date               *time.Time   `json:"date,omitempty" gorm:"type:date"`
	Raised             *float64     `json:"raised,omitempty"`
	PreMoney           *float64     `json:"pre_money,omitempty" gorm:"column:pre_money"`
	PostMoney          *float64     `json:"post_money,omitempty" gorm:"column:post_money"`
	SharePrice         *float64     `json:"share_price,omitempty" gorm:"column:share_price"`
	PreferenceMultiple *float64     `json:"preference_multiple,omitempty" gorm:"column:preference_multiple"`
	PreferenceDollars  *float64     `json:"preference_dollars,omitempty" gorm:"column:preference_dollars"`
	ConversionRatio    *float64     `json:"conversion_ratio,omitempty" gorm:"column:conversion_ratio"`
	Seniority          *int         `json:"seniority,omitempty"`
	Notes              string       `json:"notes,omitempty" gorm:"type:text"`
	CreatedAt          time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt          time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Investment) TableName() string { return "investments" }

// InvestorInvestment is an investor's participation in a round. One row per
// (investment, investor); rows cascade with their investment but block
// deletion of their investor.
type InvestorInvestment struct {
	ID           snowflake.ID `json:"id" gorm:"primaryKey"`
	AccountID    snowflake.ID `json:"account_id" gorm:"column:account_id;not null;uniqueIndex:ux_investor_investments,priority:1"`
	InvestmentID snowflake.ID `json:"investment_id" gorm:"column:investment_id;not null;uniqueIndex:ux_investor_investments,priority:2"`
	InvestorID   snowflake.ID `json:"investor_id" gorm:"column:investor_id;not null;uniqueIndex:ux_investor_investments,priority:3"`
	Date         *time.Time   `json:"date,omitempty" gorm:"type:date"`
	Invested     *float64     `json:"invested,omitempty"`
	Ownership    *float64     `json:"ownership,omitempty"`
	Shares       *float64     `json:"shares,omitempty"`
	Lead         bool         `json:"lead" gorm:"not null;default:false"`
	CreatedAt    time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (InvestorInvestment) TableName() string { return "investor_investments" }

// Round is a participation row joined with its round's identifying fields,
// the unit ownership and portfolio queries operate on.
type Round struct {
	InvestorInvestment
	CompanyID snowflake.ID `json:"company_id" gorm:"column:company_id"`
	Series    string       `json:"series" gorm:"column:series"`
	// RoundDate is the investment's date; the embedded row carries its own
	// nullable participation date.
	RoundDate *time.Time `json:"round_date,omitempty" gorm:"column:round_date"`
}

// Participant is a participation row joined with the investor's name for the
// wire projection of a round.
type Participant struct {
	InvestorInvestment
	InvestorName string `json:"investor_name" gorm:"column:investor_name"`
}

// ParticipantView is the wire shape of one investor within a round.
type ParticipantView struct {
	ID        snowflake.ID `json:"id"`
	Investor  string       `json:"investor"`
	Invested  *float64     `json:"invested,omitempty"`
	Ownership *float64     `json:"ownership,omitempty"`
	Shares    *float64     `json:"shares,omitempty"`
	Lead      bool         `json:"lead"`
}

func (p *Participant) View() ParticipantView {
	return ParticipantView{
		ID:        p.InvestorInvestment.ID,
		Investor:  p.InvestorName,
		Invested:  p.Invested,
		Ownership: p.Ownership,
		Shares:    p.Shares,
		Lead:      p.Lead,
	}
}

// View is the wire projection of a round.
type View struct {
	ID                 snowflake.ID      `json:"id"`
	Series             string            `json:"series"`
	Date               string            `json:"date,omitempty"`
	Raised             *float64          `json:"raised,omitempty"`
	PreMoney           *float64          `json:"preMoney,omitempty"`
	PostMoney          *float64          `json:"postMoney,omitempty"`
	SharePrice         *float64          `json:"sharePrice,omitempty"`
	PreferenceMultiple *float64          `json:"preferenceMultiple,omitempty"`
	PreferenceDollars  *float64          `json:"preferenceDollars,omitempty"`
	ConversionRatio    *float64          `json:"conversionRatio,omitempty"`
	Seniority          *int              `json:"seniority,omitempty"`
	Investors          []ParticipantView `json:"investors"`
}

func (inv *Investment) View(participants []Participant) View {
	v := View{
		ID:                 inv.ID,
		Series:             inv.Series,
		Date:               patch.FormatDate(inv.Date),
		Raised:             inv.Raised,
		PreMoney:           inv.PreMoney,
		PostMoney:          inv.PostMoney,
		SharePrice:         inv.SharePrice,
		PreferenceMultiple: inv.PreferenceMultiple,
		PreferenceDollars:  inv.PreferenceDollars,
		ConversionRatio:    inv.ConversionRatio,
		Seniority:          inv.Seniority,
		Investors:          make([]ParticipantView, 0, len(participants)),
	}
	for i := range participants {
		v.Investors = append(v.Investors, participants[i].View())
	}
	return v
}
