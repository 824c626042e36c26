package domain

import (
	"context"
	"errors"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
)

// RoundSummary is the card's abbreviated view of one financing round.
type RoundSummary struct {
	Series    string   `json:"series"`
	Date      string   `json:"date,omitempty"`
	Raised    *float64 `json:"raised,omitempty"`
	PostMoney *float64 `json:"postMoney,omitempty"`
}

// MetricSnapshot is the latest canonical observation of one named metric.
// A company that never reported the metric renders an empty object.
type MetricSnapshot struct {
	Date  string   `json:"date,omitempty"`
	Value *float64 `json:"value,omitempty"`
}

// Card is the portfolio summary of one company: identity, fundraising
// totals, the investor's position when viewed through an investor, latest
// canonical operating metrics, and the current board. Every derived field
// tolerates absent data; a company with no rounds and no metrics still
// renders a card.
type Card struct {
	Company     companydomain.View  `json:"company"`
	TotalRaised float64             `json:"totalRaised"`
	Invested    *float64            `json:"invested,omitempty"`
	Ownership   *float64            `json:"ownership,omitempty"`
	FirstRound  *RoundSummary       `json:"firstRound,omitempty"`
	LastRound   *RoundSummary       `json:"lastRound,omitempty"`
	Revenue     MetricSnapshot      `json:"revenue"`
	Burn        MetricSnapshot      `json:"burn"`
	Cash        MetricSnapshot      `json:"cash"`
	Headcount   MetricSnapshot      `json:"headcount"`
	Board       []persondomain.View `json:"board"`
}

type Service interface {
	// Card builds the summary for one company. A non-empty investorID adds
	// the investor's position (invested total and current ownership).
	Card(ctx context.Context, companyID, investorID string) (Card, error)
	// Portfolio returns a card per company the investor holds, most recent
	// round first.
	Portfolio(ctx context.Context, investorID string) ([]Card, error)
	// Team projects the people currently employed at a company.
	Team(ctx context.Context, companyID string) ([]persondomain.View, error)
	// Board projects the people holding current board seats at a company.
	Board(ctx context.Context, companyID string) ([]persondomain.View, error)
}

var (
	ErrInvalidAccount = errors.New("invalid_account")
	ErrInvalidID      = errors.New("invalid_id")
	ErrNotFound       = errors.New("not_found")
)
