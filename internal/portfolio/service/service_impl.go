package service

import (
	"context"
	"strings"

	boardmemberdomain "github.com/atriumhq/atrium/internal/boardmember/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	metricdomain "github.com/atriumhq/atrium/internal/metric/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	"github.com/atriumhq/atrium/internal/portfolio/domain"
	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Metric names the cards surface. Companies reporting under other names
// simply show nothing for these slots.
const (
	metricRevenue   = "Revenue"
	metricBurn      = "Burn"
	metricCash      = "Cash"
	metricHeadcount = "Headcount"
)

type Params struct {
	fx.In

	DB           *gorm.DB
	Log          *zap.Logger
	Companies    companydomain.Service
	People       persondomain.Service
	Investors    investordomain.Service
	Metrics      metricdomain.Service
	Investments  investmentdomain.Repository
	Employments  employmentdomain.Repository
	BoardMembers boardmemberdomain.Repository
}

type Service struct {
	db           *gorm.DB
	log          *zap.Logger
	companies    companydomain.Service
	people       persondomain.Service
	investors    investordomain.Service
	metrics      metricdomain.Service
	investments  investmentdomain.Repository
	employments  employmentdomain.Repository
	boardMembers boardmemberdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:           p.DB,
		log:          p.Log.Named("portfolio.service"),
		companies:    p.Companies,
		people:       p.People,
		investors:    p.Investors,
		metrics:      p.Metrics,
		investments:  p.Investments,
		employments:  p.Employments,
		boardMembers: p.BoardMembers,
	}
}

func (s *Service) Card(ctx context.Context, companyID, investorID string) (domain.Card, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Card{}, domain.ErrInvalidAccount
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if err == companydomain.ErrNotFound {
			return domain.Card{}, domain.ErrNotFound
		}
		if err == companydomain.ErrInvalidID {
			return domain.Card{}, domain.ErrInvalidID
		}
		return domain.Card{}, err
	}

	var investor *investordomain.Investor
	if strings.TrimSpace(investorID) != "" {
		inv, err := s.investors.GetByID(ctx, investorID)
		if err != nil {
			if err == investordomain.ErrNotFound || err == investordomain.ErrInvalidID {
				return domain.Card{}, domain.ErrInvalidID
			}
			return domain.Card{}, err
		}
		investor = &inv
	}
	return s.buildCard(ctx, accountID, company, investor)
}

func (s *Service) buildCard(ctx context.Context, accountID snowflake.ID, company companydomain.Company, investor *investordomain.Investor) (domain.Card, error) {
	card := domain.Card{
		Company: company.View(),
		Board:   []persondomain.View{},
	}

	raised, err := s.investments.TotalRaised(ctx, s.db, accountID, company.ID)
	if err != nil {
		return domain.Card{}, err
	}
	card.TotalRaised = raised

	rounds, err := s.investments.ListByCompany(ctx, s.db, accountID, company.ID)
	if err != nil {
		return domain.Card{}, err
	}
	if len(rounds) > 0 {
		card.FirstRound = roundSummary(&rounds[0])
		card.LastRound = roundSummary(&rounds[len(rounds)-1])
	}

	if investor != nil {
		invested, err := s.investors.TotalInvestmentInCompany(ctx, investor.ID, company.ID)
		if err != nil {
			return domain.Card{}, err
		}
		card.Invested = &invested

		ownership, err := s.investors.CurrentOwnership(ctx, investor.ID, company.ID)
		if err != nil {
			return domain.Card{}, err
		}
		card.Ownership = ownership

		// Through an investor, the first round is the earliest one they
		// joined, not the company's earliest.
		position, err := s.investments.ListByInvestorCompany(ctx, s.db, accountID, investor.ID, company.ID)
		if err != nil {
			return domain.Card{}, err
		}
		held := make(map[snowflake.ID]bool, len(position))
		for i := range position {
			held[position[i].InvestmentID] = true
		}
		card.FirstRound = nil
		for i := range rounds {
			if held[rounds[i].ID] {
				card.FirstRound = roundSummary(&rounds[i])
				break
			}
		}
	}

	for name, slot := range map[string]*domain.MetricSnapshot{
		metricRevenue:   &card.Revenue,
		metricBurn:      &card.Burn,
		metricCash:      &card.Cash,
		metricHeadcount: &card.Headcount,
	} {
		point, err := s.metrics.LastValue(ctx, company.ID, name)
		if err != nil {
			return domain.Card{}, err
		}
		if point != nil {
			v := point.Value
			d := point.Date
			slot.Date = patch.FormatDate(&d)
			slot.Value = &v
		}
	}

	board, err := s.boardViews(ctx, accountID, company.ID)
	if err != nil {
		return domain.Card{}, err
	}
	card.Board = board
	return card, nil
}

func roundSummary(inv *investmentdomain.Investment) *domain.RoundSummary {
	return &domain.RoundSummary{
		Series:    inv.Series,
		Date:      patch.FormatDate(inv.Date),
		Raised:    inv.Raised,
		PostMoney: inv.PostMoney,
	}
}

func (s *Service) Portfolio(ctx context.Context, investorID string) ([]domain.Card, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	investor, err := s.investors.GetByID(ctx, investorID)
	if err != nil {
		if err == investordomain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		if err == investordomain.ErrInvalidID {
			return nil, domain.ErrInvalidID
		}
		return nil, err
	}

	rounds, err := s.investments.ListByInvestor(ctx, s.db, accountID, investor.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[snowflake.ID]bool)
	cards := make([]domain.Card, 0, len(rounds))
	for i := range rounds {
		companyID := rounds[i].CompanyID
		if seen[companyID] {
			continue
		}
		seen[companyID] = true

		company, err := s.companies.GetByID(ctx, companyID.String())
		if err != nil {
			if err == companydomain.ErrNotFound {
				continue
			}
			return nil, err
		}
		card, err := s.buildCard(ctx, accountID, company, &investor)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (s *Service) Team(ctx context.Context, companyID string) ([]persondomain.View, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if err == companydomain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		if err == companydomain.ErrInvalidID {
			return nil, domain.ErrInvalidID
		}
		return nil, err
	}

	employments, err := s.employments.ListByCompany(ctx, s.db, accountID, company.ID)
	if err != nil {
		return nil, err
	}

	personIDs := make([]snowflake.ID, 0, len(employments))
	seen := make(map[snowflake.ID]bool)
	for i := range employments {
		// Departed employees stay in the history but off the team view.
		if !employments[i].Current {
			continue
		}
		if !seen[employments[i].PersonID] {
			seen[employments[i].PersonID] = true
			personIDs = append(personIDs, employments[i].PersonID)
		}
	}
	return s.personViews(ctx, personIDs)
}

func (s *Service) Board(ctx context.Context, companyID string) ([]persondomain.View, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	company, err := s.companies.GetByID(ctx, companyID)
	if err != nil {
		if err == companydomain.ErrNotFound {
			return nil, domain.ErrNotFound
		}
		if err == companydomain.ErrInvalidID {
			return nil, domain.ErrInvalidID
		}
		return nil, err
	}
	return s.boardViews(ctx, accountID, company.ID)
}

func (s *Service) boardViews(ctx context.Context, accountID, companyID snowflake.ID) ([]persondomain.View, error) {
	members, err := s.boardMembers.ListByCompany(ctx, s.db, accountID, companyID)
	if err != nil {
		return nil, err
	}

	personIDs := make([]snowflake.ID, 0, len(members))
	seen := make(map[snowflake.ID]bool)
	for i := range members {
		if !members[i].Current {
			continue
		}
		if !seen[members[i].PersonID] {
			seen[members[i].PersonID] = true
			personIDs = append(personIDs, members[i].PersonID)
		}
	}
	return s.personViews(ctx, personIDs)
}

func (s *Service) personViews(ctx context.Context, personIDs []snowflake.ID) ([]persondomain.View, error) {
	views := make([]persondomain.View, 0, len(personIDs))
	for _, id := range personIDs {
		person, err := s.people.GetByID(ctx, id.String())
		if err != nil {
			if err == persondomain.ErrNotFound {
				continue
			}
			return nil, err
		}
		view, err := s.people.View(ctx, &person)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
