package service

import (
	"context"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/investment/domain"
	investordomain "github.com/atriumhq/atrium/internal/investor/domain"
	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Repo      domain.Repository
	Investors investordomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	investors investordomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("investment.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		investors: p.Investors,
	}
}

func (s *Service) Upsert(ctx context.Context, req domain.UpsertInvestmentRequest) (domain.Investment, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Investment{}, domain.ErrInvalidAccount
	}

	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return domain.Investment{}, domain.ErrInvalidCompany
	}

	series := strings.TrimSpace(req.Series)
	if series == "" {
		return domain.Investment{}, domain.ErrInvalidSeries
	}

	investment, err := s.repo.FindByCompanySeries(ctx, s.db, accountID, companyID, series)
	if err != nil {
		return domain.Investment{}, err
	}

	now := time.Now().UTC()
	fresh := investment == nil
	if fresh {
		investment = &domain.Investment{
			ID:        s.genID.Generate(),
			AccountID: accountID,
			CompanyID: companyID,
			Series:    series,
			CreatedAt: now,
		}
	}

	patch.Date(&investment.Date, req.Date)
	applyMoney(&investment.Raised, req.Raised)
	applyMoney(&investment.PreMoney, req.PreMoney)
	applyMoney(&investment.PostMoney, req.PostMoney)
	applyMoney(&investment.SharePrice, req.SharePrice)
	applyMoney(&investment.PreferenceMultiple, req.PreferenceMultiple)
	applyMoney(&investment.PreferenceDollars, req.PreferenceDollars)
	applyMoney(&investment.ConversionRatio, req.ConversionRatio)
	if req.Seniority != nil {
		investment.Seniority = req.Seniority
	}
	patch.Field(&investment.Notes, req.Notes)
	investment.UpdatedAt = now

	if fresh {
		err = s.repo.Insert(ctx, s.db, investment)
	} else {
		err = s.repo.Update(ctx, s.db, investment)
	}
	if err != nil {
		return domain.Investment{}, err
	}
	return *investment, nil
}

func applyMoney(dst **float64, src *float64) {
	if src != nil {
		*dst = src
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Investment, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Investment{}, domain.ErrInvalidAccount
	}

	investmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || investmentID == 0 {
		return domain.Investment{}, domain.ErrInvalidID
	}

	investment, err := s.repo.FindByID(ctx, s.db, accountID, investmentID)
	if err != nil {
		return domain.Investment{}, err
	}
	if investment == nil {
		return domain.Investment{}, domain.ErrNotFound
	}
	return *investment, nil
}

func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]domain.View, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	cid, err := snowflake.ParseString(strings.TrimSpace(companyID))
	if err != nil || cid == 0 {
		return nil, domain.ErrInvalidCompany
	}

	investments, err := s.repo.ListByCompany(ctx, s.db, accountID, cid)
	if err != nil {
		return nil, err
	}

	views := make([]domain.View, 0, len(investments))
	for i := range investments {
		participants, err := s.repo.ListParticipants(ctx, s.db, accountID, investments[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, investments[i].View(participants))
	}
	return views, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	investmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || investmentID == 0 {
		return domain.ErrInvalidID
	}

	investment, err := s.repo.FindByID(ctx, s.db, accountID, investmentID)
	if err != nil {
		return err
	}
	if investment == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, investmentID)
}

func (s *Service) AddParticipant(ctx context.Context, req domain.AddParticipantRequest) (domain.InvestorInvestment, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.InvestorInvestment{}, domain.ErrInvalidAccount
	}

	investmentID, err := snowflake.ParseString(strings.TrimSpace(req.InvestmentID))
	if err != nil || investmentID == 0 {
		return domain.InvestorInvestment{}, domain.ErrInvalidID
	}

	investment, err := s.repo.FindByID(ctx, s.db, accountID, investmentID)
	if err != nil {
		return domain.InvestorInvestment{}, err
	}
	if investment == nil {
		return domain.InvestorInvestment{}, domain.ErrNotFound
	}

	investor, err := s.investors.GetOrCreate(ctx, req.Investor)
	if err != nil {
		if err == investordomain.ErrInvalidName {
			return domain.InvestorInvestment{}, domain.ErrInvalidInvestor
		}
		return domain.InvestorInvestment{}, err
	}

	row, err := s.repo.FindParticipant(ctx, s.db, accountID, investmentID, investor.ID)
	if err != nil {
		return domain.InvestorInvestment{}, err
	}

	now := time.Now().UTC()
	fresh := row == nil
	if fresh {
		row = &domain.InvestorInvestment{
			ID:           s.genID.Generate(),
			AccountID:    accountID,
			InvestmentID: investmentID,
			InvestorID:   investor.ID,
			CreatedAt:    now,
		}
	}
	patch.Date(&row.Date, req.Date)
	applyMoney(&row.Invested, req.Invested)
	applyMoney(&row.Ownership, req.Ownership)
	applyMoney(&row.Shares, req.Shares)
	if req.Lead != nil {
		row.Lead = *req.Lead
	}
	row.UpdatedAt = now

	if fresh {
		err = s.repo.InsertParticipant(ctx, s.db, row)
	} else {
		err = s.repo.UpdateParticipant(ctx, s.db, row)
	}
	if err != nil {
		return domain.InvestorInvestment{}, err
	}
	return *row, nil
}

func (s *Service) RemoveParticipant(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	rowID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || rowID == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteParticipant(ctx, s.db, accountID, rowID)
}

func (s *Service) TotalRaised(ctx context.Context, companyID snowflake.ID) (float64, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}
	return s.repo.TotalRaised(ctx, s.db, accountID, companyID)
}

func (s *Service) RoundsByInvestor(ctx context.Context, investorID snowflake.ID) ([]domain.Round, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}
	return s.repo.ListByInvestor(ctx, s.db, accountID, investorID)
}
