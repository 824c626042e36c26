package service

import (
	"context"
	"strings"

	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	"github.com/atriumhq/atrium/internal/investor/domain"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Investments investmentdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	investments investmentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("investor.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		investments: p.Investments,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateInvestorRequest) (domain.Investor, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Investor{}, domain.ErrInvalidAccount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Investor{}, domain.ErrInvalidName
	}

	var investor domain.Investor
	switch req.Type {
	case domain.TypePerson:
		personID, err := snowflake.ParseString(strings.TrimSpace(req.PersonID))
		if err != nil || personID == 0 {
			return domain.Investor{}, domain.ErrInvalidID
		}
		investor = domain.NewPersonInvestor(s.genID.Generate(), accountID, name, personID)
	case domain.TypeCompany:
		if strings.TrimSpace(req.CompanyID) == "" {
			investor = domain.NewUnlinkedInvestor(s.genID.Generate(), accountID, name)
			break
		}
		companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
		if err != nil || companyID == 0 {
			return domain.Investor{}, domain.ErrInvalidID
		}
		investor = domain.NewCompanyInvestor(s.genID.Generate(), accountID, name, companyID)
	default:
		return domain.Investor{}, domain.ErrInvalidType
	}

	if err := investor.Validate(); err != nil {
		return domain.Investor{}, err
	}
	if err := s.repo.Insert(ctx, s.db, &investor); err != nil {
		if db.IsDuplicateKeyErr(err) {
			existing, findErr := s.repo.FindByName(ctx, s.db, accountID, name)
			if findErr == nil && existing != nil {
				return *existing, nil
			}
		}
		return domain.Investor{}, err
	}
	return investor, nil
}

func (s *Service) GetOrCreate(ctx context.Context, name string) (domain.Investor, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Investor{}, domain.ErrInvalidAccount
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Investor{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, accountID, name)
	if err != nil {
		return domain.Investor{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	investor := domain.NewUnlinkedInvestor(s.genID.Generate(), accountID, name)
	if err := s.repo.Insert(ctx, s.db, &investor); err != nil {
		return domain.Investor{}, err
	}
	return investor, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Investor, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Investor{}, domain.ErrInvalidAccount
	}

	investorID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || investorID == 0 {
		return domain.Investor{}, domain.ErrInvalidID
	}

	investor, err := s.repo.FindByID(ctx, s.db, accountID, investorID)
	if err != nil {
		return domain.Investor{}, err
	}
	if investor == nil {
		return domain.Investor{}, domain.ErrNotFound
	}
	return *investor, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvestorRequest) (domain.ListInvestorResponse, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListInvestorResponse{}, domain.ErrInvalidAccount
	}

	if req.PageSize <= 0 {
		req.PageSize = 50
	}

	investors, err := s.repo.List(ctx, s.db, accountID, req.Name, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return domain.ListInvestorResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(investors, req.PageSize, func(i *domain.Investor) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: i.ID.String()})
		return token
	})

	resp := domain.ListInvestorResponse{PageInfo: *pageInfo}
	for i, inv := range investors {
		if i >= req.PageSize {
			break
		}
		resp.Investors = append(resp.Investors, *inv)
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	investorID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || investorID == 0 {
		return domain.ErrInvalidID
	}

	investor, err := s.repo.FindByID(ctx, s.db, accountID, investorID)
	if err != nil {
		return err
	}
	if investor == nil {
		return domain.ErrNotFound
	}

	count, err := s.investments.CountByInvestor(ctx, s.db, accountID, investorID)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrProtected
	}
	return s.repo.Delete(ctx, s.db, accountID, investorID)
}

func (s *Service) TotalInvestment(ctx context.Context, investorID snowflake.ID) (float64, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}
	return s.investments.TotalInvested(ctx, s.db, accountID, investorID)
}

func (s *Service) TotalInvestmentInCompany(ctx context.Context, investorID, companyID snowflake.ID) (float64, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return 0, domain.ErrInvalidAccount
	}
	return s.investments.TotalInvestedInCompany(ctx, s.db, accountID, investorID, companyID)
}

func (s *Service) CurrentOwnership(ctx context.Context, investorID, companyID snowflake.ID) (*float64, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	rounds, err := s.investments.ListByInvestorCompany(ctx, s.db, accountID, investorID, companyID)
	if err != nil {
		return nil, err
	}
	// Rounds with no recorded ownership are skipped rather than treated as
	// zero; an older round with data beats a newer round without.
	for i := range rounds {
		if rounds[i].Ownership != nil {
			return rounds[i].Ownership, nil
		}
	}
	return nil, nil
}
