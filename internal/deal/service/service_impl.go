package service

import (
	"context"
	"errors"
	"strings"
	"time"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/deal/domain"
	investmentdomain "github.com/atriumhq/atrium/internal/investment/domain"
	persondomain "github.com/atriumhq/atrium/internal/person/domain"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/atriumhq/atrium/pkg/patch"
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
	Companies   companydomain.Service
	Investments investmentdomain.Service
	People      persondomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	companies   companydomain.Service
	investments investmentdomain.Service
	people      persondomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("deal.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		companies:   p.Companies,
		investments: p.Investments,
		people:      p.People,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateDealRequest) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Record{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	deal := domain.Deal{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		Name:      name,
		Source:    req.Source,
		Type:      req.Type,
		Status:    req.Status,
		Stage:     req.Stage,
		CreatedAt: now,
		UpdatedAt: now,
	}
	patch.Date(&deal.Date, req.Date)
	if err := s.applyReferences(ctx, &deal, req.CompanyID, req.InvestmentID, req.ReferrerID, req.OwnerID); err != nil {
		return domain.Record{}, err
	}

	if err := s.repo.Insert(ctx, s.db, &deal); err != nil {
		return domain.Record{}, err
	}
	return s.record(ctx, accountID, deal.ID)
}

// applyReferences resolves the optional ID fields, failing on references that
// do not exist rather than storing dangling IDs.
func (s *Service) applyReferences(ctx context.Context, deal *domain.Deal, companyID, investmentID, referrerID, ownerID string) error {
	if strings.TrimSpace(companyID) != "" {
		company, err := s.companies.GetByID(ctx, companyID)
		if err != nil {
			return referenceErr(err)
		}
		deal.CompanyID = &company.ID
	}
	if strings.TrimSpace(investmentID) != "" {
		investment, err := s.investments.GetByID(ctx, investmentID)
		if err != nil {
			return referenceErr(err)
		}
		deal.InvestmentID = &investment.ID
	}
	if strings.TrimSpace(referrerID) != "" {
		person, err := s.people.GetByID(ctx, referrerID)
		if err != nil {
			return referenceErr(err)
		}
		deal.ReferrerID = &person.ID
	}
	if strings.TrimSpace(ownerID) != "" {
		person, err := s.people.GetByID(ctx, ownerID)
		if err != nil {
			return referenceErr(err)
		}
		deal.OwnerID = &person.ID
	}
	return nil
}

func referenceErr(err error) error {
	if errors.Is(err, companydomain.ErrNotFound) ||
		errors.Is(err, companydomain.ErrInvalidID) ||
		errors.Is(err, investmentdomain.ErrNotFound) ||
		errors.Is(err, investmentdomain.ErrInvalidID) ||
		errors.Is(err, persondomain.ErrNotFound) ||
		errors.Is(err, persondomain.ErrInvalidID) {
		return domain.ErrInvalidReference
	}
	return err
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateDealRequest) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	dealID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || dealID == 0 {
		return domain.Record{}, domain.ErrInvalidID
	}

	deal, err := s.repo.FindByID(ctx, s.db, accountID, dealID)
	if err != nil {
		return domain.Record{}, err
	}
	if deal == nil {
		return domain.Record{}, domain.ErrNotFound
	}

	patch.Field(&deal.Name, strings.TrimSpace(req.Name))
	patch.Date(&deal.Date, req.Date)
	patch.Field(&deal.Source, req.Source)
	patch.Field(&deal.Type, req.Type)
	patch.Field(&deal.Status, req.Status)
	patch.Field(&deal.Stage, req.Stage)
	if err := s.applyReferences(ctx, deal, req.CompanyID, req.InvestmentID, req.ReferrerID, req.OwnerID); err != nil {
		return domain.Record{}, err
	}
	deal.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, deal); err != nil {
		return domain.Record{}, err
	}
	return s.record(ctx, accountID, deal.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	dealID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || dealID == 0 {
		return domain.Record{}, domain.ErrInvalidID
	}
	return s.record(ctx, accountID, dealID)
}

func (s *Service) record(ctx context.Context, accountID, dealID snowflake.ID) (domain.Record, error) {
	record, err := s.repo.FindRecord(ctx, s.db, accountID, dealID)
	if err != nil {
		return domain.Record{}, err
	}
	if record == nil {
		return domain.Record{}, domain.ErrNotFound
	}
	return *record, nil
}

func (s *Service) List(ctx context.Context, req domain.ListDealRequest) (domain.ListDealResponse, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListDealResponse{}, domain.ErrInvalidAccount
	}

	if req.PageSize <= 0 {
		req.PageSize = 50
	}

	records, err := s.repo.List(ctx, s.db, accountID, req.Stage, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  req.PageSize,
	})
	if err != nil {
		return domain.ListDealResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(records, req.PageSize, func(r *domain.Record) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: r.ID.String()})
		return token
	})

	resp := domain.ListDealResponse{PageInfo: *pageInfo}
	for i, r := range records {
		if i >= req.PageSize {
			break
		}
		resp.Deals = append(resp.Deals, r.View())
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	dealID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || dealID == 0 {
		return domain.ErrInvalidID
	}

	deal, err := s.repo.FindByID(ctx, s.db, accountID, dealID)
	if err != nil {
		return err
	}
	if deal == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, dealID)
}
