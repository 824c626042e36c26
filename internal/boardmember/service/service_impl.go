package service

import (
	"context"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/boardmember/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
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
	Companies companydomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	repo      domain.Repository
	companies companydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("boardmember.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		companies: p.Companies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateBoardMemberRequest) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(req.PersonID))
	if err != nil || personID == 0 {
		return domain.Record{}, domain.ErrInvalidPerson
	}

	company, err := s.companies.GetOrCreate(ctx, req.Company)
	if err != nil {
		if err == companydomain.ErrInvalidName {
			return domain.Record{}, domain.ErrInvalidCompany
		}
		return domain.Record{}, err
	}

	now := time.Now().UTC()
	member := domain.BoardMember{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		PersonID:  personID,
		CompanyID: company.ID,
		Location:  req.Location,
		Current:   true,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	patch.Date(&member.StartDate, req.StartDate)
	patch.Date(&member.EndDate, req.EndDate)

	if err := s.repo.Insert(ctx, s.db, &member); err != nil {
		return domain.Record{}, err
	}
	return domain.Record{BoardMember: member, CompanyName: company.Name}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateBoardMemberRequest) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	memberID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || memberID == 0 {
		return domain.Record{}, domain.ErrInvalidID
	}

	member, err := s.repo.FindByID(ctx, s.db, accountID, memberID)
	if err != nil {
		return domain.Record{}, err
	}
	if member == nil {
		return domain.Record{}, domain.ErrNotFound
	}

	companyName := ""
	if strings.TrimSpace(req.Company) != "" {
		company, err := s.companies.GetOrCreate(ctx, req.Company)
		if err != nil {
			return domain.Record{}, err
		}
		member.CompanyID = company.ID
		companyName = company.Name
	}

	patch.Field(&member.Location, req.Location)
	patch.Date(&member.StartDate, req.StartDate)
	patch.Date(&member.EndDate, req.EndDate)
	patch.Field(&member.Notes, req.Notes)
	member.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, member); err != nil {
		return domain.Record{}, err
	}

	if companyName == "" {
		company, err := s.companies.GetByID(ctx, member.CompanyID.String())
		if err == nil {
			companyName = company.Name
		}
	}
	return domain.Record{BoardMember: *member, CompanyName: companyName}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	memberID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || memberID == 0 {
		return domain.ErrInvalidID
	}

	member, err := s.repo.FindByID(ctx, s.db, accountID, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, memberID)
}
