package service

import (
	"context"
	"strings"
	"time"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/employment/domain"
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
		log:       p.Log.Named("employment.service"),
		genID:     p.GenID,
		repo:      p.Repo,
		companies: p.Companies,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateEmploymentRequest) (domain.Record, error) {
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
	employment := domain.Employment{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		PersonID:  personID,
		CompanyID: company.ID,
		Title:     req.Title,
		Location:  req.Location,
		Current:   req.Current,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	patch.Date(&employment.StartDate, req.StartDate)
	patch.Date(&employment.EndDate, req.EndDate)

	if err := s.repo.Insert(ctx, s.db, &employment); err != nil {
		return domain.Record{}, err
	}
	return domain.Record{Employment: employment, CompanyName: company.Name}, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateEmploymentRequest) (domain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Record{}, domain.ErrInvalidAccount
	}

	employmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || employmentID == 0 {
		return domain.Record{}, domain.ErrInvalidID
	}

	employment, err := s.repo.FindByID(ctx, s.db, accountID, employmentID)
	if err != nil {
		return domain.Record{}, err
	}
	if employment == nil {
		return domain.Record{}, domain.ErrNotFound
	}

	companyName := ""
	if strings.TrimSpace(req.Company) != "" {
		company, err := s.companies.GetOrCreate(ctx, req.Company)
		if err != nil {
			return domain.Record{}, err
		}
		employment.CompanyID = company.ID
		companyName = company.Name
	}

	patch.Field(&employment.Title, req.Title)
	patch.Field(&employment.Location, req.Location)
	patch.Date(&employment.StartDate, req.StartDate)
	patch.Date(&employment.EndDate, req.EndDate)
	patch.Field(&employment.Notes, req.Notes)
	employment.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, employment); err != nil {
		return domain.Record{}, err
	}

	if companyName == "" {
		company, err := s.companies.GetByID(ctx, employment.CompanyID.String())
		if err == nil {
			companyName = company.Name
		}
	}
	return domain.Record{Employment: *employment, CompanyName: companyName}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	employmentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || employmentID == 0 {
		return domain.ErrInvalidID
	}

	employment, err := s.repo.FindByID(ctx, s.db, accountID, employmentID)
	if err != nil {
		return err
	}
	if employment == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, employmentID)
}

func (s *Service) SetCurrent(ctx context.Context, personID, companyID string, title string) (domain.Employment, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Employment{}, domain.ErrInvalidAccount
	}

	pid, err := snowflake.ParseString(strings.TrimSpace(personID))
	if err != nil || pid == 0 {
		return domain.Employment{}, domain.ErrInvalidPerson
	}
	cid, err := snowflake.ParseString(strings.TrimSpace(companyID))
	if err != nil || cid == 0 {
		return domain.Employment{}, domain.ErrInvalidCompany
	}

	existing, err := s.repo.FindCurrent(ctx, s.db, accountID, pid, cid)
	if err != nil {
		return domain.Employment{}, err
	}

	now := time.Now().UTC()
	if existing != nil {
		patch.Field(&existing.Title, title)
		existing.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return domain.Employment{}, err
		}
		return *existing, nil
	}

	employment := domain.Employment{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		PersonID:  pid,
		CompanyID: cid,
		Title:     title,
		Current:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &employment); err != nil {
		return domain.Employment{}, err
	}
	return employment, nil
}
