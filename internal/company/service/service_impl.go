package service

import (
	"context"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/pkg/db"
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

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("company.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCompanyRequest) (domain.Company, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Company{}, domain.ErrInvalidAccount
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:                  s.genID.Generate(),
		AccountID:           accountID,
		Name:                name,
		Segment:             req.Segment,
		Sector:              req.Sector,
		Location:            req.Location,
		LogoURL:             req.LogoURL,
		Website:             req.Website,
		Description:         req.Description,
		CrunchbasePermalink: req.CrunchbasePermalink,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	patch.Nullable(&company.CrunchbaseID, strings.TrimSpace(req.CrunchbaseID))

	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Company{}, domain.ErrConflict
		}
		return domain.Company{}, err
	}
	return company, nil
}

func (s *Service) GetOrCreate(ctx context.Context, name string) (domain.Company, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Company{}, domain.ErrInvalidAccount
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Company{}, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, accountID, name)
	if err != nil {
		return domain.Company{}, err
	}
	if existing != nil {
		return *existing, nil
	}

	now := time.Now().UTC()
	company := domain.Company{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, &company); err != nil {
		return domain.Company{}, err
	}
	return company, nil
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdateCompanyRequest) (domain.Company, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Company{}, domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return domain.Company{}, err
	}

	company, err := s.repo.FindByID(ctx, s.db, accountID, companyID)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}

	patch.Field(&company.Name, strings.TrimSpace(req.Name))
	patch.Field(&company.Segment, req.Segment)
	patch.Field(&company.Sector, req.Sector)
	patch.Field(&company.Location, req.Location)
	patch.Field(&company.LogoURL, req.LogoURL)
	patch.Field(&company.Website, req.Website)
	patch.Field(&company.Description, req.Description)
	patch.Field(&company.CrunchbasePermalink, req.CrunchbasePermalink)
	company.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, company); err != nil {
		return domain.Company{}, err
	}
	return *company, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Company, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Company{}, domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return domain.Company{}, err
	}

	company, err := s.repo.FindByID(ctx, s.db, accountID, companyID)
	if err != nil {
		return domain.Company{}, err
	}
	if company == nil {
		return domain.Company{}, domain.ErrNotFound
	}
	return *company, nil
}

func (s *Service) List(ctx context.Context, req domain.ListCompanyRequest) (domain.ListCompanyResponse, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListCompanyResponse{}, domain.ErrInvalidAccount
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, accountID, domain.ListCompanyFilter{
		Name:    strings.TrimSpace(req.Name),
		Sector:  strings.TrimSpace(req.Sector),
		Segment: strings.TrimSpace(req.Segment),
	}, pagination.Pagination{PageToken: req.PageToken, PageSize: pageSize})
	if err != nil {
		return domain.ListCompanyResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, pageSize, func(company *domain.Company) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        company.ID.String(),
			CreatedAt: company.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > pageSize {
		items = items[:pageSize]
	}

	companies := make([]domain.Company, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		companies = append(companies, *item)
	}

	resp := domain.ListCompanyResponse{Companies: companies}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return err
	}

	company, err := s.repo.FindByID(ctx, s.db, accountID, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, companyID)
}

func (s *Service) AddTag(ctx context.Context, id, tag string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return err
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.ErrInvalidTag
	}

	now := time.Now().UTC()
	err = s.repo.InsertTag(ctx, s.db, &domain.CompanyTag{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		CompanyID: companyID,
		Tag:       tag,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if db.IsDuplicateKeyErr(err) {
		// Tagging twice is a no-op.
		return nil
	}
	return err
}

func (s *Service) RemoveTag(ctx context.Context, id, tag string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return err
	}
	return s.repo.DeleteTag(ctx, s.db, accountID, companyID, strings.TrimSpace(tag))
}

func (s *Service) Tags(ctx context.Context, id string) ([]domain.CompanyTag, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	companyID, err := s.parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.ListTags(ctx, s.db, accountID, companyID)
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
