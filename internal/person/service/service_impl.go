package service

import (
	"context"
	"strings"
	"time"

	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	employmentdomain "github.com/atriumhq/atrium/internal/employment/domain"
	"github.com/atriumhq/atrium/internal/person/domain"
	"github.com/atriumhq/atrium/pkg/db"
	"github.com/atriumhq/atrium/pkg/db/pagination"
	"github.com/atriumhq/atrium/pkg/patch"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Repo        domain.Repository
	Companies   companydomain.Service
	Employments employmentdomain.Repository
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	repo        domain.Repository
	companies   companydomain.Service
	employments employmentdomain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("person.service"),
		genID:       p.GenID,
		repo:        p.Repo,
		companies:   p.Companies,
		employments: p.Employments,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePersonRequest) (domain.Person, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Person{}, domain.ErrInvalidAccount
	}

	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	if req.FirstName == "" && req.LastName == "" {
		return domain.Person{}, domain.ErrInvalidName
	}

	person, err := s.resolve(ctx, accountID, req)
	if err != nil {
		return domain.Person{}, err
	}

	now := time.Now().UTC()
	if person == nil {
		person = &domain.Person{
			ID:        s.genID.Generate(),
			AccountID: accountID,
			CreatedAt: now,
		}
		s.apply(person, req)
		person.UpdatedAt = now
		if err := s.repo.Insert(ctx, s.db, person); err != nil {
			return domain.Person{}, err
		}
	} else {
		s.apply(person, req)
		person.UpdatedAt = now
		if err := s.repo.Update(ctx, s.db, person); err != nil {
			return domain.Person{}, err
		}
	}

	if strings.TrimSpace(req.Company) != "" {
		if err := s.attachEmployment(ctx, accountID, person.ID, req.Company, req.Title); err != nil {
			return domain.Person{}, err
		}
	}
	return *person, nil
}

// resolve matches the incoming payload against existing rows, email first,
// LinkedIn URL second. A nil result means a new person.
func (s *Service) resolve(ctx context.Context, accountID snowflake.ID, req domain.CreatePersonRequest) (*domain.Person, error) {
	if email := strings.TrimSpace(req.Email); email != "" {
		person, err := s.repo.FindByEmail(ctx, s.db, accountID, email)
		if err != nil || person != nil {
			return person, err
		}
	}
	if linkedin := strings.TrimSpace(req.LinkedinURL); linkedin != "" {
		person, err := s.repo.FindByLinkedin(ctx, s.db, accountID, linkedin)
		if err != nil || person != nil {
			return person, err
		}
	}
	return nil, nil
}

func (s *Service) apply(person *domain.Person, req domain.CreatePersonRequest) {
	patch.Field(&person.FirstName, req.FirstName)
	patch.Field(&person.LastName, req.LastName)
	patch.Nullable(&person.Email, strings.TrimSpace(req.Email))
	patch.Field(&person.Location, req.Location)
	patch.Field(&person.Gender, req.Gender)
	patch.Field(&person.Race, req.Race)
	patch.Field(&person.Website, req.Website)
	patch.Field(&person.PhotoURL, req.PhotoURL)
	patch.Field(&person.LinkedinURL, strings.TrimSpace(req.LinkedinURL))
	if len(req.Links) > 0 {
		person.Links = datatypes.JSONMap(req.Links)
	}
}

// attachEmployment records where the person works when the payload names a
// company. The (person, company, title) triple is the idempotency key so
// repeated submissions do not stack duplicate rows.
func (s *Service) attachEmployment(ctx context.Context, accountID, personID snowflake.ID, companyName, title string) error {
	company, err := s.companies.GetOrCreate(ctx, companyName)
	if err != nil {
		return err
	}

	existing, err := s.employments.FindByPersonCompanyTitle(ctx, s.db, accountID, personID, company.ID, title)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	now := time.Now().UTC()
	return s.employments.Insert(ctx, s.db, &employmentdomain.Employment{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		PersonID:  personID,
		CompanyID: company.ID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *Service) Update(ctx context.Context, id string, req domain.UpdatePersonRequest) (domain.Person, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Person{}, domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return domain.Person{}, domain.ErrInvalidID
	}

	person, err := s.repo.FindByID(ctx, s.db, accountID, personID)
	if err != nil {
		return domain.Person{}, err
	}
	if person == nil {
		return domain.Person{}, domain.ErrNotFound
	}

	patch.Field(&person.FirstName, strings.TrimSpace(req.FirstName))
	patch.Field(&person.LastName, strings.TrimSpace(req.LastName))
	patch.Nullable(&person.Email, strings.TrimSpace(req.Email))
	patch.Field(&person.Location, req.Location)
	patch.Field(&person.Gender, req.Gender)
	patch.Field(&person.Race, req.Race)
	patch.Field(&person.Website, req.Website)
	patch.Field(&person.PhotoURL, req.PhotoURL)
	patch.Field(&person.LinkedinURL, strings.TrimSpace(req.LinkedinURL))
	if len(req.Links) > 0 {
		person.Links = datatypes.JSONMap(req.Links)
	}
	person.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, person); err != nil {
		return domain.Person{}, err
	}
	return *person, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Person, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Person{}, domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return domain.Person{}, domain.ErrInvalidID
	}

	person, err := s.repo.FindByID(ctx, s.db, accountID, personID)
	if err != nil {
		return domain.Person{}, err
	}
	if person == nil {
		return domain.Person{}, domain.ErrNotFound
	}
	return *person, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPersonRequest) (domain.ListPersonResponse, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ListPersonResponse{}, domain.ErrInvalidAccount
	}

	if req.PageSize <= 0 {
		req.PageSize = 50
	}

	people, err := s.repo.List(ctx, s.db, accountID, domain.ListPersonFilter{
		Name:     req.Name,
		Location: req.Location,
		Tag:      req.Tag,
	}, pagination.Pagination{PageToken: req.PageToken, PageSize: req.PageSize})
	if err != nil {
		return domain.ListPersonResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(people, req.PageSize, func(p *domain.Person) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: p.ID.String()})
		return token
	})

	resp := domain.ListPersonResponse{PageInfo: *pageInfo}
	for i, p := range people {
		if i >= req.PageSize {
			break
		}
		resp.People = append(resp.People, *p)
	}
	return resp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return domain.ErrInvalidID
	}

	person, err := s.repo.FindByID(ctx, s.db, accountID, personID)
	if err != nil {
		return err
	}
	if person == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, personID)
}

func (s *Service) Experience(ctx context.Context, id string) ([]employmentdomain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return nil, domain.ErrInvalidID
	}

	records, err := s.employments.ListByPerson(ctx, s.db, accountID, personID)
	if err != nil {
		return nil, err
	}
	return employmentdomain.Order(records), nil
}

func (s *Service) LatestEmployment(ctx context.Context, personID snowflake.ID) (*employmentdomain.Record, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	records, err := s.employments.ListByPerson(ctx, s.db, accountID, personID)
	if err != nil {
		return nil, err
	}
	return employmentdomain.Latest(records), nil
}

func (s *Service) View(ctx context.Context, person *domain.Person) (domain.View, error) {
	view := domain.View{
		ID:          person.ID,
		FirstName:   person.FirstName,
		LastName:    person.LastName,
		Name:        person.FullName(),
		Location:    person.Location,
		Email:       person.EmailValue(),
		PhotoURL:    person.PhotoURL,
		LinkedinURL: person.LinkedinURL,
	}

	latest, err := s.LatestEmployment(ctx, person.ID)
	if err != nil {
		return domain.View{}, err
	}
	if latest != nil {
		view.Company = latest.CompanyName
		view.Title = latest.Title
	}
	return view, nil
}

func (s *Service) AddTag(ctx context.Context, id, tag string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return domain.ErrInvalidID
	}

	tag = strings.TrimSpace(tag)
	if tag == "" {
		return domain.ErrInvalidTag
	}

	now := time.Now().UTC()
	err = s.repo.InsertTag(ctx, s.db, &domain.PersonTag{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		PersonID:  personID,
		Tag:       tag,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil && db.IsDuplicateKeyErr(err) {
		return nil
	}
	return err
}

func (s *Service) RemoveTag(ctx context.Context, id, tag string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.DeleteTag(ctx, s.db, accountID, personID, strings.TrimSpace(tag))
}

func (s *Service) Tags(ctx context.Context, id string) ([]domain.PersonTag, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	personID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || personID == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListTags(ctx, s.db, accountID, personID)
}
