package service

import (
	"context"

	"github.com/atriumhq/atrium/internal/account/domain"
	"github.com/atriumhq/atrium/pkg/tenantctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("account.service"),
		repo: p.Repo,
	}
}

func (s *Service) Get(ctx context.Context) (domain.Account, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Account{}, domain.ErrInvalidAccount
	}

	account, err := s.repo.FindByID(ctx, s.db, accountID)
	if err != nil {
		return domain.Account{}, err
	}
	if account == nil {
		return domain.Account{}, domain.ErrNotFound
	}
	return *account, nil
}

func (s *Service) Users(ctx context.Context) ([]domain.User, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}
	return s.repo.ListUsers(ctx, s.db, accountID)
}
