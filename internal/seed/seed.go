package seed

import (
	"context"
	"errors"
	"time"

	accountdomain "github.com/atriumhq/atrium/internal/account/domain"
	companydomain "github.com/atriumhq/atrium/internal/company/domain"
	"github.com/atriumhq/atrium/internal/config"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Module bootstraps the default account on startup.
var Module = fx.Module("seed",
	fx.Invoke(EnsureDefaultAccount),
)

// EnsureDefaultAccount creates the account named by DEFAULT_ACCOUNT, together
// with its owning company row, when it does not exist yet. With no default
// configured nothing is seeded and every request must carry an account.
func EnsureDefaultAccount(cfg config.Config, conn *gorm.DB, genID *snowflake.Node, log *zap.Logger) error {
	if cfg.DefaultAccountID == 0 {
		return nil
	}
	accountID := snowflake.ParseInt64(cfg.DefaultAccountID)

	ctx := context.Background()
	var account accountdomain.Account
	err := conn.WithContext(ctx).Where("id = ?", accountID).First(&account).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	now := time.Now().UTC()
	company := companydomain.Company{
		ID:        genID.Generate(),
		AccountID: accountID,
		Name:      cfg.AppName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	account = accountdomain.Account{
		ID:        accountID,
		CompanyID: company.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&company).Error; err != nil {
			return err
		}
		return tx.Create(&account).Error
	})
	if err != nil {
		return err
	}

	log.Info("default account seeded", zap.Int64("account_id", cfg.DefaultAccountID))
	return nil
}
