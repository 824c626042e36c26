package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/atriumhq/atrium/internal/metric/domain"
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
		log:   p.Log.Named("metric.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) Ingest(ctx context.Context, req domain.IngestRequest) (domain.Metric, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.Metric{}, domain.ErrInvalidAccount
	}

	companyID, err := snowflake.ParseString(strings.TrimSpace(req.CompanyID))
	if err != nil || companyID == 0 {
		return domain.Metric{}, domain.ErrInvalidCompany
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Metric{}, domain.ErrInvalidMetric
	}
	interval := strings.TrimSpace(req.Interval)
	if interval == "" {
		interval = domain.DefaultInterval
	}

	metric, err := s.repo.Find(ctx, s.db, accountID, companyID, name, interval, req.Estimated)
	if err != nil {
		return domain.Metric{}, err
	}
	if metric == nil {
		now := time.Now().UTC()
		metric = &domain.Metric{
			ID:        s.genID.Generate(),
			AccountID: accountID,
			CompanyID: companyID,
			Name:      name,
			Interval:  interval,
			Estimated: req.Estimated,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repo.Insert(ctx, s.db, metric); err != nil {
			return domain.Metric{}, err
		}
	}

	for key, raw := range req.Values {
		date, ok := patch.ParseDate(key)
		if !ok {
			s.log.Debug("ignoring non-date value key", zap.String("key", key))
			continue
		}
		value, ok := asNumber(raw)
		if !ok || value == 0 {
			continue
		}
		if err := s.upsertValue(ctx, accountID, metric.ID, date, value); err != nil {
			return domain.Metric{}, err
		}
	}
	return *metric, nil
}

// asNumber coerces a decoded JSON value to float64. Strings are accepted for
// spreadsheet-shaped payloads; anything else is not a number.
func asNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func (s *Service) upsertValue(ctx context.Context, accountID, metricID snowflake.ID, date time.Time, value float64) error {
	existing, err := s.repo.FindValue(ctx, s.db, accountID, metricID, date)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if existing != nil {
		existing.Value = value
		existing.UpdatedAt = now
		return s.repo.UpdateValue(ctx, s.db, existing)
	}
	return s.repo.InsertValue(ctx, s.db, &domain.MetricValue{
		ID:        s.genID.Generate(),
		AccountID: accountID,
		MetricID:  metricID,
		Date:      date,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	})
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

	metrics, err := s.repo.ListByCompany(ctx, s.db, accountID, cid)
	if err != nil {
		return nil, err
	}

	views := make([]domain.View, 0, len(metrics))
	for i := range metrics {
		values, err := s.repo.ListValues(ctx, s.db, accountID, metrics[i].ID)
		if err != nil {
			return nil, err
		}
		views = append(views, metrics[i].View(values))
	}
	return views, nil
}

func (s *Service) LastValue(ctx context.Context, companyID snowflake.ID, name string) (*domain.Point, error) {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return nil, domain.ErrInvalidAccount
	}

	metric, err := s.repo.Find(ctx, s.db, accountID, companyID, name, domain.DefaultInterval, false)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, nil
	}

	value, err := s.repo.LastValue(ctx, s.db, accountID, metric.ID)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	return &domain.Point{Date: value.Date, Value: value.Value}, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	accountID, ok := tenantctx.AccountID(ctx)
	if !ok || accountID == 0 {
		return domain.ErrInvalidAccount
	}

	metricID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || metricID == 0 {
		return domain.ErrInvalidID
	}

	metric, err := s.repo.FindByID(ctx, s.db, accountID, metricID)
	if err != nil {
		return err
	}
	if metric == nil {
		return domain.ErrNotFound
	}
	return s.repo.Delete(ctx, s.db, accountID, metricID)
}
