package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	purchasedomain "github.com/mizanapp/mizan/internal/purchase/domain"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[purchasedomain.Purchase]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) purchasedomain.Service {
	return &Service{
		log:     p.Log.Named("purchase.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[purchasedomain.Purchase](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*purchasedomain.Purchase, error) {
	normalized, err := schema.Validate(schema.KindPurchase, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindPurchase))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindPurchase))

	purchase := fromRecord(normalized)
	purchase.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, purchase); err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*purchasedomain.Purchase, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindPurchase, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindPurchase))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindPurchase))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*purchasedomain.Purchase, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, purchasedomain.ErrInvalidID
	}
	purchase, err := s.repo.FindOne(ctx, &purchasedomain.Purchase{ID: parsed})
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, purchasedomain.ErrNotFound
	}
	return purchase, nil
}

func (s *Service) List(ctx context.Context, filter purchasedomain.ListFilter) ([]*purchasedomain.Purchase, error) {
	query := &purchasedomain.Purchase{
		SupplierName: filter.SupplierName,
		Status:       filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("purchase_date desc, id desc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func fromRecord(rec schema.Record) *purchasedomain.Purchase {
	return &purchasedomain.Purchase{
		SupplierName: rec.String("supplier_name"),
		Description:  rec.String("description"),
		Amount:       rec.Float("amount"),
		PurchaseDate: rec.String("purchase_date"),
		Status:       rec.String("status"),
	}
}
