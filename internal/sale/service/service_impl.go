package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	saledomain "github.com/mizanapp/mizan/internal/sale/domain"
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
	repo    repository.Repository[saledomain.Sale]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) saledomain.Service {
	return &Service{
		log:     p.Log.Named("sale.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[saledomain.Sale](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*saledomain.Sale, error) {
	normalized, err := schema.Validate(schema.KindSale, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindSale))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindSale))

	sale := fromRecord(normalized)
	sale.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, sale); err != nil {
		return nil, err
	}

	s.log.Info("sale created",
		zap.String("id", sale.ID.String()),
		zap.String("project", sale.ProjectName),
		zap.String("status", sale.Status),
	)
	return sale, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*saledomain.Sale, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindSale, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindSale))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindSale))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*saledomain.Sale, error) {
	parsed, err := parseID(id)
	if err != nil {
		return nil, saledomain.ErrInvalidID
	}
	sale, err := s.repo.FindOne(ctx, &saledomain.Sale{ID: parsed})
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, saledomain.ErrNotFound
	}
	return sale, nil
}

func (s *Service) List(ctx context.Context, filter saledomain.ListFilter) ([]*saledomain.Sale, error) {
	query := &saledomain.Sale{
		ProjectName: filter.ProjectName,
		Status:      filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("created_at desc, id desc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func fromRecord(rec schema.Record) *saledomain.Sale {
	return &saledomain.Sale{
		ProjectID:     rec.String("project_id"),
		ProjectName:   rec.String("project_name"),
		CustomerName:  rec.String("customer_name"),
		CustomerPhone: rec.String("customer_phone"),
		UnitType:      rec.String("unit_type"),
		UnitNumber:    rec.String("unit_number"),
		Area:          rec.Float("area"),
		Price:         rec.Float("price"),
		Status:        rec.String("status"),
		SaleDate:      rec.String("sale_date"),
		Notes:         rec.String("notes"),
	}
}

func parseID(id string) (snowflake.ID, error) {
	return snowflake.ParseString(id)
}
