package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	extractdomain "github.com/mizanapp/mizan/internal/extract/domain"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/mizanapp/mizan/internal/tax"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[extractdomain.Extract]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) extractdomain.Service {
	return &Service{
		log:     p.Log.Named("extract.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[extractdomain.Extract](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*extractdomain.Extract, error) {
	normalized, err := schema.Validate(schema.KindExtract, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindExtract))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindExtract))

	extract := fromRecord(normalized)
	extract.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, extract); err != nil {
		return nil, err
	}

	s.log.Info("extract created",
		zap.String("id", extract.ID.String()),
		zap.String("number", extract.ExtractNumber),
		zap.Float64("amount", extract.Amount),
		zap.Bool("tax_included", extract.TaxIncluded),
	)
	return extract, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*extractdomain.Extract, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindExtract, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindExtract))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindExtract))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*extractdomain.Extract, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, extractdomain.ErrInvalidID
	}
	extract, err := s.repo.FindOne(ctx, &extractdomain.Extract{ID: parsed})
	if err != nil {
		return nil, err
	}
	if extract == nil {
		return nil, extractdomain.ErrNotFound
	}
	return extract, nil
}

func (s *Service) List(ctx context.Context, filter extractdomain.ListFilter) ([]*extractdomain.Extract, error) {
	query := &extractdomain.Extract{
		ProjectName:    filter.ProjectName,
		ContractorName: filter.ContractorName,
		Status:         filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("extract_date desc, id desc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// fromRecord maps a validated record onto the model. The stored breakdown
// is always re-derived from the total so persisted rows never drift from
// the derivation rule, whatever breakdown the caller supplied.
func fromRecord(rec schema.Record) *extractdomain.Extract {
	amount := rec.Float("amount")
	taxIncluded := rec.Bool("tax_included")
	split := tax.DeriveSplit(amount, taxIncluded)

	return &extractdomain.Extract{
		ExtractNumber:    rec.String("extract_number"),
		ProjectID:        rec.String("project_id"),
		ProjectName:      rec.String("project_name"),
		ContractorName:   rec.String("contractor_name"),
		WorkDescription:  rec.String("work_description"),
		Amount:           amount,
		TaxIncluded:      taxIncluded,
		AmountBeforeTax:  split.AmountBeforeTax,
		TaxAmount:        split.TaxAmount,
		ExtractDate:      rec.String("extract_date"),
		Status:           rec.String("status"),
		AttachedFileURL:  rec.String("attached_file_url"),
		AttachedFileName: rec.String("attached_file_name"),
	}
}
