package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	contractordomain "github.com/mizanapp/mizan/internal/contractor/domain"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

type contractorService struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[contractordomain.Contractor]
}

func NewContractorService(p ServiceParam) contractordomain.ContractorService {
	return &contractorService{
		log:     p.Log.Named("contractor.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[contractordomain.Contractor](p.DB),
	}
}

func (s *contractorService) Create(ctx context.Context, rec schema.Record) (*contractordomain.Contractor, error) {
	normalized, err := schema.Validate(schema.KindContractor, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindContractor))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindContractor))

	contractor := contractorFromRecord(normalized)
	contractor.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

func (s *contractorService) Update(ctx context.Context, id string, rec schema.Record) (*contractordomain.Contractor, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindContractor, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindContractor))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindContractor))

	updated := contractorFromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *contractorService) Get(ctx context.Context, id string) (*contractordomain.Contractor, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, contractordomain.ErrInvalidID
	}
	contractor, err := s.repo.FindOne(ctx, &contractordomain.Contractor{ID: parsed})
	if err != nil {
		return nil, err
	}
	if contractor == nil {
		return nil, contractordomain.ErrNotFound
	}
	return contractor, nil
}

func (s *contractorService) List(ctx context.Context) ([]*contractordomain.Contractor, error) {
	return s.repo.Find(ctx, &contractordomain.Contractor{}, repository.WithOrder("name asc"))
}

func (s *contractorService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func contractorFromRecord(rec schema.Record) *contractordomain.Contractor {
	return &contractordomain.Contractor{
		Name:       rec.String("name"),
		Phone:      rec.String("phone"),
		Specialty:  rec.String("specialty"),
		NationalID: rec.String("national_id"),
		Status:     rec.String("status"),
		Notes:      rec.String("notes"),
	}
}

type supplierService struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[contractordomain.Supplier]
}

func NewSupplierService(p ServiceParam) contractordomain.SupplierService {
	return &supplierService{
		log:     p.Log.Named("supplier.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[contractordomain.Supplier](p.DB),
	}
}

func (s *supplierService) Create(ctx context.Context, rec schema.Record) (*contractordomain.Supplier, error) {
	normalized, err := schema.Validate(schema.KindSupplier, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindSupplier))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindSupplier))

	supplier := supplierFromRecord(normalized)
	supplier.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *supplierService) Update(ctx context.Context, id string, rec schema.Record) (*contractordomain.Supplier, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindSupplier, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindSupplier))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindSupplier))

	updated := supplierFromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *supplierService) Get(ctx context.Context, id string) (*contractordomain.Supplier, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, contractordomain.ErrInvalidID
	}
	supplier, err := s.repo.FindOne(ctx, &contractordomain.Supplier{ID: parsed})
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, contractordomain.ErrNotFound
	}
	return supplier, nil
}

func (s *supplierService) List(ctx context.Context) ([]*contractordomain.Supplier, error) {
	return s.repo.Find(ctx, &contractordomain.Supplier{}, repository.WithOrder("name asc"))
}

func (s *supplierService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func supplierFromRecord(rec schema.Record) *contractordomain.Supplier {
	return &contractordomain.Supplier{
		Name:     rec.String("name"),
		Phone:    rec.String("phone"),
		Category: rec.String("category"),
		Notes:    rec.String("notes"),
	}
}
