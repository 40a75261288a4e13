package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/mizanapp/mizan/internal/invoice/domain"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/internal/schema"
	"github.com/mizanapp/mizan/pkg/db"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[invoicedomain.Invoice]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log:     p.Log.Named("invoice.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[invoicedomain.Invoice](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*invoicedomain.Invoice, error) {
	normalized, err := schema.Validate(schema.KindInvoice, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindInvoice))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindInvoice))

	invoice := fromRecord(normalized)
	invoice.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, invoice); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, invoicedomain.ErrDuplicateNumber
		}
		return nil, err
	}

	s.log.Info("invoice created",
		zap.String("id", invoice.ID.String()),
		zap.String("number", invoice.InvoiceNumber),
	)
	return invoice, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*invoicedomain.Invoice, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindInvoice, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindInvoice))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindInvoice))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, invoicedomain.ErrDuplicateNumber
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*invoicedomain.Invoice, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, invoicedomain.ErrInvalidID
	}
	invoice, err := s.repo.FindOne(ctx, &invoicedomain.Invoice{ID: parsed})
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) List(ctx context.Context, filter invoicedomain.ListFilter) ([]*invoicedomain.Invoice, error) {
	query := &invoicedomain.Invoice{
		ClientName: filter.ClientName,
		Status:     filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("invoice_date desc, id desc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func fromRecord(rec schema.Record) *invoicedomain.Invoice {
	return &invoicedomain.Invoice{
		InvoiceNumber: rec.String("invoice_number"),
		ClientName:    rec.String("client_name"),
		Amount:        rec.Float("amount"),
		InvoiceDate:   rec.String("invoice_date"),
		DueDate:       rec.String("due_date"),
		Status:        rec.String("status"),
		Description:   rec.String("description"),
	}
}
