package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	assignmentdomain "github.com/mizanapp/mizan/internal/assignment/domain"
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
	repo    repository.Repository[assignmentdomain.AssignmentOrder]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) assignmentdomain.Service {
	return &Service{
		log:     p.Log.Named("assignment.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[assignmentdomain.AssignmentOrder](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*assignmentdomain.AssignmentOrder, error) {
	normalized, err := schema.Validate(schema.KindAssignmentOrder, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindAssignmentOrder))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindAssignmentOrder))

	order := fromRecord(normalized)
	order.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("assignment order created",
		zap.String("id", order.ID.String()),
		zap.String("number", order.OrderNumber),
		zap.Float64("amount", order.Amount),
	)
	return order, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*assignmentdomain.AssignmentOrder, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindAssignmentOrder, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindAssignmentOrder))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindAssignmentOrder))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*assignmentdomain.AssignmentOrder, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, assignmentdomain.ErrInvalidID
	}
	order, err := s.repo.FindOne(ctx, &assignmentdomain.AssignmentOrder{ID: parsed})
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, assignmentdomain.ErrNotFound
	}
	return order, nil
}

func (s *Service) List(ctx context.Context, filter assignmentdomain.ListFilter) ([]*assignmentdomain.AssignmentOrder, error) {
	query := &assignmentdomain.AssignmentOrder{
		ProjectName:    filter.ProjectName,
		ContractorName: filter.ContractorName,
		Status:         filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("order_date desc, id desc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// fromRecord maps a validated record onto the model, re-deriving the tax
// breakdown from the total.
func fromRecord(rec schema.Record) *assignmentdomain.AssignmentOrder {
	amount := rec.Float("amount")
	taxIncluded := rec.Bool("tax_included")
	split := tax.DeriveSplit(amount, taxIncluded)

	return &assignmentdomain.AssignmentOrder{
		OrderNumber:      rec.String("order_number"),
		ProjectID:        rec.String("project_id"),
		ProjectName:      rec.String("project_name"),
		ContractorName:   rec.String("contractor_name"),
		WorkDescription:  rec.String("work_description"),
		Amount:           amount,
		TaxIncluded:      taxIncluded,
		AmountBeforeTax:  split.AmountBeforeTax,
		TaxAmount:        split.TaxAmount,
		OrderDate:        rec.String("order_date"),
		Status:           rec.String("status"),
		AttachedFileURL:  rec.String("attached_file_url"),
		AttachedFileName: rec.String("attached_file_name"),
	}
}
