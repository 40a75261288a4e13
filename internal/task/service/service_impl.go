package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	"github.com/mizanapp/mizan/internal/schema"
	taskdomain "github.com/mizanapp/mizan/internal/task/domain"
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

type taskService struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[taskdomain.Task]
}

func NewTaskService(p ServiceParam) taskdomain.TaskService {
	return &taskService{
		log:     p.Log.Named("task.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[taskdomain.Task](p.DB),
	}
}

func (s *taskService) Create(ctx context.Context, rec schema.Record) (*taskdomain.Task, error) {
	normalized, err := schema.Validate(schema.KindTask, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindTask))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindTask))

	task := taskFromRecord(normalized)
	task.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) Update(ctx context.Context, id string, rec schema.Record) (*taskdomain.Task, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindTask, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindTask))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindTask))

	updated := taskFromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *taskService) Get(ctx context.Context, id string) (*taskdomain.Task, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, taskdomain.ErrInvalidID
	}
	task, err := s.repo.FindOne(ctx, &taskdomain.Task{ID: parsed})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, taskdomain.ErrNotFound
	}
	return task, nil
}

func (s *taskService) List(ctx context.Context, filter taskdomain.ListFilter) ([]*taskdomain.Task, error) {
	query := &taskdomain.Task{
		AssignedTo: filter.AssignedTo,
		Status:     filter.Status,
	}
	return s.repo.Find(ctx, query, repository.WithOrder("created_at desc, id desc"))
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func taskFromRecord(rec schema.Record) *taskdomain.Task {
	return &taskdomain.Task{
		Title:       rec.String("title"),
		Description: rec.String("description"),
		AssignedTo:  rec.String("assigned_to"),
		Priority:    rec.String("priority"),
		Status:      rec.String("status"),
		DueDate:     rec.String("due_date"),
	}
}

type reportService struct {
	log     *zap.Logger
	genID   *snowflake.Node
	metrics *metrics.DocumentMetrics
	repo    repository.Repository[taskdomain.TaskReport]
	tasks   repository.Repository[taskdomain.Task]
}

func NewReportService(p ServiceParam) taskdomain.ReportService {
	return &reportService{
		log:     p.Log.Named("taskreport.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[taskdomain.TaskReport](p.DB),
		tasks:   repository.ProvideStore[taskdomain.Task](p.DB),
	}
}

func (s *reportService) Create(ctx context.Context, rec schema.Record) (*taskdomain.TaskReport, error) {
	normalized, err := schema.Validate(schema.KindTaskReport, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindTaskReport))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindTaskReport))

	taskID, err := snowflake.ParseString(normalized.String("task_id"))
	if err != nil {
		return nil, taskdomain.ErrInvalidID
	}
	task, err := s.tasks.FindOne(ctx, &taskdomain.Task{ID: taskID})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, taskdomain.ErrTaskNotFound
	}

	report := &taskdomain.TaskReport{
		ID:         s.genID.Generate(),
		TaskID:     taskID,
		Reporter:   normalized.String("reporter"),
		Content:    normalized.String("content"),
		ReportDate: normalized.String("report_date"),
		Progress:   normalized.Float("progress"),
	}
	if err := s.repo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *reportService) ListByTask(ctx context.Context, taskID string) ([]*taskdomain.TaskReport, error) {
	parsed, err := snowflake.ParseString(taskID)
	if err != nil {
		return nil, taskdomain.ErrInvalidID
	}
	return s.repo.Find(ctx, &taskdomain.TaskReport{TaskID: parsed},
		repository.WithOrder("report_date desc, id desc"))
}

func (s *reportService) Delete(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return taskdomain.ErrInvalidID
	}
	report, err := s.repo.FindOne(ctx, &taskdomain.TaskReport{ID: parsed})
	if err != nil {
		return err
	}
	if report == nil {
		return taskdomain.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
