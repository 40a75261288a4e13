package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
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
	repo    repository.Repository[profiledomain.Profile]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Metrics *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) profiledomain.Service {
	return &Service{
		log:     p.Log.Named("profile.service"),
		genID:   p.GenID,
		metrics: p.Metrics,
		repo:    repository.ProvideStore[profiledomain.Profile](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, rec schema.Record) (*profiledomain.Profile, error) {
	normalized, err := schema.Validate(schema.KindUser, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindUser))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindUser))

	profile := fromRecord(normalized)
	profile.ID = s.genID.Generate()
	if err := s.repo.Create(ctx, profile); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, profiledomain.ErrDuplicateEmail
		}
		return nil, err
	}
	return profile, nil
}

func (s *Service) Update(ctx context.Context, id string, rec schema.Record) (*profiledomain.Profile, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := schema.Validate(schema.KindUser, rec)
	if err != nil {
		s.metrics.RecordValidationFailure(string(schema.KindUser))
		return nil, err
	}
	s.metrics.RecordValidated(string(schema.KindUser))

	updated := fromRecord(normalized)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	if err := s.repo.Replace(ctx, id, updated); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, profiledomain.ErrDuplicateEmail
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (*profiledomain.Profile, error) {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return nil, profiledomain.ErrInvalidID
	}
	profile, err := s.repo.FindOne(ctx, &profiledomain.Profile{ID: parsed})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, profiledomain.ErrNotFound
	}
	return profile, nil
}

func (s *Service) List(ctx context.Context) ([]*profiledomain.Profile, error) {
	return s.repo.Find(ctx, &profiledomain.Profile{}, repository.WithOrder("full_name asc"))
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func fromRecord(rec schema.Record) *profiledomain.Profile {
	return &profiledomain.Profile{
		FullName: rec.String("full_name"),
		Email:    rec.String("email"),
		Phone:    rec.String("phone"),
		Role:     rec.String("role"),
	}
}
