package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/mizanapp/mizan/internal/config"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	"github.com/mizanapp/mizan/internal/observability/metrics"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	"github.com/mizanapp/mizan/pkg/db/pagination"
	"github.com/mizanapp/mizan/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log      *zap.Logger
	genID    *snowflake.Node
	settings *config.SettingsHolder
	metrics  *metrics.DocumentMetrics
	provider notificationdomain.Provider
	repo     repository.Repository[notificationdomain.Notification]
	profiles repository.Repository[profiledomain.Profile]
}

type ServiceParam struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Settings *config.SettingsHolder
	Provider notificationdomain.Provider
	Metrics  *metrics.DocumentMetrics `optional:"true"`
}

func NewService(p ServiceParam) notificationdomain.Service {
	return &Service{
		log:      p.Log.Named("notification.service"),
		genID:    p.GenID,
		settings: p.Settings,
		metrics:  p.Metrics,
		provider: p.Provider,
		repo:     repository.ProvideStore[notificationdomain.Notification](p.DB),
		profiles: repository.ProvideStore[profiledomain.Profile](p.DB),
	}
}

// Dispatch fans one message out as a persisted row per recipient. Only a
// system administrator may dispatch.
func (s *Service) Dispatch(ctx context.Context, req notificationdomain.DispatchRequest) (*notificationdomain.DispatchResult, error) {
	senderID, err := snowflake.ParseString(strings.TrimSpace(req.SenderID))
	if err != nil {
		return nil, notificationdomain.ErrSenderNotFound
	}
	sender, err := s.profiles.FindOne(ctx, &profiledomain.Profile{ID: senderID})
	if err != nil {
		return nil, err
	}
	if sender == nil {
		return nil, notificationdomain.ErrSenderNotFound
	}
	if sender.Role != profiledomain.RoleSystemAdmin {
		return nil, notificationdomain.ErrForbidden
	}

	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, notificationdomain.ErrEmptyMessage
	}

	settings := s.settings.Get().Notifications
	if len(req.Recipients) == 0 {
		return nil, notificationdomain.ErrNoRecipients
	}
	if len(req.Recipients) > settings.MaxRecipients {
		return nil, notificationdomain.ErrTooManyRecipients
	}

	notifType := strings.TrimSpace(req.Type)
	if notifType == "" {
		notifType = settings.DefaultType
	}
	switch notifType {
	case notificationdomain.TypeInfo, notificationdomain.TypeWarning,
		notificationdomain.TypeError, notificationdomain.TypeSuccess:
	default:
		notifType = settings.DefaultType
	}

	rows := make([]*notificationdomain.Notification, 0, len(req.Recipients))
	for _, raw := range req.Recipients {
		recipientID, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			return nil, notificationdomain.ErrInvalidRecipient
		}
		rows = append(rows, &notificationdomain.Notification{
			ID:          s.genID.Generate(),
			RecipientID: recipientID,
			Title:       title,
			Message:     message,
			Type:        notifType,
			Metadata: map[string]any{
				"sender_id": sender.ID.String(),
			},
		})
	}

	if err := s.repo.BatchCreate(ctx, rows); err != nil {
		return nil, err
	}

	s.metrics.RecordNotifications(len(rows))
	s.log.Info("notifications dispatched",
		zap.String("sender", sender.ID.String()),
		zap.Int("recipients", len(rows)),
		zap.String("type", notifType),
	)
	return &notificationdomain.DispatchResult{Dispatched: len(rows)}, nil
}

// Relay forwards a message to an external phone number through the
// configured provider using the <prefix>:<E.164> address format.
func (s *Service) Relay(ctx context.Context, req notificationdomain.RelayRequest) (*notificationdomain.RelayResult, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, notificationdomain.ErrEmptyMessage
	}

	settings := s.settings.Get().Messaging
	e164, err := normalizePhone(req.To, settings.DefaultRegion)
	if err != nil {
		return nil, err
	}

	to := fmt.Sprintf("%s:%s", settings.ProviderPrefix, e164)
	if err := s.provider.Send(ctx, to, message); err != nil {
		return nil, err
	}

	s.log.Info("message relayed", zap.String("to", to))
	return &notificationdomain.RelayResult{To: to}, nil
}

func (s *Service) ListByRecipient(ctx context.Context, recipientID string, page pagination.Pagination) (*notificationdomain.NotificationPage, error) {
	parsed, err := snowflake.ParseString(recipientID)
	if err != nil {
		return nil, notificationdomain.ErrInvalidID
	}

	// Snowflake ids are time ordered, so the cursor keys on id alone.
	limit := page.Limit()
	opts := []repository.QueryOption{
		repository.WithOrder("id desc"),
		repository.WithLimit(limit + 1),
	}
	if page.PageToken != "" {
		cursor, err := pagination.DecodeCursor(page.PageToken)
		if err != nil {
			return nil, notificationdomain.ErrInvalidID
		}
		cursorID, err := snowflake.ParseString(cursor.ID)
		if err != nil {
			return nil, notificationdomain.ErrInvalidID
		}
		opts = append(opts, repository.WithCondition("id < ?", cursorID.Int64()))
	}

	rows, err := s.repo.Find(ctx, &notificationdomain.Notification{RecipientID: parsed}, opts...)
	if err != nil {
		return nil, err
	}

	rows, info := pagination.BuildPageInfo(rows, limit, func(n *notificationdomain.Notification) pagination.Cursor {
		return pagination.Cursor{ID: n.ID.String()}
	})
	return &notificationdomain.NotificationPage{Notifications: rows, PageInfo: info}, nil
}

func (s *Service) MarkRead(ctx context.Context, id string) error {
	parsed, err := snowflake.ParseString(id)
	if err != nil {
		return notificationdomain.ErrInvalidID
	}
	row, err := s.repo.FindOne(ctx, &notificationdomain.Notification{ID: parsed})
	if err != nil {
		return err
	}
	if row == nil {
		return notificationdomain.ErrNotFound
	}
	return s.repo.Update(ctx, id, map[string]any{"read": true})
}

// normalizePhone turns a local or international number into E.164 form.
// Local numbers (leading zero) get the configured default region prefix.
func normalizePhone(raw, defaultRegion string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '+':
			return r
		case r == ' ' || r == '-' || r == '(' || r == ')':
			return -1
		default:
			return 'x'
		}
	}, strings.TrimSpace(raw))

	if cleaned == "" || strings.ContainsRune(cleaned, 'x') {
		return "", notificationdomain.ErrInvalidPhone
	}

	switch {
	case strings.HasPrefix(cleaned, "+"):
		if strings.Contains(cleaned[1:], "+") || len(cleaned) < 9 {
			return "", notificationdomain.ErrInvalidPhone
		}
		return cleaned, nil
	case strings.HasPrefix(cleaned, "0"):
		if len(cleaned) < 8 {
			return "", notificationdomain.ErrInvalidPhone
		}
		return defaultRegion + cleaned[1:], nil
	default:
		if len(cleaned) < 8 {
			return "", notificationdomain.ErrInvalidPhone
		}
		return "+" + cleaned, nil
	}
}
