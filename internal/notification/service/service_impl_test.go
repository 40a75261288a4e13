package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/mizanapp/mizan/internal/config"
	notificationdomain "github.com/mizanapp/mizan/internal/notification/domain"
	profiledomain "github.com/mizanapp/mizan/internal/profile/domain"
	"github.com/mizanapp/mizan/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type recordingProvider struct {
	to      string
	message string
	calls   int
}

func (p *recordingProvider) Send(ctx context.Context, to string, message string) error {
	_ = ctx
	p.to = to
	p.message = message
	p.calls++
	return nil
}

type fixture struct {
	svc      notificationdomain.Service
	db       *gorm.DB
	node     *snowflake.Node
	provider *recordingProvider
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notificationdomain.Notification{}, &profiledomain.Profile{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	provider := &recordingProvider{}
	svc := NewService(ServiceParam{
		DB:       db,
		Log:      zap.NewNop(),
		GenID:    node,
		Settings: config.NewStaticSettingsHolder(config.DefaultSettings()),
		Provider: provider,
	})

	return &fixture{svc: svc, db: db, node: node, provider: provider}
}

func (f *fixture) seedProfile(t *testing.T, role string) *profiledomain.Profile {
	t.Helper()
	p := &profiledomain.Profile{
		ID:       f.node.Generate(),
		FullName: "مستخدم تجريبي",
		Email:    testEmail(f.node.Generate().String()),
		Role:     role,
	}
	require.NoError(t, f.db.Create(p).Error)
	return p
}

func testEmail(suffix string) string { return "user-" + suffix + "@example.com" }

func (f *fixture) list(t *testing.T, recipientID string) []*notificationdomain.Notification {
	t.Helper()
	page, err := f.svc.ListByRecipient(context.Background(), recipientID, pagination.Pagination{})
	require.NoError(t, err)
	return page.Notifications
}

func TestDispatch_FansOutPerRecipient(t *testing.T) {
	f := newFixture(t)
	admin := f.seedProfile(t, profiledomain.RoleSystemAdmin)
	first := f.seedProfile(t, profiledomain.RoleEmployee)
	second := f.seedProfile(t, profiledomain.RoleEmployee)

	result, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID:   admin.ID.String(),
		Title:      "تنبيه",
		Message:    "تم اعتماد المستخلص",
		Type:       notificationdomain.TypeSuccess,
		Recipients: []string{first.ID.String(), second.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Dispatched)

	rows := f.list(t, first.ID.String())
	require.Len(t, rows, 1)
	assert.Equal(t, "تنبيه", rows[0].Title)
	assert.Equal(t, notificationdomain.TypeSuccess, rows[0].Type)
	assert.False(t, rows[0].Read)
}

func TestDispatch_RequiresSystemAdmin(t *testing.T) {
	f := newFixture(t)
	employee := f.seedProfile(t, profiledomain.RoleEmployee)
	target := f.seedProfile(t, profiledomain.RoleEmployee)

	_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID:   employee.ID.String(),
		Title:      "تنبيه",
		Message:    "رسالة",
		Recipients: []string{target.ID.String()},
	})
	assert.ErrorIs(t, err, notificationdomain.ErrForbidden)
}

func TestDispatch_UnknownSender(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID:   f.node.Generate().String(),
		Title:      "تنبيه",
		Message:    "رسالة",
		Recipients: []string{f.node.Generate().String()},
	})
	assert.ErrorIs(t, err, notificationdomain.ErrSenderNotFound)
}

func TestDispatch_NoRecipients(t *testing.T) {
	f := newFixture(t)
	admin := f.seedProfile(t, profiledomain.RoleSystemAdmin)

	_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID: admin.ID.String(),
		Title:    "تنبيه",
		Message:  "رسالة",
	})
	assert.ErrorIs(t, err, notificationdomain.ErrNoRecipients)
}

func TestDispatch_DefaultsType(t *testing.T) {
	f := newFixture(t)
	admin := f.seedProfile(t, profiledomain.RoleSystemAdmin)
	target := f.seedProfile(t, profiledomain.RoleEmployee)

	_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID:   admin.ID.String(),
		Title:      "تنبيه",
		Message:    "رسالة",
		Type:       "banana",
		Recipients: []string{target.ID.String()},
	})
	require.NoError(t, err)

	rows := f.list(t, target.ID.String())
	require.Len(t, rows, 1)
	assert.Equal(t, notificationdomain.TypeInfo, rows[0].Type)
}

func TestMarkRead(t *testing.T) {
	f := newFixture(t)
	admin := f.seedProfile(t, profiledomain.RoleSystemAdmin)
	target := f.seedProfile(t, profiledomain.RoleEmployee)

	_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
		SenderID:   admin.ID.String(),
		Title:      "تنبيه",
		Message:    "رسالة",
		Recipients: []string{target.ID.String()},
	})
	require.NoError(t, err)

	rows := f.list(t, target.ID.String())
	require.Len(t, rows, 1)

	require.NoError(t, f.svc.MarkRead(context.Background(), rows[0].ID.String()))

	rows = f.list(t, target.ID.String())
	assert.True(t, rows[0].Read)
}

func TestListByRecipient_Paginates(t *testing.T) {
	f := newFixture(t)
	admin := f.seedProfile(t, profiledomain.RoleSystemAdmin)
	target := f.seedProfile(t, profiledomain.RoleEmployee)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Dispatch(context.Background(), notificationdomain.DispatchRequest{
			SenderID:   admin.ID.String(),
			Title:      "تنبيه",
			Message:    "رسالة",
			Recipients: []string{target.ID.String()},
		})
		require.NoError(t, err)
	}

	first, err := f.svc.ListByRecipient(context.Background(), target.ID.String(),
		pagination.Pagination{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Notifications, 2)
	require.True(t, first.PageInfo.HasMore)
	require.NotEmpty(t, first.PageInfo.NextPageToken)

	second, err := f.svc.ListByRecipient(context.Background(), target.ID.String(),
		pagination.Pagination{PageSize: 2, PageToken: first.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second.Notifications, 2)
	assert.True(t, second.PageInfo.HasMore)

	// Newest first, no overlap between pages.
	assert.Greater(t, first.Notifications[1].ID.Int64(), second.Notifications[0].ID.Int64())

	third, err := f.svc.ListByRecipient(context.Background(), target.ID.String(),
		pagination.Pagination{PageSize: 2, PageToken: second.PageInfo.NextPageToken})
	require.NoError(t, err)
	require.Len(t, third.Notifications, 1)
	assert.False(t, third.PageInfo.HasMore)
}

func TestRelay_FormatsProviderAddress(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Relay(context.Background(), notificationdomain.RelayRequest{
		To:      "+966501234567",
		Message: "تم إنشاء أمر إسناد جديد",
	})
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+966501234567", result.To)
	assert.Equal(t, 1, f.provider.calls)
	assert.Equal(t, "whatsapp:+966501234567", f.provider.to)
}

func TestRelay_NormalizesLocalNumber(t *testing.T) {
	f := newFixture(t)

	result, err := f.svc.Relay(context.Background(), notificationdomain.RelayRequest{
		To:      "050 123-4567",
		Message: "رسالة",
	})
	require.NoError(t, err)
	assert.Equal(t, "whatsapp:+966501234567", result.To)
}

func TestRelay_RejectsBadInput(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Relay(context.Background(), notificationdomain.RelayRequest{
		To:      "abc",
		Message: "رسالة",
	})
	assert.ErrorIs(t, err, notificationdomain.ErrInvalidPhone)

	_, err = f.svc.Relay(context.Background(), notificationdomain.RelayRequest{
		To:      "+966501234567",
		Message: "   ",
	})
	assert.ErrorIs(t, err, notificationdomain.ErrEmptyMessage)
	assert.Equal(t, 0, f.provider.calls)
}
