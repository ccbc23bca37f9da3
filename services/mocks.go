package services

import (
	"context"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"luvihelper/models"
)

// MockSettingsService implements the SettingsService interface for testing
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) LoadFromStore(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSettingsService) GetGuildSettings(guildID string) mo.Option[models.GuildSettings] {
	args := m.Called(guildID)
	return args.Get(0).(mo.Option[models.GuildSettings])
}

func (m *MockSettingsService) GetUserSettings(userID string) models.UserSettings {
	args := m.Called(userID)
	return args.Get(0).(models.UserSettings)
}

func (m *MockSettingsService) SetBossRole(ctx context.Context, guildID string, roleID mo.Option[string]) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}

func (m *MockSettingsService) SetCardRole(ctx context.Context, guildID string, roleID mo.Option[string]) error {
	args := m.Called(ctx, guildID, roleID)
	return args.Error(0)
}

func (m *MockSettingsService) SetUserFlag(
	ctx context.Context,
	userID string,
	flag models.UserSettingFlag,
	value bool,
) error {
	args := m.Called(ctx, userID, flag, value)
	return args.Error(0)
}

func (m *MockSettingsService) GuildCount() int {
	args := m.Called()
	return args.Int(0)
}

// MockReminderScheduler implements the ReminderScheduler interface for testing
type MockReminderScheduler struct {
	mock.Mock
}

func (m *MockReminderScheduler) Arm(reminder models.PendingReminder, delay time.Duration) {
	m.Called(reminder, delay)
}

func (m *MockReminderScheduler) Pending(
	userID string,
	reminderType models.ReminderType,
) mo.Option[models.PendingReminder] {
	args := m.Called(userID, reminderType)
	return args.Get(0).(mo.Option[models.PendingReminder])
}

func (m *MockReminderScheduler) PendingCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockReminderScheduler) Stop() {
	m.Called()
}

// MockDispatcher implements the Dispatcher interface for testing
type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) SendGroupMessage(channelID, content string, mentionRoleID mo.Option[string]) error {
	args := m.Called(channelID, content, mentionRoleID)
	return args.Error(0)
}

func (m *MockDispatcher) SendUserMention(channelID, userID, content string) error {
	args := m.Called(channelID, userID, content)
	return args.Error(0)
}

func (m *MockDispatcher) SendDirectMessage(userID, content string) error {
	args := m.Called(userID, content)
	return args.Error(0)
}

// MockDedupCache implements the DedupCache interface for testing
type MockDedupCache struct {
	mock.Mock
}

func (m *MockDedupCache) MarkIfNew(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

func (m *MockDedupCache) Seen(key string) bool {
	args := m.Called(key)
	return args.Bool(0)
}

func (m *MockDedupCache) Size() int {
	args := m.Called()
	return args.Int(0)
}

// MockAuditLogger implements the AuditLogger interface for testing
type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) LogEvent(message string, fields map[string]string) {
	m.Called(message, fields)
}
