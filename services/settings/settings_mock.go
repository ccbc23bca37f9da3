package settings

import (
	"context"

	"github.com/stretchr/testify/mock"

	"luvihelper/models"
)

// MockGuildSettingsStore implements the GuildSettingsStore interface for testing
type MockGuildSettingsStore struct {
	mock.Mock
}

func (m *MockGuildSettingsStore) GetAllGuildSettings(ctx context.Context) ([]*models.GuildSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsStore) UpsertBossRole(
	ctx context.Context,
	guildID string,
	roleID *string,
) (*models.GuildSettings, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSettings), args.Error(1)
}

func (m *MockGuildSettingsStore) UpsertCardRole(
	ctx context.Context,
	guildID string,
	roleID *string,
) (*models.GuildSettings, error) {
	args := m.Called(ctx, guildID, roleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GuildSettings), args.Error(1)
}

// MockUserSettingsStore implements the UserSettingsStore interface for testing
type MockUserSettingsStore struct {
	mock.Mock
}

func (m *MockUserSettingsStore) GetAllUserSettings(ctx context.Context) ([]*models.UserSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSettings), args.Error(1)
}

func (m *MockUserSettingsStore) UpsertUserSettings(
	ctx context.Context,
	settings *models.UserSettings,
) (*models.UserSettings, error) {
	args := m.Called(ctx, settings)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserSettings), args.Error(1)
}
