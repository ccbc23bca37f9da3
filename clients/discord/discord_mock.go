package discord

import (
	"github.com/stretchr/testify/mock"

	"luvihelper/clients"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) GetBotUser() (*clients.DiscordUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) GetGuildByID(guildID string) (*clients.DiscordGuild, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordGuild), args.Error(1)
}

func (m *MockDiscordClient) SendChannelMessage(channelID, content string, mentions clients.AllowedMentions) error {
	args := m.Called(channelID, content, mentions)
	return args.Error(0)
}

func (m *MockDiscordClient) SendDirectMessage(userID, content string) error {
	args := m.Called(userID, content)
	return args.Error(0)
}

func (m *MockDiscordClient) GetFirstWritableChannel(guildID string) (*clients.DiscordChannel, error) {
	args := m.Called(guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordChannel), args.Error(1)
}
