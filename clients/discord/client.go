package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"luvihelper/clients"
	"luvihelper/core"
)

// DiscordClient implements the clients.DiscordClient interface on top of a
// shared discordgo session.
type DiscordClient struct {
	session *discordgo.Session
}

// NewSession creates a discordgo session for the given bot token. The session
// is shared between the event handlers and this client; callers own opening
// and closing it.
func NewSession(botToken string) (*discordgo.Session, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	return session, nil
}

func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

func (c *DiscordClient) GetBotUser() (*clients.DiscordUser, error) {
	// The gateway fills session state on ready; fall back to the API before
	// the connection is open.
	if c.session.State != nil && c.session.State.User != nil {
		u := c.session.State.User
		return &clients.DiscordUser{ID: u.ID, Username: u.Username, IsBot: u.Bot}, nil
	}

	u, err := c.session.User("@me")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bot user: %w", err)
	}
	return &clients.DiscordUser{ID: u.ID, Username: u.Username, IsBot: u.Bot}, nil
}

func (c *DiscordClient) GetGuildByID(guildID string) (*clients.DiscordGuild, error) {
	guild, err := c.session.Guild(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild: %w", err)
	}
	return &clients.DiscordGuild{ID: guild.ID, Name: guild.Name}, nil
}

func (c *DiscordClient) SendChannelMessage(channelID, content string, mentions clients.AllowedMentions) error {
	_, err := c.session.ChannelMessageSendComplex(channelID, &discordgo.MessageSend{
		Content: content,
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Roles: mentions.RoleIDs,
			Users: mentions.UserIDs,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send channel message: %w", err)
	}
	return nil
}

func (c *DiscordClient) SendDirectMessage(userID, content string) error {
	dmChannel, err := c.session.UserChannelCreate(userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel for user %s: %w", userID, err)
	}

	if _, err := c.session.ChannelMessageSend(dmChannel.ID, content); err != nil {
		return fmt.Errorf("failed to send DM to user %s: %w", userID, err)
	}
	return nil
}

func (c *DiscordClient) GetFirstWritableChannel(guildID string) (*clients.DiscordChannel, error) {
	botUser, err := c.GetBotUser()
	if err != nil {
		return nil, err
	}

	channels, err := c.session.GuildChannels(guildID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch guild channels: %w", err)
	}

	for _, channel := range channels {
		if channel.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		permissions, err := c.session.State.UserChannelPermissions(botUser.ID, channel.ID)
		if err != nil {
			continue
		}
		if permissions&discordgo.PermissionSendMessages != 0 {
			return &clients.DiscordChannel{ID: channel.ID, Name: channel.Name}, nil
		}
	}

	return nil, fmt.Errorf("no writable text channel in guild %s: %w", guildID, core.ErrNotFound)
}
