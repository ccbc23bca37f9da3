package clients

// DiscordClient defines the capability interface the core depends on for
// talking to Discord. Implementations wrap the SDK session; failures are
// returned as errors, never swallowed here.
type DiscordClient interface {
	// GetBotUser returns the bot's own user identity
	GetBotUser() (*DiscordUser, error)
	// GetGuildByID fetches basic guild information
	GetGuildByID(guildID string) (*DiscordGuild, error)
	// SendChannelMessage sends content to a channel. The mentions argument
	// restricts which roles/users the message is allowed to ping.
	SendChannelMessage(channelID, content string, mentions AllowedMentions) error
	// SendDirectMessage opens (or reuses) the user's DM channel and sends
	// content there
	SendDirectMessage(userID, content string) error
	// GetFirstWritableChannel returns the first text channel in the guild
	// the bot can send messages to, or core.ErrNotFound when none exists
	GetFirstWritableChannel(guildID string) (*DiscordChannel, error)
}
