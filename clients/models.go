package clients

// DiscordUser represents a Discord user identity
type DiscordUser struct {
	ID       string
	Username string
	IsBot    bool
}

// DiscordGuild represents basic Discord guild information
type DiscordGuild struct {
	ID   string
	Name string
}

// DiscordChannel represents a Discord channel
type DiscordChannel struct {
	ID   string
	Name string
}

// AllowedMentions restricts which roles/users a message may ping. Empty
// slices mean the message pings nobody regardless of its content.
type AllowedMentions struct {
	RoleIDs []string
	UserIDs []string
}
