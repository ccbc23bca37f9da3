package models

import (
	"fmt"
	"time"
)

// DiscordMessageEvent is the transport-independent view of an inbound Discord
// message. It carries everything the detection pipeline needs so that no
// handler downstream has to reach back into the SDK types.
type DiscordMessageEvent struct {
	GuildID   string
	ChannelID string
	MessageID string
	AuthorID  string
	// AuthorIsBot is true when the message author is a bot account
	AuthorIsBot bool
	Content     string
	// Mentions contains the user IDs of all users mentioned in this message
	Mentions []string
	Embeds   []MessageEmbed
	CreatedAt time.Time
	// EditedAt is the zero time for message-create events
	EditedAt time.Time
	// InteractionName is set when this message is a bot's reply to a slash
	// command. It includes subcommands, e.g. "raid spawn".
	InteractionName string
	// InteractionUserID is the user who invoked the slash command this
	// message replies to
	InteractionUserID string
}

// DedupKey identifies this message's create-time version for dedup purposes.
func (e DiscordMessageEvent) DedupKey() string {
	return fmt.Sprintf("%s-%d", e.MessageID, e.CreatedAt.UnixMilli())
}

// EditDedupKey identifies this message's edit-time version. The source bot
// edits a single message through state transitions, so each edit is a distinct
// logical version of the same message ID.
func (e DiscordMessageEvent) EditDedupKey() string {
	return fmt.Sprintf("%s-%d", e.MessageID, e.EditedAt.UnixMilli())
}

// TargetUserID returns the user a per-user event refers to: the slash command
// invoker when the message replies to an interaction, else the first mentioned
// user, else empty.
func (e DiscordMessageEvent) TargetUserID() string {
	if e.InteractionUserID != "" {
		return e.InteractionUserID
	}
	if len(e.Mentions) > 0 {
		return e.Mentions[0]
	}
	return ""
}

type MessageEmbed struct {
	Title       string
	Description string
	Fields      []EmbedField
}

type EmbedField struct {
	Name  string
	Value string
}
