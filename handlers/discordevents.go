package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"luvihelper/clients"
	"luvihelper/core"
	"luvihelper/models"
	"luvihelper/services"
	"luvihelper/usecases/detection"
)

// setupGuideMessage is posted to the first writable channel when the bot
// joins a new guild.
const setupGuideMessage = "Thanks for adding me! Quick setup:\n" +
	"1. `/set-boss-role` to pick the role pinged on boss spawns\n" +
	"2. `/set-card-role` to pick the role pinged on card spawns\n" +
	"3. `/notifications set` to tune your personal reminders\n" +
	"Use `/help` anytime for the full command list."

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	discordClient    clients.DiscordClient
	detectionUseCase *detection.DetectionUseCase
	dispatcher       services.Dispatcher
	auditLog         services.AuditLogger
	// sourceBotID is the game bot whose messages feed the detection pipeline
	sourceBotID string
	// ownerID receives a DM whenever someone mentions them; empty disables it
	ownerID string
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	discordClient clients.DiscordClient,
	detectionUseCase *detection.DetectionUseCase,
	dispatcher services.Dispatcher,
	auditLog services.AuditLogger,
	sourceBotID string,
	ownerID string,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		discordClient:    discordClient,
		detectionUseCase: detectionUseCase,
		dispatcher:       dispatcher,
		auditLog:         auditLog,
		sourceBotID:      sourceBotID,
		ownerID:          ownerID,
	}

	// Register event handlers
	session.AddHandler(handler.handleReadyEvent)
	session.AddHandler(handler.handleMessageCreatedEvent)
	session.AddHandler(handler.handleMessageUpdatedEvent)
	session.AddHandler(handler.handleGuildCreatedEvent)

	// Message content is required to read the source bot's embeds and mentions
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for events")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	h.discordSDKClient.Close()
}

func (h *DiscordEventsHandler) handleReadyEvent(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("🤖 Logged in as %s, serving %d guilds", r.User.Username, len(r.Guilds))

	if err := s.UpdateGameStatus(0, "watching for spawns"); err != nil {
		log.Printf("⚠️ Failed to set bot status: %v", err)
	}
}

// handleMessageCreatedEvent routes new messages: source-bot messages feed the
// detection pipeline, everything else is only checked for owner mentions.
func (h *DiscordEventsHandler) handleMessageCreatedEvent(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || (s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	if m.Author.ID != h.sourceBotID {
		h.forwardOwnerMention(m.Message)
		return
	}

	log.Printf("📨 Source bot message received in guild %s, channel %s", m.GuildID, m.ChannelID)

	ctx := context.Background()
	event := mapToMessageEvent(m.Message)
	if err := h.detectionUseCase.ProcessMessageEvent(ctx, event); err != nil {
		log.Printf("❌ Failed to process source bot message: %v", err)
	}
}

// handleMessageUpdatedEvent feeds source-bot edits to the detection pipeline.
// The source bot drives expedition and raid state through edits of one message.
func (h *DiscordEventsHandler) handleMessageUpdatedEvent(s *discordgo.Session, m *discordgo.MessageUpdate) {
	if m.EditedTimestamp == nil {
		return
	}

	// Edits of embeds often arrive without an author; fetch the message to
	// attribute the edit before trusting it
	author := resolveEditAuthor(m, func(channelID, messageID string) (*discordgo.Message, error) {
		return s.ChannelMessage(channelID, messageID)
	})
	if author == nil {
		log.Printf("⚠️ Dropping unattributable message edit %s in channel %s", m.ID, m.ChannelID)
		return
	}
	if author.ID != h.sourceBotID {
		return
	}
	if m.Author == nil {
		m.Author = author
	}

	log.Printf("📨 Source bot message edit received in guild %s, channel %s", m.GuildID, m.ChannelID)

	ctx := context.Background()
	event := mapToMessageEvent(m.Message)
	if err := h.detectionUseCase.ProcessMessageUpdateEvent(ctx, event); err != nil {
		log.Printf("❌ Failed to process source bot message edit: %v", err)
	}
}

// handleGuildCreatedEvent posts a setup guide when the bot joins a new guild.
// GuildCreate also fires for every guild on (re)connect, so old joins are
// filtered out by join time.
func (h *DiscordEventsHandler) handleGuildCreatedEvent(s *discordgo.Session, g *discordgo.GuildCreate) {
	if time.Since(g.JoinedAt) > 5*time.Minute {
		return
	}

	log.Printf("📋 Joined new guild %s (%s)", g.Name, g.ID)
	h.auditLog.LogEvent("joined guild", map[string]string{
		"guild_id":   g.ID,
		"guild_name": g.Name,
	})

	channel, err := h.discordClient.GetFirstWritableChannel(g.ID)
	if err != nil {
		if core.IsNotFoundError(err) {
			log.Printf("⚠️ No writable channel in guild %s, skipping setup guide", g.ID)
			return
		}
		log.Printf("❌ Failed to find writable channel in guild %s: %v", g.ID, err)
		return
	}

	if err := h.discordClient.SendChannelMessage(channel.ID, setupGuideMessage, clients.AllowedMentions{}); err != nil {
		log.Printf("❌ Failed to send setup guide to guild %s: %v", g.ID, err)
	}
}

// forwardOwnerMention DMs the configured owner a jump link whenever another
// user mentions them, so pings are never missed while away.
func (h *DiscordEventsHandler) forwardOwnerMention(m *discordgo.Message) {
	if h.ownerID == "" || m.Author.Bot || m.Author.ID == h.ownerID {
		return
	}

	mentioned := false
	for _, user := range m.Mentions {
		if user.ID == h.ownerID {
			mentioned = true
			break
		}
	}
	if !mentioned {
		return
	}

	guildName := "a server"
	if guild, err := h.discordClient.GetGuildByID(m.GuildID); err == nil {
		guildName = guild.Name
	}

	jumpLink := fmt.Sprintf("https://discord.com/channels/%s/%s/%s", m.GuildID, m.ChannelID, m.ID)
	content := fmt.Sprintf("**%s** mentioned you in %s:\n> %s\n%s", m.Author.Username, guildName, m.Content, jumpLink)
	if err := h.dispatcher.SendDirectMessage(h.ownerID, content); err != nil {
		log.Printf("⚠️ Failed to forward owner mention: %v", err)
	}
}

// resolveEditAuthor returns the author of an edited message, fetching the
// message when the gateway payload omits the author. Returns nil when the
// author cannot be determined.
func resolveEditAuthor(m *discordgo.MessageUpdate, fetch func(channelID, messageID string) (*discordgo.Message, error)) *discordgo.User {
	if m.Author != nil {
		return m.Author
	}

	fetched, err := fetch(m.ChannelID, m.ID)
	if err != nil {
		log.Printf("⚠️ Failed to fetch edited message %s: %v", m.ID, err)
		return nil
	}
	if fetched == nil {
		return nil
	}
	return fetched.Author
}

// mapToMessageEvent maps a Discord SDK message to our domain model
func mapToMessageEvent(m *discordgo.Message) models.DiscordMessageEvent {
	mentions := make([]string, len(m.Mentions))
	for i, mentionedUser := range m.Mentions {
		mentions[i] = mentionedUser.ID
	}

	embeds := make([]models.MessageEmbed, 0, len(m.Embeds))
	for _, embed := range m.Embeds {
		mapped := models.MessageEmbed{
			Title:       embed.Title,
			Description: embed.Description,
		}
		for _, field := range embed.Fields {
			mapped.Fields = append(mapped.Fields, models.EmbedField{
				Name:  field.Name,
				Value: field.Value,
			})
		}
		embeds = append(embeds, mapped)
	}

	event := models.DiscordMessageEvent{
		GuildID:   m.GuildID,
		ChannelID: m.ChannelID,
		MessageID: m.ID,
		Content:   m.Content,
		Mentions:  mentions,
		Embeds:    embeds,
		CreatedAt: m.Timestamp,
	}
	if m.Author != nil {
		event.AuthorID = m.Author.ID
		event.AuthorIsBot = m.Author.Bot
	}
	if m.EditedTimestamp != nil {
		event.EditedAt = *m.EditedTimestamp
	}
	if m.Interaction != nil {
		event.InteractionName = m.Interaction.Name
		if m.Interaction.User != nil {
			event.InteractionUserID = m.Interaction.User.ID
		}
	}

	return event
}
