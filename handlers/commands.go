package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"luvihelper/models"
	"luvihelper/services"
)

var manageServerPermission int64 = discordgo.PermissionManageServer

// commandDefinitions are the slash commands registered globally on startup.
var commandDefinitions = []*discordgo.ApplicationCommand{
	{
		Name:                     "set-boss-role",
		Description:              "Set the role pinged when a boss spawns (omit the role to clear it)",
		DefaultMemberPermissions: &manageServerPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Role to ping on boss spawns",
				Required:    false,
			},
		},
	},
	{
		Name:                     "set-card-role",
		Description:              "Set the role pinged when a card spawns (omit the role to clear it)",
		DefaultMemberPermissions: &manageServerPermission,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionRole,
				Name:        "role",
				Description: "Role to ping on card spawns",
				Required:    false,
			},
		},
	},
	{
		Name:        "view-settings",
		Description: "Show the guild's notification roles and your personal reminder settings",
	},
	{
		Name:        "notifications",
		Description: "Manage your personal reminder settings",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "set",
				Description: "Turn a reminder setting on or off",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "setting",
						Description: "Which setting to change",
						Required:    true,
						Choices:     settingChoices(),
					},
					{
						Type:        discordgo.ApplicationCommandOptionBoolean,
						Name:        "enabled",
						Description: "New value for the setting",
						Required:    true,
					},
				},
			},
		},
	},
	{
		Name:        "help",
		Description: "Show what this bot does and how to configure it",
	},
}

func settingChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(models.SupportedUserSettingFlags))
	for _, flag := range models.SupportedUserSettingFlags {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  string(flag),
			Value: string(flag),
		})
	}
	return choices
}

type DiscordCommandsHandler struct {
	discordSDKClient *discordgo.Session
	settingsService  services.SettingsService
	auditLog         services.AuditLogger
}

func NewDiscordCommandsHandler(
	session *discordgo.Session,
	settingsService services.SettingsService,
	auditLog services.AuditLogger,
) *DiscordCommandsHandler {
	handler := &DiscordCommandsHandler{
		discordSDKClient: session,
		settingsService:  settingsService,
		auditLog:         auditLog,
	}

	session.AddHandler(handler.handleInteractionCreatedEvent)
	return handler
}

// RegisterCommands creates the global slash commands. Must be called after
// the session is open so the application ID is known.
func (h *DiscordCommandsHandler) RegisterCommands() error {
	log.Printf("📋 Starting to register %d slash commands", len(commandDefinitions))

	appID := h.discordSDKClient.State.User.ID
	for _, command := range commandDefinitions {
		if _, err := h.discordSDKClient.ApplicationCommandCreate(appID, "", command); err != nil {
			return fmt.Errorf("failed to register command %s: %w", command.Name, err)
		}
	}

	log.Printf("📋 Completed successfully - registered all slash commands")
	return nil
}

func (h *DiscordCommandsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	log.Printf("📨 Slash command /%s invoked in guild %s", data.Name, i.GuildID)

	var response string
	switch data.Name {
	case "set-boss-role":
		response = h.handleSetRole(i, data, true)
	case "set-card-role":
		response = h.handleSetRole(i, data, false)
	case "view-settings":
		response = h.handleViewSettings(i)
	case "notifications":
		response = h.handleNotifications(i, data)
	case "help":
		response = helpMessage()
	default:
		response = "Unknown command."
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: response,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("❌ Failed to respond to /%s: %v", data.Name, err)
	}
}

func (h *DiscordCommandsHandler) handleSetRole(
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
	isBossRole bool,
) string {
	ctx := context.Background()

	roleID := mo.None[string]()
	for _, option := range data.Options {
		if option.Name == "role" {
			roleID = mo.Some(option.RoleValue(nil, "").ID)
		}
	}

	var err error
	var family string
	if isBossRole {
		family = "boss"
		err = h.settingsService.SetBossRole(ctx, i.GuildID, roleID)
	} else {
		family = "card"
		err = h.settingsService.SetCardRole(ctx, i.GuildID, roleID)
	}
	if err != nil {
		log.Printf("❌ Failed to update %s role for guild %s: %v", family, i.GuildID, err)
		return "Something went wrong saving the setting. Please try again."
	}

	h.auditLog.LogEvent(family+" role updated", map[string]string{
		"guild_id": i.GuildID,
		"role_id":  roleID.OrElse("(cleared)"),
	})

	if id, ok := roleID.Get(); ok {
		return fmt.Sprintf("Done! <@&%s> will now be pinged on %s spawns.", id, family)
	}
	return fmt.Sprintf("Cleared the %s spawn role. No role will be pinged anymore.", family)
}

func (h *DiscordCommandsHandler) handleViewSettings(i *discordgo.InteractionCreate) string {
	var b strings.Builder

	b.WriteString("**Guild settings**\n")
	if guildSettings, ok := h.settingsService.GetGuildSettings(i.GuildID).Get(); ok {
		b.WriteString(fmt.Sprintf("Boss role: %s\n", formatRole(guildSettings.BossRoleID)))
		b.WriteString(fmt.Sprintf("Card role: %s\n", formatRole(guildSettings.CardRoleID)))
	} else {
		b.WriteString("No roles configured yet. Use `/set-boss-role` and `/set-card-role`.\n")
	}

	userSettings := h.settingsService.GetUserSettings(interactionUserID(i))
	b.WriteString("\n**Your reminder settings**\n")
	b.WriteString(fmt.Sprintf("expedition: %s\n", formatEnabled(userSettings.NotifyExpedition)))
	b.WriteString(fmt.Sprintf("stamina: %s\n", formatEnabled(userSettings.NotifyStamina)))
	b.WriteString(fmt.Sprintf("raid: %s\n", formatEnabled(userSettings.NotifyRaid)))
	b.WriteString(fmt.Sprintf("raid-spawn: %s\n", formatEnabled(userSettings.NotifyRaidSpawn)))
	b.WriteString(fmt.Sprintf("dm-expedition: %s\n", formatEnabled(userSettings.DMExpedition)))
	b.WriteString(fmt.Sprintf("dm-stamina: %s", formatEnabled(userSettings.DMStamina)))

	return b.String()
}

func (h *DiscordCommandsHandler) handleNotifications(
	i *discordgo.InteractionCreate,
	data discordgo.ApplicationCommandInteractionData,
) string {
	if len(data.Options) == 0 || data.Options[0].Name != "set" {
		return "Unknown subcommand."
	}

	var flag models.UserSettingFlag
	var enabled bool
	for _, option := range data.Options[0].Options {
		switch option.Name {
		case "setting":
			flag = models.UserSettingFlag(option.StringValue())
		case "enabled":
			enabled = option.BoolValue()
		}
	}

	userID := interactionUserID(i)
	if err := h.settingsService.SetUserFlag(context.Background(), userID, flag, enabled); err != nil {
		log.Printf("❌ Failed to update setting %s for user %s: %v", flag, userID, err)
		return "Something went wrong saving the setting. Please try again."
	}

	return fmt.Sprintf("Done! `%s` is now %s.", flag, formatEnabled(enabled))
}

func helpMessage() string {
	return "I watch the game bot and handle notifications for you:\n" +
		"- Ping a role when a **boss** or **card** spawns\n" +
		"- Remind you when your **stamina** refills (100 minutes)\n" +
		"- Remind you when your **expedition** completes\n" +
		"- Remind you when **raid fatigue** wears off\n" +
		"- Remind you when the **raid spawn** cooldown (30 minutes) ends\n\n" +
		"Commands:\n" +
		"`/set-boss-role`, `/set-card-role` - guild role configuration (Manage Server only)\n" +
		"`/notifications set` - toggle your personal reminders, or switch some to DMs\n" +
		"`/view-settings` - see the current configuration"
}

// interactionUserID resolves the invoking user for both guild and DM
// interactions.
func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func formatRole(roleID *string) string {
	if roleID == nil {
		return "not set"
	}
	return fmt.Sprintf("<@&%s>", *roleID)
}

func formatEnabled(enabled bool) string {
	if enabled {
		return "enabled"
	}
	return "disabled"
}
