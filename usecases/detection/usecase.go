package detection

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/mo"

	"luvihelper/models"
	"luvihelper/parsers"
	"luvihelper/services"
	"luvihelper/services/reminders"
	"luvihelper/utils"
)

// RaidSpawnCommandName is the slash command (with subcommand) whose replies
// start the raid spawn cooldown reminder.
const RaidSpawnCommandName = "raid spawn"

// DetectionUseCase turns inbound source-bot messages into guild notifications
// and armed per-user reminders. Every message version passes the dedup gate
// exactly once; a version that loses the gate is dropped without side effects.
type DetectionUseCase struct {
	dedupCache      services.DedupCache
	settingsService services.SettingsService
	scheduler       services.ReminderScheduler
	dispatcher      services.Dispatcher
	auditLog        services.AuditLogger
}

func NewDetectionUseCase(
	dedupCache services.DedupCache,
	settingsService services.SettingsService,
	scheduler services.ReminderScheduler,
	dispatcher services.Dispatcher,
	auditLog services.AuditLogger,
) *DetectionUseCase {
	return &DetectionUseCase{
		dedupCache:      dedupCache,
		settingsService: settingsService,
		scheduler:       scheduler,
		dispatcher:      dispatcher,
		auditLog:        auditLog,
	}
}

// ProcessMessageEvent runs the full detection pipeline over a newly created
// source-bot message.
func (u *DetectionUseCase) ProcessMessageEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	utils.AssertInvariant(event.MessageID != "", "message ID cannot be empty")

	if !u.dedupCache.MarkIfNew(event.DedupKey()) {
		log.Printf("📋 Skipping already-seen message version: %s", event.DedupKey())
		return nil
	}

	err := u.processEmbeds(ctx, event, allEventFamilies)
	u.processRaidSpawnCommand(event)
	return err
}

// ProcessMessageUpdateEvent handles source-bot message edits. The source bot
// drives expeditions and raids through edits of a single message, so only
// those state families are considered here.
func (u *DetectionUseCase) ProcessMessageUpdateEvent(ctx context.Context, event models.DiscordMessageEvent) error {
	utils.AssertInvariant(event.MessageID != "", "message ID cannot be empty")

	if event.EditedAt.IsZero() {
		return nil
	}
	if !u.dedupCache.MarkIfNew(event.EditDedupKey()) {
		log.Printf("📋 Skipping already-seen message edit version: %s", event.EditDedupKey())
		return nil
	}

	return u.processEmbeds(ctx, event, editEventFamilies)
}

// eventFamily pairs a parser with its handler. Every family runs against
// every embed; families are independent and no family's handling depends on
// another's outcome.
type eventFamily struct {
	parse  func(models.MessageEmbed) mo.Option[models.GameEvent]
	handle func(*DetectionUseCase, models.DiscordMessageEvent, models.GameEvent) error
}

var allEventFamilies = []eventFamily{
	{parsers.ParseStaminaEmbed, (*DetectionUseCase).handleStaminaFull},
	{parsers.ParseExpeditionEmbed, (*DetectionUseCase).handleExpeditionComplete},
	{parsers.ParseRaidEmbed, (*DetectionUseCase).handleRaidFatigue},
	{parsers.ParseBossEmbed, (*DetectionUseCase).handleBossSpawn},
	{parsers.ParseCardEmbed, (*DetectionUseCase).handleCardSpawn},
}

var editEventFamilies = []eventFamily{
	{parsers.ParseExpeditionEmbed, (*DetectionUseCase).handleExpeditionComplete},
	{parsers.ParseRaidEmbed, (*DetectionUseCase).handleRaidFatigue},
}

func (u *DetectionUseCase) processEmbeds(
	_ context.Context,
	event models.DiscordMessageEvent,
	families []eventFamily,
) error {
	// A failing family never blocks the remaining embeds; the first error is
	// still surfaced to the caller for logging.
	var firstErr error
	for _, embed := range event.Embeds {
		for _, family := range families {
			gameEvent, ok := family.parse(embed).Get()
			if !ok {
				continue
			}
			if err := family.handle(u, event, gameEvent); err != nil {
				log.Printf("❌ Failed to handle %s event: %v", gameEvent.Kind, err)
				if firstErr == nil {
					firstErr = err
				}
			}
		}
	}
	return firstErr
}

func (u *DetectionUseCase) handleBossSpawn(event models.DiscordMessageEvent, gameEvent models.GameEvent) error {
	settings, ok := u.settingsService.GetGuildSettings(event.GuildID).Get()
	if !ok || settings.BossRoleID == nil {
		log.Printf("📋 No boss role configured for guild %s, skipping boss notification", event.GuildID)
		return nil
	}

	roleID := *settings.BossRoleID
	content := fmt.Sprintf("<@&%s> **%s Boss Spawned!**\nBoss: **%s**", roleID, gameEvent.Tier, gameEvent.BossName)
	if err := u.dispatcher.SendGroupMessage(event.ChannelID, content, mo.Some(roleID)); err != nil {
		return fmt.Errorf("failed to send boss spawn notification: %w", err)
	}

	u.auditLog.LogEvent("boss spawn detected", map[string]string{
		"guild_id": event.GuildID,
		"tier":     gameEvent.Tier,
		"boss":     gameEvent.BossName,
	})
	return nil
}

func (u *DetectionUseCase) handleCardSpawn(event models.DiscordMessageEvent, gameEvent models.GameEvent) error {
	settings, ok := u.settingsService.GetGuildSettings(event.GuildID).Get()
	if !ok || settings.CardRoleID == nil {
		log.Printf("📋 No card role configured for guild %s, skipping card notification", event.GuildID)
		return nil
	}

	roleID := *settings.CardRoleID
	content := fmt.Sprintf("<@&%s> A **%s** card just spawned!\n**%s**", roleID, gameEvent.Rarity, gameEvent.CardName)
	if gameEvent.SeriesName != "" {
		content = fmt.Sprintf("%s from *%s*", content, gameEvent.SeriesName)
	}
	if err := u.dispatcher.SendGroupMessage(event.ChannelID, content, mo.Some(roleID)); err != nil {
		return fmt.Errorf("failed to send card spawn notification: %w", err)
	}

	u.auditLog.LogEvent("card spawn detected", map[string]string{
		"guild_id": event.GuildID,
		"rarity":   gameEvent.Rarity,
		"card":     gameEvent.CardName,
	})
	return nil
}

func (u *DetectionUseCase) handleStaminaFull(event models.DiscordMessageEvent, gameEvent models.GameEvent) error {
	userID := event.TargetUserID()
	if userID == "" {
		log.Printf("⚠️ Stamina embed without a resolvable target user, skipping: %s", event.MessageID)
		return nil
	}

	userSettings := u.settingsService.GetUserSettings(userID)
	if !userSettings.NotifyStamina {
		return nil
	}

	u.armReminder(event, models.PendingReminder{
		UserID:      userID,
		Type:        models.ReminderStamina,
		DeliverByDM: userSettings.DMStamina,
		Content:     "Your stamina should be full again. Time to hunt!",
	}, reminders.DelayForEvent(gameEvent))
	return nil
}

func (u *DetectionUseCase) handleExpeditionComplete(event models.DiscordMessageEvent, gameEvent models.GameEvent) error {
	userID := event.TargetUserID()
	if userID == "" {
		log.Printf("⚠️ Expedition embed without a resolvable target user, skipping: %s", event.MessageID)
		return nil
	}

	userSettings := u.settingsService.GetUserSettings(userID)
	if !userSettings.NotifyExpedition {
		return nil
	}

	u.armReminder(event, models.PendingReminder{
		UserID:      userID,
		Type:        models.ReminderExpedition,
		DeliverByDM: userSettings.DMExpedition,
		Content:     "Your expedition is complete. Go claim your rewards!",
	}, reminders.DelayForEvent(gameEvent))
	return nil
}

func (u *DetectionUseCase) handleRaidFatigue(event models.DiscordMessageEvent, gameEvent models.GameEvent) error {
	userID := event.TargetUserID()
	if userID == "" {
		log.Printf("⚠️ Raid embed without a resolvable target user, skipping: %s", event.MessageID)
		return nil
	}

	userSettings := u.settingsService.GetUserSettings(userID)
	if !userSettings.NotifyRaid {
		return nil
	}

	u.armReminder(event, models.PendingReminder{
		UserID:  userID,
		Type:    models.ReminderRaid,
		Content: "Your raid fatigue has worn off. Back to the fight!",
	}, reminders.DelayForEvent(gameEvent))
	return nil
}

// processRaidSpawnCommand arms the raid spawn cooldown reminder when the
// message replies to the raid spawn slash command. The cooldown is fixed, so
// this needs no embed at all.
func (u *DetectionUseCase) processRaidSpawnCommand(event models.DiscordMessageEvent) {
	if !strings.EqualFold(event.InteractionName, RaidSpawnCommandName) {
		return
	}
	userID := event.TargetUserID()
	if userID == "" {
		return
	}

	userSettings := u.settingsService.GetUserSettings(userID)
	if !userSettings.NotifyRaidSpawn {
		return
	}

	u.armReminder(event, models.PendingReminder{
		UserID:  userID,
		Type:    models.ReminderRaidSpawn,
		Content: "The raid spawn cooldown is over. You can spawn a new raid!",
	}, reminders.RaidSpawnReminderDelay)
}

func (u *DetectionUseCase) armReminder(
	event models.DiscordMessageEvent,
	reminder models.PendingReminder,
	delay time.Duration,
) {
	reminder.GuildID = event.GuildID
	reminder.ChannelID = event.ChannelID
	u.scheduler.Arm(reminder, delay)

	u.auditLog.LogEvent("reminder armed", map[string]string{
		"user_id": reminder.UserID,
		"type":    string(reminder.Type),
		"delay":   delay.String(),
	})
}
