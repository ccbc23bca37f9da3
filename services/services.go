package services

import (
	"context"
	"time"

	"github.com/samber/mo"

	"luvihelper/models"
)

// SettingsService resolves per-guild and per-user configuration from an
// in-memory mirror; writes go through to the persistent store and refresh the
// mirror. Reads never block on the store.
type SettingsService interface {
	LoadFromStore(ctx context.Context) error
	GetGuildSettings(guildID string) mo.Option[models.GuildSettings]
	// GetUserSettings resolves defaults when no record exists: all notify
	// flags true, all DM flags false
	GetUserSettings(userID string) models.UserSettings
	SetBossRole(ctx context.Context, guildID string, roleID mo.Option[string]) error
	SetCardRole(ctx context.Context, guildID string, roleID mo.Option[string]) error
	SetUserFlag(ctx context.Context, userID string, flag models.UserSettingFlag, value bool) error
	GuildCount() int
}

// ReminderScheduler owns the set of armed delayed reminders. Arming the same
// (user, type) key replaces the pending entry rather than stacking a second
// timer.
type ReminderScheduler interface {
	Arm(reminder models.PendingReminder, delay time.Duration)
	Pending(userID string, reminderType models.ReminderType) mo.Option[models.PendingReminder]
	PendingCount() int
	Stop()
}

// Dispatcher sends final notifications through the messaging transport.
// Mentions are restricted to exactly the pinged role/user.
type Dispatcher interface {
	SendGroupMessage(channelID, content string, mentionRoleID mo.Option[string]) error
	SendUserMention(channelID, userID, content string) error
	SendDirectMessage(userID, content string) error
}

// AuditLogger is a fire-and-forget observability sink. Its unavailability
// never blocks or fails the pipeline.
type AuditLogger interface {
	LogEvent(message string, fields map[string]string)
}

// DedupCache suppresses reprocessing of the same logical event version.
type DedupCache interface {
	// MarkIfNew marks the key and reports whether this caller was first;
	// concurrent callers racing on the same key see at most one true
	MarkIfNew(key string) bool
	Seen(key string) bool
	Size() int
}
