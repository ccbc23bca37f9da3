package models

import "time"

// ReminderType names a delayed-reminder family. Together with the user ID it
// uniquely keys a pending reminder: at most one per (user, type) at any time.
type ReminderType string

const (
	ReminderStamina    ReminderType = "stamina"
	ReminderExpedition ReminderType = "expedition"
	ReminderRaid       ReminderType = "raid"
	ReminderRaidSpawn  ReminderType = "raid_spawn"
)

// PendingReminder is an armed delayed notification. Reminders are volatile:
// they live in memory and do not survive a restart.
type PendingReminder struct {
	UserID    string
	Type      ReminderType
	GuildID   string
	ChannelID string
	// DeliverByDM sends the reminder to the user's DM channel instead of
	// mentioning them in the originating channel
	DeliverByDM bool
	Content     string
	ArmedAt     time.Time
	FireAt      time.Time
}
