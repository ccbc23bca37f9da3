package models

import (
	"fmt"
	"time"
)

// GuildSettings holds the per-guild role configuration. A nil role ID means
// notifications for that family are disabled in the guild.
type GuildSettings struct {
	GuildID    string    `json:"guild_id"               db:"guild_id"`
	BossRoleID *string   `json:"boss_role_id,omitempty" db:"boss_role_id"`
	CardRoleID *string   `json:"card_role_id,omitempty" db:"card_role_id"`
	CreatedAt  time.Time `json:"created_at"             db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"             db:"updated_at"`
}

// UserSettings holds per-user reminder preferences. An absent record resolves
// to DefaultUserSettings: all notify flags true, all DM flags false.
type UserSettings struct {
	UserID           string    `json:"user_id"           db:"user_id"`
	NotifyExpedition bool      `json:"notify_expedition" db:"notify_expedition"`
	NotifyStamina    bool      `json:"notify_stamina"    db:"notify_stamina"`
	NotifyRaid       bool      `json:"notify_raid"       db:"notify_raid"`
	NotifyRaidSpawn  bool      `json:"notify_raid_spawn" db:"notify_raid_spawn"`
	DMExpedition     bool      `json:"dm_expedition"     db:"dm_expedition"`
	DMStamina        bool      `json:"dm_stamina"        db:"dm_stamina"`
	CreatedAt        time.Time `json:"created_at"        db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"        db:"updated_at"`
}

func DefaultUserSettings(userID string) UserSettings {
	return UserSettings{
		UserID:           userID,
		NotifyExpedition: true,
		NotifyStamina:    true,
		NotifyRaid:       true,
		NotifyRaidSpawn:  true,
		DMExpedition:     false,
		DMStamina:        false,
	}
}

// UserSettingFlag names a single toggleable user preference
type UserSettingFlag string

const (
	FlagNotifyExpedition UserSettingFlag = "expedition"
	FlagNotifyStamina    UserSettingFlag = "stamina"
	FlagNotifyRaid       UserSettingFlag = "raid"
	FlagNotifyRaidSpawn  UserSettingFlag = "raid-spawn"
	FlagDMExpedition     UserSettingFlag = "dm-expedition"
	FlagDMStamina        UserSettingFlag = "dm-stamina"
)

// SupportedUserSettingFlags is the registry of all togglable preference flags
var SupportedUserSettingFlags = []UserSettingFlag{
	FlagNotifyExpedition,
	FlagNotifyStamina,
	FlagNotifyRaid,
	FlagNotifyRaidSpawn,
	FlagDMExpedition,
	FlagDMStamina,
}

// ApplyFlag sets the named preference flag to the given value.
func (s *UserSettings) ApplyFlag(flag UserSettingFlag, value bool) error {
	switch flag {
	case FlagNotifyExpedition:
		s.NotifyExpedition = value
	case FlagNotifyStamina:
		s.NotifyStamina = value
	case FlagNotifyRaid:
		s.NotifyRaid = value
	case FlagNotifyRaidSpawn:
		s.NotifyRaidSpawn = value
	case FlagDMExpedition:
		s.DMExpedition = value
	case FlagDMStamina:
		s.DMStamina = value
	default:
		return fmt.Errorf("unsupported setting flag: %s", flag)
	}
	return nil
}
