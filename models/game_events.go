package models

import "time"

// GameEventKind tags the variant of a parsed game event
type GameEventKind string

const (
	GameEventBossSpawn          GameEventKind = "boss_spawn"
	GameEventCardSpawn          GameEventKind = "card_spawn"
	GameEventStaminaFull        GameEventKind = "stamina_full"
	GameEventExpeditionComplete GameEventKind = "expedition_complete"
	GameEventRaidFatigue        GameEventKind = "raid_fatigue"
	GameEventRaidSpawnCommand   GameEventKind = "raid_spawn_command"
)

// GameEvent is a tagged variant produced only by successful parsing. Tier and
// rarity values are the source bot's vocabulary verbatim (trimmed, never
// normalized).
type GameEvent struct {
	Kind GameEventKind

	// BossSpawn
	Tier     string
	BossName string

	// CardSpawn
	Rarity     string
	CardName   string
	SeriesName string

	// ExpeditionComplete / RaidFatigue: time until the state resolves,
	// parsed from the embed. Zero when the embed carried none.
	Remaining time.Duration
}
