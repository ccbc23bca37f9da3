// Package parsers classifies source-bot embeds into typed game events. Every
// parser is a pure function: an embed either matches a family's expected shape
// or the parser reports no match. Nothing here ever errors.
package parsers

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/samber/mo"

	"luvihelper/models"
)

var (
	boldRegex   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	tierRegex   = regexp.MustCompile(`(?i)tier[:\s]+\**([A-Za-z0-9+]+)\**`)
	rarityRegex = regexp.MustCompile(`(?i)rarity[:\s]+\**([A-Za-z0-9+]+)\**`)
	seriesRegex = regexp.MustCompile(`(?i)from\s+\*([^*]+)\*`)
	hoursRegex  = regexp.MustCompile(`(?i)\b(\d+)\s*h(?:ours?|rs?)?\b`)
	minsRegex   = regexp.MustCompile(`(?i)\b(\d+)\s*m(?:in(?:ute)?s?)?\b`)
)

// ParseBossEmbed recognizes a boss spawn announcement. The tier string is
// whatever the source bot printed, trimmed and nothing more.
func ParseBossEmbed(embed models.MessageEmbed) mo.Option[models.GameEvent] {
	title := strings.ToLower(embed.Title)
	if !strings.Contains(title, "boss") || !strings.Contains(title, "spawn") {
		return mo.None[models.GameEvent]()
	}

	tier := fieldValue(embed, "tier")
	if tier == "" {
		tier = firstSubmatch(tierRegex, embed.Description)
	}

	name := fieldValue(embed, "boss")
	if name == "" {
		name = fieldValue(embed, "name")
	}
	if name == "" {
		name = firstSubmatch(boldRegex, embed.Description)
	}

	if tier == "" || name == "" {
		return mo.None[models.GameEvent]()
	}

	return mo.Some(models.GameEvent{
		Kind:     models.GameEventBossSpawn,
		Tier:     strings.TrimSpace(tier),
		BossName: strings.TrimSpace(name),
	})
}

// ParseCardEmbed recognizes a card spawn announcement. Series is optional in
// the embed; rarity and card name are required for a match.
func ParseCardEmbed(embed models.MessageEmbed) mo.Option[models.GameEvent] {
	title := strings.ToLower(embed.Title)
	if !strings.Contains(title, "card") {
		return mo.None[models.GameEvent]()
	}

	rarity := fieldValue(embed, "rarity")
	if rarity == "" {
		rarity = firstSubmatch(rarityRegex, embed.Description)
	}

	name := fieldValue(embed, "card")
	if name == "" {
		name = fieldValue(embed, "name")
	}
	if name == "" {
		name = firstSubmatch(boldRegex, embed.Description)
	}

	series := fieldValue(embed, "series")
	if series == "" {
		series = firstSubmatch(seriesRegex, embed.Description)
	}

	if rarity == "" || name == "" {
		return mo.None[models.GameEvent]()
	}

	return mo.Some(models.GameEvent{
		Kind:       models.GameEventCardSpawn,
		Rarity:     strings.TrimSpace(rarity),
		CardName:   strings.TrimSpace(name),
		SeriesName: strings.TrimSpace(series),
	})
}

// ParseStaminaEmbed recognizes the stamina-full notice.
func ParseStaminaEmbed(embed models.MessageEmbed) mo.Option[models.GameEvent] {
	text := strings.ToLower(embed.Title + " " + embed.Description)
	if !strings.Contains(text, "stamina") {
		return mo.None[models.GameEvent]()
	}
	if !strings.Contains(text, "full") && !strings.Contains(text, "100/100") {
		return mo.None[models.GameEvent]()
	}

	return mo.Some(models.GameEvent{Kind: models.GameEventStaminaFull})
}

// ParseExpeditionEmbed recognizes an expedition status embed. Remaining is the
// time until the expedition completes, zero when the embed carries none (e.g.
// the final "complete" edit).
func ParseExpeditionEmbed(embed models.MessageEmbed) mo.Option[models.GameEvent] {
	title := strings.ToLower(embed.Title)
	if !strings.Contains(title, "expedition") {
		return mo.None[models.GameEvent]()
	}

	return mo.Some(models.GameEvent{
		Kind:      models.GameEventExpeditionComplete,
		Remaining: ParseRemainingTime(embedText(embed)).OrElse(0),
	})
}

// ParseRaidEmbed recognizes the raid-fatigue notice. Remaining is the parsed
// recovery time, zero when absent.
func ParseRaidEmbed(embed models.MessageEmbed) mo.Option[models.GameEvent] {
	text := strings.ToLower(embedText(embed))
	if !strings.Contains(text, "raid") || !strings.Contains(text, "fatigu") {
		return mo.None[models.GameEvent]()
	}

	return mo.Some(models.GameEvent{
		Kind:      models.GameEventRaidFatigue,
		Remaining: ParseRemainingTime(embedText(embed)).OrElse(0),
	})
}

// ParseRemainingTime extracts a "2h 30m" style duration from free-form embed
// text. Returns None when the text carries no recognizable duration.
func ParseRemainingTime(text string) mo.Option[time.Duration] {
	var remaining time.Duration
	found := false

	if m := hoursRegex.FindStringSubmatch(text); m != nil {
		hours, err := strconv.Atoi(m[1])
		if err == nil {
			remaining += time.Duration(hours) * time.Hour
			found = true
		}
	}
	if m := minsRegex.FindStringSubmatch(text); m != nil {
		mins, err := strconv.Atoi(m[1])
		if err == nil {
			remaining += time.Duration(mins) * time.Minute
			found = true
		}
	}

	if !found {
		return mo.None[time.Duration]()
	}
	return mo.Some(remaining)
}

// fieldValue returns the trimmed value of the first embed field whose name
// contains the given word (case-insensitive), with markdown emphasis stripped.
func fieldValue(embed models.MessageEmbed, name string) string {
	for _, field := range embed.Fields {
		if strings.Contains(strings.ToLower(field.Name), name) {
			return strings.TrimSpace(strings.Trim(field.Value, "* "))
		}
	}
	return ""
}

func firstSubmatch(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func embedText(embed models.MessageEmbed) string {
	parts := []string{embed.Title, embed.Description}
	for _, field := range embed.Fields {
		parts = append(parts, field.Name, field.Value)
	}
	return strings.Join(parts, " ")
}
