package testutils

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"luvihelper/config"
	"luvihelper/models"
)

// LoadTestConfig loads configuration for tests from environment variables
func LoadTestConfig() (*config.AppConfig, error) {
	// Try to load environment variables from various possible locations
	_ = godotenv.Load("../.env.test") // From package directories
	_ = godotenv.Load(".env.test")    // From root directory
	_ = godotenv.Load()               // Default .env file

	databaseURL := os.Getenv("DB_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DB_URL is not set")
	}

	databaseSchema := os.Getenv("DB_SCHEMA")
	if databaseSchema == "" {
		return nil, fmt.Errorf("DB_SCHEMA is not set")
	}

	return &config.AppConfig{
		DatabaseURL:    databaseURL,
		DatabaseSchema: databaseSchema,
	}, nil
}

// NewTestMessageEvent builds a message event with unique identifiers to avoid
// dedup collisions between tests
func NewTestMessageEvent(embeds ...models.MessageEmbed) models.DiscordMessageEvent {
	return models.DiscordMessageEvent{
		GuildID:   "guild-" + uuid.New().String(),
		ChannelID: "channel-" + uuid.New().String(),
		MessageID: "message-" + uuid.New().String(),
		AuthorID:  "author-" + uuid.New().String(),
		CreatedAt: time.Now(),
		Embeds:    embeds,
	}
}

// NewTestGuildSettings builds guild settings with a unique guild ID and both
// roles configured
func NewTestGuildSettings() *models.GuildSettings {
	bossRole := "boss-role-" + uuid.New().String()
	cardRole := "card-role-" + uuid.New().String()
	return &models.GuildSettings{
		GuildID:    "guild-" + uuid.New().String(),
		BossRoleID: &bossRole,
		CardRoleID: &cardRole,
	}
}
