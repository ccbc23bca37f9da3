package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type DiscordConfig struct {
	BotToken string
	// SourceBotID is the game bot whose messages are watched for events
	SourceBotID string
	// OwnerID optionally receives DMs when mentioned anywhere the bot can see
	OwnerID string
	// LogChannelID optionally mirrors audit entries into a Discord channel
	LogChannelID string
}

// IsConfigured returns true if all required Discord configuration is present
func (c DiscordConfig) IsConfigured() bool {
	return c.BotToken != "" && c.SourceBotID != ""
	// Note: OwnerID and LogChannelID are optional
}

type AppConfig struct {
	// Core configuration (always required)
	DatabaseURL        string
	DatabaseSchema     string
	Port               string // Optional with default "8080"
	CORSAllowedOrigins string // Optional with default "*"
	Environment        string

	DiscordConfig DiscordConfig
}

func LoadConfig() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Println("⚠️ Could not load .env file, continuing with system env vars")
	}

	// Core required configuration
	databaseURL, err := getEnvRequired("DB_URL")
	if err != nil {
		return nil, err
	}

	databaseSchema, err := getEnvRequired("DB_SCHEMA")
	if err != nil {
		return nil, err
	}

	config := &AppConfig{
		DatabaseURL:        databaseURL,
		DatabaseSchema:     databaseSchema,
		Port:               getEnvWithDefault("PORT", "8080"),
		CORSAllowedOrigins: getEnvWithDefault("CORS_ALLOWED_ORIGINS", "*"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "dev"),

		DiscordConfig: DiscordConfig{
			BotToken:     os.Getenv("DISCORD_BOT_TOKEN"),
			SourceBotID:  os.Getenv("DISCORD_SOURCE_BOT_ID"),
			OwnerID:      os.Getenv("DISCORD_OWNER_ID"),
			LogChannelID: os.Getenv("DISCORD_LOG_CHANNEL_ID"),
		},
	}

	if !config.DiscordConfig.IsConfigured() {
		return nil, fmt.Errorf("discord integration is not fully configured " +
			"(DISCORD_BOT_TOKEN and DISCORD_SOURCE_BOT_ID are required)")
	}
	log.Printf("✅ Discord integration configured")

	return config, nil
}

func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set", key)
	}
	return value, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
