package settings

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/samber/mo"

	"luvihelper/models"
)

// GuildSettingsStore is the persistent store behind the guild settings mirror
type GuildSettingsStore interface {
	GetAllGuildSettings(ctx context.Context) ([]*models.GuildSettings, error)
	UpsertBossRole(ctx context.Context, guildID string, roleID *string) (*models.GuildSettings, error)
	UpsertCardRole(ctx context.Context, guildID string, roleID *string) (*models.GuildSettings, error)
}

// UserSettingsStore is the persistent store behind the user settings mirror
type UserSettingsStore interface {
	GetAllUserSettings(ctx context.Context) ([]*models.UserSettings, error)
	UpsertUserSettings(ctx context.Context, settings *models.UserSettings) (*models.UserSettings, error)
}

// SettingsService keeps an in-memory mirror of guild and user settings.
// Reads are served from the mirror only; writes go through to the store and
// then update the mirror, so the hot event path never performs blocking I/O.
type SettingsService struct {
	guildRepo GuildSettingsStore
	userRepo  UserSettingsStore

	mu     sync.RWMutex
	guilds map[string]models.GuildSettings
	users  map[string]models.UserSettings
}

func NewSettingsService(guildRepo GuildSettingsStore, userRepo UserSettingsStore) *SettingsService {
	return &SettingsService{
		guildRepo: guildRepo,
		userRepo:  userRepo,
		guilds:    make(map[string]models.GuildSettings),
		users:     make(map[string]models.UserSettings),
	}
}

// LoadFromStore replaces the mirror with the store's current contents. Called
// once at startup; configuration commands keep the mirror current afterwards.
func (s *SettingsService) LoadFromStore(ctx context.Context) error {
	log.Printf("📋 Starting to load settings mirror from store")

	guildSettings, err := s.guildRepo.GetAllGuildSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load guild settings: %w", err)
	}

	userSettings, err := s.userRepo.GetAllUserSettings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load user settings: %w", err)
	}

	guilds := make(map[string]models.GuildSettings, len(guildSettings))
	for _, gs := range guildSettings {
		guilds[gs.GuildID] = *gs
	}
	users := make(map[string]models.UserSettings, len(userSettings))
	for _, us := range userSettings {
		users[us.UserID] = *us
	}

	s.mu.Lock()
	s.guilds = guilds
	s.users = users
	s.mu.Unlock()

	log.Printf("📋 Completed successfully - loaded %d guild and %d user settings", len(guilds), len(users))
	return nil
}

func (s *SettingsService) GetGuildSettings(guildID string) mo.Option[models.GuildSettings] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.guilds[guildID]
	if !ok {
		return mo.None[models.GuildSettings]()
	}
	return mo.Some(settings)
}

// GetUserSettings resolves a user's preferences, falling back to defaults
// (all notify flags true, all DM flags false) when no record exists.
func (s *SettingsService) GetUserSettings(userID string) models.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.users[userID]
	if !ok {
		return models.DefaultUserSettings(userID)
	}
	return settings
}

func (s *SettingsService) SetBossRole(ctx context.Context, guildID string, roleID mo.Option[string]) error {
	log.Printf("📋 Starting to set boss role for guild: %s", guildID)
	if guildID == "" {
		return fmt.Errorf("guild ID cannot be empty")
	}

	updated, err := s.guildRepo.UpsertBossRole(ctx, guildID, roleID.ToPointer())
	if err != nil {
		return fmt.Errorf("failed to set boss role: %w", err)
	}

	s.mu.Lock()
	s.guilds[guildID] = *updated
	s.mu.Unlock()

	log.Printf("📋 Completed successfully - set boss role for guild: %s", guildID)
	return nil
}

func (s *SettingsService) SetCardRole(ctx context.Context, guildID string, roleID mo.Option[string]) error {
	log.Printf("📋 Starting to set card role for guild: %s", guildID)
	if guildID == "" {
		return fmt.Errorf("guild ID cannot be empty")
	}

	updated, err := s.guildRepo.UpsertCardRole(ctx, guildID, roleID.ToPointer())
	if err != nil {
		return fmt.Errorf("failed to set card role: %w", err)
	}

	s.mu.Lock()
	s.guilds[guildID] = *updated
	s.mu.Unlock()

	log.Printf("📋 Completed successfully - set card role for guild: %s", guildID)
	return nil
}

func (s *SettingsService) SetUserFlag(
	ctx context.Context,
	userID string,
	flag models.UserSettingFlag,
	value bool,
) error {
	log.Printf("📋 Starting to set user flag %s=%t for user: %s", flag, value, userID)
	if userID == "" {
		return fmt.Errorf("user ID cannot be empty")
	}

	settings := s.GetUserSettings(userID)
	if err := settings.ApplyFlag(flag, value); err != nil {
		return fmt.Errorf("invalid setting: %w", err)
	}

	updated, err := s.userRepo.UpsertUserSettings(ctx, &settings)
	if err != nil {
		return fmt.Errorf("failed to set user flag: %w", err)
	}

	s.mu.Lock()
	s.users[userID] = *updated
	s.mu.Unlock()

	log.Printf("📋 Completed successfully - set user flag %s for user: %s", flag, userID)
	return nil
}

func (s *SettingsService) GuildCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.guilds)
}
