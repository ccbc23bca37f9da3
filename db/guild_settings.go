package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	"luvihelper/models"
)

type PostgresGuildSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for guild_settings table
var guildSettingsColumns = []string{
	"guild_id",
	"boss_role_id",
	"card_role_id",
	"created_at",
	"updated_at",
}

func NewPostgresGuildSettingsRepository(db *sqlx.DB, schema string) *PostgresGuildSettingsRepository {
	return &PostgresGuildSettingsRepository{db: db, schema: schema}
}

func (r *PostgresGuildSettingsRepository) GetAllGuildSettings(ctx context.Context) ([]*models.GuildSettings, error) {
	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_settings
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var settings []*models.GuildSettings
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to get all guild settings: %w", err)
	}

	return settings, nil
}

func (r *PostgresGuildSettingsRepository) GetGuildSettingsByID(
	ctx context.Context,
	guildID string,
) (mo.Option[*models.GuildSettings], error) {
	if guildID == "" {
		return mo.None[*models.GuildSettings](), fmt.Errorf("guild ID cannot be empty")
	}

	columnsStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.guild_settings
		WHERE guild_id = $1`, columnsStr, r.schema)

	var settings models.GuildSettings
	err := r.db.GetContext(ctx, &settings, query, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return mo.None[*models.GuildSettings](), nil
	}
	if err != nil {
		return mo.None[*models.GuildSettings](), fmt.Errorf("failed to get guild settings: %w", err)
	}

	return mo.Some(&settings), nil
}

func (r *PostgresGuildSettingsRepository) UpsertBossRole(
	ctx context.Context,
	guildID string,
	roleID *string,
) (*models.GuildSettings, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}

	returningStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_settings (guild_id, boss_role_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET
			boss_role_id = EXCLUDED.boss_role_id,
			updated_at = NOW()
		RETURNING %s`, r.schema, returningStr)

	var settings models.GuildSettings
	if err := r.db.QueryRowxContext(ctx, query, guildID, roleID).StructScan(&settings); err != nil {
		return nil, fmt.Errorf("failed to upsert boss role: %w", err)
	}

	return &settings, nil
}

func (r *PostgresGuildSettingsRepository) UpsertCardRole(
	ctx context.Context,
	guildID string,
	roleID *string,
) (*models.GuildSettings, error) {
	if guildID == "" {
		return nil, fmt.Errorf("guild ID cannot be empty")
	}

	returningStr := strings.Join(guildSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.guild_settings (guild_id, card_role_id)
		VALUES ($1, $2)
		ON CONFLICT (guild_id)
		DO UPDATE SET
			card_role_id = EXCLUDED.card_role_id,
			updated_at = NOW()
		RETURNING %s`, r.schema, returningStr)

	var settings models.GuildSettings
	if err := r.db.QueryRowxContext(ctx, query, guildID, roleID).StructScan(&settings); err != nil {
		return nil, fmt.Errorf("failed to upsert card role: %w", err)
	}

	return &settings, nil
}
