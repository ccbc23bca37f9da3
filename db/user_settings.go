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

type PostgresUserSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for user_settings table
var userSettingsColumns = []string{
	"user_id",
	"notify_expedition",
	"notify_stamina",
	"notify_raid",
	"notify_raid_spawn",
	"dm_expedition",
	"dm_stamina",
	"created_at",
	"updated_at",
}

func NewPostgresUserSettingsRepository(db *sqlx.DB, schema string) *PostgresUserSettingsRepository {
	return &PostgresUserSettingsRepository{db: db, schema: schema}
}

func (r *PostgresUserSettingsRepository) GetAllUserSettings(ctx context.Context) ([]*models.UserSettings, error) {
	columnsStr := strings.Join(userSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.user_settings
		ORDER BY created_at ASC`, columnsStr, r.schema)

	var settings []*models.UserSettings
	if err := r.db.SelectContext(ctx, &settings, query); err != nil {
		return nil, fmt.Errorf("failed to get all user settings: %w", err)
	}

	return settings, nil
}

func (r *PostgresUserSettingsRepository) GetUserSettingsByID(
	ctx context.Context,
	userID string,
) (mo.Option[*models.UserSettings], error) {
	if userID == "" {
		return mo.None[*models.UserSettings](), fmt.Errorf("user ID cannot be empty")
	}

	columnsStr := strings.Join(userSettingsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.user_settings
		WHERE user_id = $1`, columnsStr, r.schema)

	var settings models.UserSettings
	err := r.db.GetContext(ctx, &settings, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return mo.None[*models.UserSettings](), nil
	}
	if err != nil {
		return mo.None[*models.UserSettings](), fmt.Errorf("failed to get user settings: %w", err)
	}

	return mo.Some(&settings), nil
}

func (r *PostgresUserSettingsRepository) UpsertUserSettings(
	ctx context.Context,
	settings *models.UserSettings,
) (*models.UserSettings, error) {
	if settings.UserID == "" {
		return nil, fmt.Errorf("user ID cannot be empty")
	}

	returningStr := strings.Join(userSettingsColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.user_settings (
			user_id, notify_expedition, notify_stamina, notify_raid,
			notify_raid_spawn, dm_expedition, dm_stamina
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id)
		DO UPDATE SET
			notify_expedition = EXCLUDED.notify_expedition,
			notify_stamina = EXCLUDED.notify_stamina,
			notify_raid = EXCLUDED.notify_raid,
			notify_raid_spawn = EXCLUDED.notify_raid_spawn,
			dm_expedition = EXCLUDED.dm_expedition,
			dm_stamina = EXCLUDED.dm_stamina,
			updated_at = NOW()
		RETURNING %s`, r.schema, returningStr)

	var updated models.UserSettings
	err := r.db.QueryRowxContext(
		ctx,
		query,
		settings.UserID,
		settings.NotifyExpedition,
		settings.NotifyStamina,
		settings.NotifyRaid,
		settings.NotifyRaidSpawn,
		settings.DMExpedition,
		settings.DMStamina,
	).StructScan(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user settings: %w", err)
	}

	return &updated, nil
}
