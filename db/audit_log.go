package db

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"luvihelper/models"
)

type PostgresAuditLogRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for audit_log table
var auditLogColumns = []string{
	"id",
	"message",
	"context",
	"created_at",
}

func NewPostgresAuditLogRepository(db *sqlx.DB, schema string) *PostgresAuditLogRepository {
	return &PostgresAuditLogRepository{db: db, schema: schema}
}

func (r *PostgresAuditLogRepository) CreateAuditLogEntry(ctx context.Context, entry *models.AuditLogEntry) error {
	if entry.ID == "" {
		return fmt.Errorf("audit log entry ID cannot be empty")
	}
	if entry.Message == "" {
		return fmt.Errorf("audit log entry message cannot be empty")
	}

	returningStr := strings.Join(auditLogColumns, ", ")
	query := fmt.Sprintf(`
		INSERT INTO %s.audit_log (id, message, context)
		VALUES ($1, $2, $3)
		RETURNING %s`, r.schema, returningStr)

	err := r.db.QueryRowxContext(ctx, query, entry.ID, entry.Message, entry.Context).StructScan(entry)
	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

func (r *PostgresAuditLogRepository) DeleteEntriesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s.audit_log
		WHERE created_at < $1`, r.schema)

	result, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old audit log entries: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted audit log entries: %w", err)
	}

	return deleted, nil
}
