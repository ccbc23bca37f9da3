package auditlog

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"luvihelper/clients"
	"luvihelper/core"
	"luvihelper/models"
)

// RetentionPeriod is how long audit entries are kept before the daily
// cleanup job removes them.
const RetentionPeriod = 30 * 24 * time.Hour

type AuditLogStore interface {
	CreateAuditLogEntry(ctx context.Context, entry *models.AuditLogEntry) error
	DeleteEntriesOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// AuditLogService records notable bot activity to the database and,
// when configured, mirrors it to a Discord log channel. Recording is
// fire-and-forget: a failed write never blocks or fails the caller.
type AuditLogService struct {
	store         AuditLogStore
	discordClient clients.DiscordClient
	logChannelID  string
}

func NewAuditLogService(store AuditLogStore, discordClient clients.DiscordClient, logChannelID string) *AuditLogService {
	return &AuditLogService{
		store:         store,
		discordClient: discordClient,
		logChannelID:  logChannelID,
	}
}

func (s *AuditLogService) LogEvent(message string, fields map[string]string) {
	log.Printf("📋 Audit: %s %v", message, fields)

	entry := &models.AuditLogEntry{
		ID:        core.NewID("alog"),
		Message:   message,
		Context:   models.AuditContext(fields),
		CreatedAt: time.Now().UTC(),
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.store.CreateAuditLogEntry(ctx, entry); err != nil {
			log.Printf("⚠️ Failed to persist audit entry: %v", err)
		}

		if s.logChannelID == "" {
			return
		}
		if err := s.discordClient.SendChannelMessage(s.logChannelID, formatLogLine(message, fields), clients.AllowedMentions{}); err != nil {
			log.Printf("⚠️ Failed to mirror audit entry to log channel: %v", err)
		}
	}()
}

func (s *AuditLogService) CleanupOldEntries(ctx context.Context) error {
	log.Printf("📋 Starting to clean up audit entries older than %s", RetentionPeriod)
	cutoff := time.Now().UTC().Add(-RetentionPeriod)
	deleted, err := s.store.DeleteEntriesOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("failed to clean up old audit entries: %w", err)
	}

	log.Printf("📋 Completed successfully - removed %d audit entries", deleted)
	return nil
}

func formatLogLine(message string, fields map[string]string) string {
	if len(fields) == 0 {
		return fmt.Sprintf("📋 %s", message)
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, fields[k]))
	}

	return fmt.Sprintf("📋 %s (%s)", message, strings.Join(parts, ", "))
}
