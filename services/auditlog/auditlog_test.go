package auditlog

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discordclient "luvihelper/clients/discord"
	"luvihelper/models"
)

type MockAuditLogStore struct {
	mock.Mock
}

func (m *MockAuditLogStore) CreateAuditLogEntry(ctx context.Context, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogStore) DeleteEntriesOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func TestAuditLogService(t *testing.T) {
	t.Run("CleanupOldEntries", func(t *testing.T) {
		t.Run("DeletesBeyondRetention", func(t *testing.T) {
			mockStore := new(MockAuditLogStore)
			mockClient := new(discordclient.MockDiscordClient)
			service := NewAuditLogService(mockStore, mockClient, "")

			mockStore.On("DeleteEntriesOlderThan", mock.Anything, mock.MatchedBy(func(cutoff time.Time) bool {
				return time.Since(cutoff) > RetentionPeriod-time.Minute
			})).Return(int64(12), nil)

			err := service.CleanupOldEntries(context.Background())
			require.NoError(t, err)
			mockStore.AssertExpectations(t)
		})

		t.Run("WrapsStoreError", func(t *testing.T) {
			mockStore := new(MockAuditLogStore)
			mockClient := new(discordclient.MockDiscordClient)
			service := NewAuditLogService(mockStore, mockClient, "")

			mockStore.On("DeleteEntriesOlderThan", mock.Anything, mock.Anything).
				Return(int64(0), fmt.Errorf("connection reset"))

			err := service.CleanupOldEntries(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to clean up old audit entries")
		})
	})

	t.Run("FormatLogLine", func(t *testing.T) {
		t.Run("NoFields", func(t *testing.T) {
			assert.Equal(t, "📋 boss detected", formatLogLine("boss detected", nil))
		})

		t.Run("FieldsAreSorted", func(t *testing.T) {
			line := formatLogLine("reminder armed", map[string]string{"user": "U1", "type": "stamina"})
			assert.Equal(t, "📋 reminder armed (type=stamina, user=U1)", line)
		})
	})
}
