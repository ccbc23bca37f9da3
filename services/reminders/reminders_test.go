package reminders

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"luvihelper/models"
	"luvihelper/services"
)

func setupScheduler(t *testing.T) (*ReminderSchedulerService, *services.MockDispatcher, *services.MockAuditLogger) {
	t.Helper()
	dispatcher := new(services.MockDispatcher)
	auditLog := new(services.MockAuditLogger)
	auditLog.On("LogEvent", mock.Anything, mock.Anything).Maybe()

	scheduler := NewReminderSchedulerService(dispatcher, auditLog)
	t.Cleanup(scheduler.Stop)
	return scheduler, dispatcher, auditLog
}

func staminaReminder(userID string) models.PendingReminder {
	return models.PendingReminder{
		UserID:    userID,
		Type:      models.ReminderStamina,
		GuildID:   "G1",
		ChannelID: "C1",
		Content:   "⚡ Your stamina should be full again!",
	}
}

func TestReminderScheduler(t *testing.T) {
	t.Run("FiresAfterDelay", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		delivered := make(chan struct{})
		dispatcher.On("SendUserMention", "C1", "U1", mock.Anything).
			Run(func(args mock.Arguments) { close(delivered) }).
			Return(nil).
			Once()

		scheduler.Arm(staminaReminder("U1"), 20*time.Millisecond)
		assert.Equal(t, 1, scheduler.PendingCount())

		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("reminder was not delivered")
		}

		require.Eventually(t, func() bool { return scheduler.PendingCount() == 0 },
			time.Second, 5*time.Millisecond)
		dispatcher.AssertExpectations(t)
	})

	t.Run("DeliversByDMWhenRequested", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		delivered := make(chan struct{})
		dispatcher.On("SendDirectMessage", "U1", mock.Anything).
			Run(func(args mock.Arguments) { close(delivered) }).
			Return(nil).
			Once()

		reminder := staminaReminder("U1")
		reminder.DeliverByDM = true
		scheduler.Arm(reminder, 20*time.Millisecond)

		select {
		case <-delivered:
		case <-time.After(time.Second):
			t.Fatal("DM reminder was not delivered")
		}
		dispatcher.AssertExpectations(t)
	})

	t.Run("AtMostOnePendingPerKey", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		delivered := make(chan string, 2)
		dispatcher.On("SendUserMention", mock.Anything, "U1", mock.Anything).
			Run(func(args mock.Arguments) { delivered <- args.String(2) }).
			Return(nil)

		first := staminaReminder("U1")
		first.Content = "first"
		second := staminaReminder("U1")
		second.Content = "second"

		scheduler.Arm(first, 30*time.Millisecond)
		scheduler.Arm(second, 30*time.Millisecond)

		assert.Equal(t, 1, scheduler.PendingCount())
		maybePending := scheduler.Pending("U1", models.ReminderStamina)
		require.True(t, maybePending.IsPresent())
		assert.Equal(t, "second", maybePending.MustGet().Content)

		select {
		case content := <-delivered:
			assert.Equal(t, "second", content)
		case <-time.After(time.Second):
			t.Fatal("reminder was not delivered")
		}

		// total deliveries stays at one
		time.Sleep(60 * time.Millisecond)
		assert.Len(t, delivered, 0)
	})

	t.Run("ReArmPushesFireTimeBack", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		delivered := make(chan time.Time, 2)
		dispatcher.On("SendUserMention", mock.Anything, "U1", mock.Anything).
			Run(func(args mock.Arguments) { delivered <- time.Now() }).
			Return(nil)

		// arm at T0 for T0+100ms, re-arm at T0+50ms for T0+150ms: nothing
		// fires at T0+100ms, exactly one delivery near T0+150ms
		start := time.Now()
		scheduler.Arm(staminaReminder("U1"), 100*time.Millisecond)
		time.Sleep(50 * time.Millisecond)
		scheduler.Arm(staminaReminder("U1"), 100*time.Millisecond)

		select {
		case firedAt := <-delivered:
			elapsed := firedAt.Sub(start)
			assert.GreaterOrEqual(t, elapsed, 140*time.Millisecond,
				"reminder fired from the superseded timer")
		case <-time.After(time.Second):
			t.Fatal("reminder was not delivered")
		}

		time.Sleep(50 * time.Millisecond)
		assert.Len(t, delivered, 0, "superseded timer also delivered")
	})

	t.Run("DistinctTypesAreIndependent", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		dispatcher.On("SendUserMention", mock.Anything, "U1", mock.Anything).Return(nil)

		stamina := staminaReminder("U1")
		raid := staminaReminder("U1")
		raid.Type = models.ReminderRaid

		scheduler.Arm(stamina, time.Minute)
		scheduler.Arm(raid, time.Minute)

		assert.Equal(t, 2, scheduler.PendingCount())
		assert.True(t, scheduler.Pending("U1", models.ReminderStamina).IsPresent())
		assert.True(t, scheduler.Pending("U1", models.ReminderRaid).IsPresent())
	})

	t.Run("DeliveryFailureRemovesEntryWithoutRetry", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		attempted := make(chan struct{})
		dispatcher.On("SendUserMention", "C1", "U1", mock.Anything).
			Run(func(args mock.Arguments) { close(attempted) }).
			Return(fmt.Errorf("channel deleted")).
			Once()

		scheduler.Arm(staminaReminder("U1"), 20*time.Millisecond)

		select {
		case <-attempted:
		case <-time.After(time.Second):
			t.Fatal("delivery was never attempted")
		}

		require.Eventually(t, func() bool { return scheduler.PendingCount() == 0 },
			time.Second, 5*time.Millisecond)
		dispatcher.AssertExpectations(t)
	})

	t.Run("StopCancelsAllPending", func(t *testing.T) {
		scheduler, dispatcher, _ := setupScheduler(t)

		scheduler.Arm(staminaReminder("U1"), 30*time.Millisecond)
		scheduler.Arm(staminaReminder("U2"), 30*time.Millisecond)
		scheduler.Stop()

		assert.Equal(t, 0, scheduler.PendingCount())
		time.Sleep(60 * time.Millisecond)
		dispatcher.AssertNotCalled(t, "SendUserMention", mock.Anything, mock.Anything, mock.Anything)

		// arming after stop is a no-op
		scheduler.Arm(staminaReminder("U3"), time.Minute)
		assert.Equal(t, 0, scheduler.PendingCount())
	})
}

func TestDelayForEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    models.GameEvent
		expected time.Duration
	}{
		{"StaminaIsFixed", models.GameEvent{Kind: models.GameEventStaminaFull}, StaminaReminderDelay},
		{"RaidSpawnIsFixed", models.GameEvent{Kind: models.GameEventRaidSpawnCommand}, RaidSpawnReminderDelay},
		{
			"ExpeditionUsesRemaining",
			models.GameEvent{Kind: models.GameEventExpeditionComplete, Remaining: 90 * time.Minute},
			90 * time.Minute,
		},
		{
			"ExpeditionDefaultsWithoutRemaining",
			models.GameEvent{Kind: models.GameEventExpeditionComplete},
			DefaultStateReminderDelay,
		},
		{
			"RaidUsesRemaining",
			models.GameEvent{Kind: models.GameEventRaidFatigue, Remaining: 45 * time.Minute},
			45 * time.Minute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DelayForEvent(tt.event))
		})
	}
}
