// Package reminders owns the set of armed delayed reminders: arming, firing,
// and supersession. Reminders are in-memory and best-effort; they do not
// survive a restart.
package reminders

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/samber/mo"

	"luvihelper/models"
	"luvihelper/services"
	"luvihelper/utils"
)

const (
	// StaminaReminderDelay is how long stamina takes to refill after the
	// source bot announces it is full
	StaminaReminderDelay = 100 * time.Minute
	// RaidSpawnReminderDelay is the raid spawn command cooldown
	RaidSpawnReminderDelay = 30 * time.Minute
	// DefaultStateReminderDelay is used for expedition/raid events whose
	// embed carried no parseable remaining time
	DefaultStateReminderDelay = 60 * time.Minute
)

// DelayForEvent returns the reminder delay for a parsed game event. Stamina
// and raid-spawn delays are fixed; expedition/raid delays come from the
// event's remaining time.
func DelayForEvent(event models.GameEvent) time.Duration {
	switch event.Kind {
	case models.GameEventStaminaFull:
		return StaminaReminderDelay
	case models.GameEventRaidSpawnCommand:
		return RaidSpawnReminderDelay
	case models.GameEventExpeditionComplete, models.GameEventRaidFatigue:
		if event.Remaining > 0 {
			return event.Remaining
		}
		return DefaultStateReminderDelay
	default:
		return DefaultStateReminderDelay
	}
}

type reminderKey struct {
	userID       string
	reminderType models.ReminderType
}

type pendingEntry struct {
	reminder   models.PendingReminder
	timer      *time.Timer
	generation uint64
}

// ReminderSchedulerService tracks pending reminders in a single mutex-owned
// map so that arm, supersede, and fire are linearizable per (user, type) key.
// A firing timer whose entry was replaced or removed is a silent no-op.
type ReminderSchedulerService struct {
	dispatcher services.Dispatcher
	auditLog   services.AuditLogger

	lock       sync.Mutex
	pending    map[reminderKey]*pendingEntry
	generation uint64
	stopped    bool
}

func NewReminderSchedulerService(
	dispatcher services.Dispatcher,
	auditLog services.AuditLogger,
) *ReminderSchedulerService {
	return &ReminderSchedulerService{
		dispatcher: dispatcher,
		auditLog:   auditLog,
		pending:    make(map[reminderKey]*pendingEntry),
	}
}

// Arm schedules the reminder to fire after delay. If a reminder for the same
// (user, type) key is already pending, it is replaced: the stale timer is
// stopped and its generation invalidated, so at most one delivery happens.
func (s *ReminderSchedulerService) Arm(reminder models.PendingReminder, delay time.Duration) {
	utils.AssertInvariant(reminder.UserID != "", "reminder user ID cannot be empty")
	utils.AssertInvariant(delay > 0, "reminder delay must be positive")

	s.lock.Lock()
	defer s.lock.Unlock()

	if s.stopped {
		return
	}

	key := reminderKey{userID: reminder.UserID, reminderType: reminder.Type}
	if existing, ok := s.pending[key]; ok {
		existing.timer.Stop()
		log.Printf("📋 Superseding pending %s reminder for user %s", reminder.Type, reminder.UserID)
	}

	s.generation++
	generation := s.generation

	reminder.ArmedAt = time.Now()
	reminder.FireAt = reminder.ArmedAt.Add(delay)

	entry := &pendingEntry{reminder: reminder, generation: generation}
	entry.timer = time.AfterFunc(delay, func() {
		s.fire(key, generation)
	})
	s.pending[key] = entry

	log.Printf("📋 Armed %s reminder for user %s, fires at %s",
		reminder.Type, reminder.UserID, reminder.FireAt.Format(time.RFC3339))
}

// fire delivers the reminder if its entry is still current. Re-checking the
// generation under the lock makes firing and re-arming mutually exclusive: a
// stale timer that lost the race finds a newer generation and backs off.
func (s *ReminderSchedulerService) fire(key reminderKey, generation uint64) {
	s.lock.Lock()
	entry, ok := s.pending[key]
	if !ok || entry.generation != generation {
		s.lock.Unlock()
		return
	}
	delete(s.pending, key)
	s.lock.Unlock()

	reminder := entry.reminder

	var err error
	if reminder.DeliverByDM {
		err = s.dispatcher.SendDirectMessage(reminder.UserID, reminder.Content)
	} else {
		err = s.dispatcher.SendUserMention(reminder.ChannelID, reminder.UserID, reminder.Content)
	}
	if err != nil {
		// not retried: the entry is already removed
		log.Printf("❌ Failed to deliver %s reminder to user %s: %v", reminder.Type, reminder.UserID, err)
		s.auditLog.LogEvent(
			fmt.Sprintf("Failed to deliver %s reminder: %v", reminder.Type, err),
			map[string]string{"user_id": reminder.UserID, "guild_id": reminder.GuildID},
		)
		return
	}

	log.Printf("📋 Delivered %s reminder to user %s", reminder.Type, reminder.UserID)
	s.auditLog.LogEvent(
		fmt.Sprintf("Delivered %s reminder", reminder.Type),
		map[string]string{"user_id": reminder.UserID, "guild_id": reminder.GuildID},
	)
}

func (s *ReminderSchedulerService) Pending(
	userID string,
	reminderType models.ReminderType,
) mo.Option[models.PendingReminder] {
	s.lock.Lock()
	defer s.lock.Unlock()

	entry, ok := s.pending[reminderKey{userID: userID, reminderType: reminderType}]
	if !ok {
		return mo.None[models.PendingReminder]()
	}
	return mo.Some(entry.reminder)
}

func (s *ReminderSchedulerService) PendingCount() int {
	s.lock.Lock()
	defer s.lock.Unlock()

	return len(s.pending)
}

// Stop cancels all pending timers and rejects further arming. Pending
// reminders are dropped, consistent with their volatile, best-effort nature.
func (s *ReminderSchedulerService) Stop() {
	s.lock.Lock()
	defer s.lock.Unlock()

	for key, entry := range s.pending {
		entry.timer.Stop()
		delete(s.pending, key)
	}
	s.stopped = true
}
