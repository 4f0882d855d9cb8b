package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/planconfig"
	"github.com/example/practicebot/internal/progress"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/pkg/models"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fakeNotifier struct {
	sent []models.DailyModeResolution
}

func (n *fakeNotifier) SendDailyReminder(resolution models.DailyModeResolution, streak int) error {
	n.sent = append(n.sent, resolution)
	return nil
}

func newTestScheduler(t *testing.T, now time.Time) (*Scheduler, *fakeNotifier, *progress.Service, *database.SettingsStore) {
	t.Helper()
	store, err := database.Open(database.Options{Driver: "sqlite3", DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	q := queue.New()
	t.Cleanup(q.Close)

	clock := fixedClock{now: now}
	service := progress.NewService(database.NewProgressStore(store), q, clock)
	settings := database.NewSettingsStore(store)
	notifier := &fakeNotifier{}

	return New(notifier, service, settings, planconfig.DefaultPlan(), clock), notifier, service, settings
}

func TestReminderFiresAtConfiguredHour(t *testing.T) {
	now := time.Date(2026, 8, 28, database.DefaultReminderHour, 5, 0, 0, time.Local)
	s, notifier, _, _ := newTestScheduler(t, now)

	s.checkAndSendReminder()
	require.Len(t, notifier.sent, 1)
	require.Equal(t, models.ModeNewDay, notifier.sent[0].Mode)
}

func TestReminderSkipsOtherHours(t *testing.T) {
	now := time.Date(2026, 8, 28, database.DefaultReminderHour+1, 0, 0, 0, time.Local)
	s, notifier, _, _ := newTestScheduler(t, now)

	s.checkAndSendReminder()
	require.Empty(t, notifier.sent)
}

func TestReminderSkipsWhenDisabled(t *testing.T) {
	now := time.Date(2026, 8, 28, database.DefaultReminderHour, 0, 0, 0, time.Local)
	s, notifier, _, settings := newTestScheduler(t, now)

	current := settings.Load()
	current.RemindersEnabled = false
	require.NoError(t, settings.Save(current))

	s.checkAndSendReminder()
	require.Empty(t, notifier.sent)
}

func TestReminderSkipsWhenTodayIsDone(t *testing.T) {
	now := time.Date(2026, 8, 28, database.DefaultReminderHour, 0, 0, 0, time.Local)
	s, notifier, service, _ := newTestScheduler(t, now)

	_, err := service.CompleteSession(1, 600, 90)
	require.NoError(t, err)

	s.checkAndSendReminder()
	require.Empty(t, notifier.sent)
}

func TestRunManualCheckIgnoresHourWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 23, 0, 0, 0, time.Local)
	s, notifier, _, _ := newTestScheduler(t, now)

	require.NoError(t, s.RunManualCheck())
	require.Len(t, notifier.sent, 1)
}
