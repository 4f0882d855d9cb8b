// Package scheduler runs the daily reminder loop. It only queries the
// engine for today's decision and hands one line to a Notifier; the delivery
// transport is the notifier's business.
package scheduler

import (
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/progress"
	"github.com/example/practicebot/internal/review"
	"github.com/example/practicebot/pkg/models"
)

// Notifier delivers the daily reminder.
type Notifier interface {
	SendDailyReminder(resolution models.DailyModeResolution, streak int) error
}

// Scheduler manages scheduled tasks for the application.
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
	service   *progress.Service
	settings  *database.SettingsStore
	plan      models.ReviewPlan
	clock     progress.Clock
}

// New creates a new scheduler instance. A nil clock falls back to the system
// clock.
func New(notifier Notifier, service *progress.Service, settings *database.SettingsStore, plan models.ReviewPlan, clock progress.Clock) *Scheduler {
	if clock == nil {
		clock = progress.SystemClock{}
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		notifier:  notifier,
		service:   service,
		settings:  settings,
		plan:      plan,
		clock:     clock,
	}
}

// Start begins running all scheduled tasks.
func (s *Scheduler) Start() {
	// Hourly check so a changed reminder hour takes effect without restart
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) checkAndSendReminder() {
	settings := s.settings.Load()
	if !settings.RemindersEnabled {
		return
	}

	now := s.clock.Now()
	if now.Hour() != settings.ReminderHour {
		return
	}

	current := s.service.Current()
	if current.LastCompletedDate == models.DateKey(now) {
		// today's session is already done
		return
	}

	resolution := review.ResolveDailyMode(current, s.plan, now)
	if err := s.notifier.SendDailyReminder(resolution, current.Streak); err != nil {
		log.Printf("failed to send daily reminder: %v", err)
	}
}

// RunManualCheck forces a reminder regardless of the configured hour.
func (s *Scheduler) RunManualCheck() error {
	now := s.clock.Now()
	current := s.service.Current()
	resolution := review.ResolveDailyMode(current, s.plan, now)
	return s.notifier.SendDailyReminder(resolution, current.Streak)
}
