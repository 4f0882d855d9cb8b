// Package bot is the thin Telegram surface over the scheduling engine. It
// translates commands into engine queries and mutations; every scheduling
// decision comes from the review package and every write goes through the
// progress services.
package bot

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/practicebot/internal/catalog"
	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/progress"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/internal/review"
	"github.com/example/practicebot/pkg/models"
)

// Bot wires the Telegram API to the engine.
type Bot struct {
	api      *tgbotapi.BotAPI
	service  *progress.Service
	drafts   *progress.Drafts
	settings *database.SettingsStore
	queue    *queue.Queue
	catalog  *catalog.Catalog
	cards    []models.ReviewCard
	plan     models.ReviewPlan
	clock    progress.Clock
}

// New creates a bot. A nil clock falls back to the system clock.
func New(token string, service *progress.Service, drafts *progress.Drafts, settings *database.SettingsStore,
	q *queue.Queue, cat *catalog.Catalog, cards []models.ReviewCard, plan models.ReviewPlan, clock progress.Clock) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %v", err)
	}
	if clock == nil {
		clock = progress.SystemClock{}
	}
	return &Bot{
		api:      api,
		service:  service,
		drafts:   drafts,
		settings: settings,
		queue:    q,
		catalog:  cat,
		cards:    cards,
		plan:     plan,
		clock:    clock,
	}, nil
}

// Start runs the update loop until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	log.Printf("bot authorized as %s", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			b.handleCommand(update.Message)
		}
	}
}

func (b *Bot) handleCommand(msg *tgbotapi.Message) {
	var reply string
	switch msg.Command() {
	case "start":
		reply = b.handleStart(msg.Chat.ID)
	case "today":
		reply = b.handleToday()
	case "begin":
		reply = b.handleBegin()
	case "block":
		reply = b.handleBlock(msg.CommandArguments())
	case "done":
		reply = b.handleDone(msg.CommandArguments())
	case "review":
		reply = b.handleReview(msg.CommandArguments())
	case "checkpoint":
		reply = b.handleCheckpoint()
	case "guardrail":
		reply = b.handleGuardrail()
	case "streak":
		reply = b.handleStreak()
	case "remind":
		reply = b.handleRemind(msg.CommandArguments())
	default:
		reply = "Unknown command. Try /today, /begin, /block, /done, /review, /checkpoint, /guardrail, /streak or /remind."
	}
	b.send(msg.Chat.ID, reply)
}

func (b *Bot) handleStart(chatID int64) string {
	err := b.queue.Do(queue.ResourceSettings, func() error {
		settings := b.settings.Load()
		settings.ChatID = chatID
		return b.settings.Save(settings)
	})
	if err != nil {
		log.Printf("failed to save chat id: %v", err)
	}
	return fmt.Sprintf("Welcome! This is a %d-day program. Use /today to see what's next.", b.catalog.TotalDays())
}

func (b *Bot) handleToday() string {
	now := b.clock.Now()
	current := b.service.Current()
	resolution := review.ResolveDailyMode(current, b.plan, now)

	if resolution.ReinforcementCheckpointDay > 0 {
		if _, err := b.service.MarkReinforcementCheckpointOffered(resolution.ReinforcementCheckpointDay); err != nil {
			log.Printf("failed to mark checkpoint offered: %v", err)
		}
	}

	return formatResolution(resolution, b.plan)
}

// handleBegin opens a session draft for today's day so partial work survives
// a restart.
func (b *Bot) handleBegin() string {
	current := b.service.Current()
	draft, err := b.drafts.Begin(current.CurrentDay)
	if err != nil {
		return "Could not start the session: " + err.Error()
	}
	return fmt.Sprintf("Session started for day %d. Record blocks with /block <id> <minutes>.", draft.DayNumber)
}

// handleBlock records a finished block on the active draft.
func (b *Bot) handleBlock(args string) string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return "Usage: /block <id> [minutes]"
	}
	seconds := 0
	if len(fields) > 1 {
		if minutes, err := strconv.Atoi(fields[1]); err == nil && minutes > 0 {
			seconds = minutes * 60
		}
	}
	draft, err := b.drafts.RecordBlock(fields[0], seconds)
	if err != nil {
		return "Could not record the block: " + err.Error()
	}
	if draft.ID == "" {
		return "No session in progress. Start one with /begin."
	}
	return fmt.Sprintf("Recorded %s. %d blocks done, %d minutes so far.",
		fields[0], len(draft.CompletedBlocks), draft.ElapsedSeconds/60)
}

// handleDone completes today's prescribed session. The optional argument is
// the session length in minutes; without it the draft's accumulated time is
// used.
func (b *Bot) handleDone(args string) string {
	now := b.clock.Now()
	current := b.service.Current()
	resolution := review.ResolveDailyMode(current, b.plan, now)

	seconds := 0
	if trimmed := strings.TrimSpace(args); trimmed != "" {
		if minutes, err := strconv.Atoi(trimmed); err == nil && minutes > 0 {
			seconds = minutes * 60
		}
	}
	if seconds == 0 {
		seconds = b.drafts.Current().ElapsedSeconds
	}

	switch resolution.Mode {
	case models.ModeLightReview:
		if _, err := b.service.CompleteLightReview(now); err != nil {
			return "Could not record the review: " + err.Error()
		}
	case models.ModeDeepConsolidation:
		if _, err := b.service.CompleteDeepConsolidation(now); err != nil {
			return "Could not record the review: " + err.Error()
		}
	default:
		if _, err := b.service.CompleteSession(resolution.CurrentDay, seconds, b.catalog.TotalDays()); err != nil {
			return "Could not record the session: " + err.Error()
		}
	}
	updated, err := b.service.IncrementReviewModeCompletion(resolution.Mode)
	if err != nil {
		return "Could not record the session: " + err.Error()
	}
	if err := b.drafts.Clear(); err != nil {
		log.Printf("failed to clear session draft: %v", err)
	}

	return fmt.Sprintf("Done! Day %d, streak %d, %d minutes total.",
		updated.CurrentDay, updated.Streak, updated.TotalMinutes)
}

func (b *Bot) handleReview(args string) string {
	now := b.clock.Now()
	current := b.service.Current()

	if strings.TrimSpace(args) == "done" {
		if _, err := b.service.MarkMicroReviewCompleted(now); err != nil {
			return "Could not record the micro-review: " + err.Error()
		}
		return "Micro-review finished, nice."
	}

	plan := review.ResolveMicroReviewPlan(b.catalog.Days(), b.cards, current.CurrentDay, b.plan)
	if _, err := b.service.MarkMicroReviewShown(now); err != nil {
		log.Printf("failed to mark micro-review shown: %v", err)
	}

	if plan.Source == models.MicroReviewNone && len(plan.MemorySentences) == 0 {
		return "Nothing to review from yesterday yet."
	}

	var sb strings.Builder
	sb.WriteString("Quick review of yesterday:\n")
	for _, card := range plan.Cards {
		fmt.Fprintf(&sb, "• %s — %s\n", card.Prompt, card.Answer)
	}
	if len(plan.MemorySentences) > 0 {
		sb.WriteString("Memory sentences:\n")
		for _, sentence := range plan.MemorySentences {
			fmt.Fprintf(&sb, "• %s\n", sentence)
		}
	}
	sb.WriteString("Reply /review done when finished.")
	return sb.String()
}

func (b *Bot) handleCheckpoint() string {
	now := b.clock.Now()
	current := b.service.Current()
	resolution := review.ResolveDailyMode(current, b.plan, now)

	if resolution.ReinforcementCheckpointDay == 0 {
		return "No reinforcement checkpoint is due."
	}
	if _, err := b.service.CompleteReinforcementCheckpoint(resolution.ReinforcementCheckpointDay); err != nil {
		return "Could not record the checkpoint: " + err.Error()
	}
	remaining := len(resolution.PendingReinforcementCheckpointDays) - 1
	if remaining > 0 {
		return fmt.Sprintf("Checkpoint day %d done. %d older checkpoints still pending.",
			resolution.ReinforcementCheckpointDay, remaining)
	}
	return fmt.Sprintf("Checkpoint day %d done.", resolution.ReinforcementCheckpointDay)
}

func (b *Bot) handleGuardrail() string {
	summary := review.EvaluateGuardrail(b.service.Current(), review.DefaultGuardrailMin, review.DefaultGuardrailMax)
	return fmt.Sprintf("%s (forward %d, review %d, ratio %.2f)",
		summary.Message, summary.ForwardCount, summary.ReinforcementCount, summary.ReinforcementRatio)
}

func (b *Bot) handleStreak() string {
	current := b.service.Current()
	return fmt.Sprintf("Streak: %d days. Day %d of %d, %d minutes practiced.",
		current.Streak, current.CurrentDay, b.catalog.TotalDays(), current.TotalMinutes)
}

// handleRemind sets the reminder hour ("/remind 8") or disables reminders
// ("/remind off").
func (b *Bot) handleRemind(args string) string {
	trimmed := strings.TrimSpace(args)
	var reply string
	err := b.queue.Do(queue.ResourceSettings, func() error {
		settings := b.settings.Load()
		if trimmed == "off" {
			settings.RemindersEnabled = false
			reply = "Reminders disabled."
			return b.settings.Save(settings)
		}
		hour, err := strconv.Atoi(trimmed)
		if err != nil || hour < 0 || hour > 23 {
			reply = "Usage: /remind <hour 0-23> or /remind off"
			return nil
		}
		settings.ReminderHour = hour
		settings.RemindersEnabled = true
		reply = fmt.Sprintf("Reminders set to %02d:00.", hour)
		return b.settings.Save(settings)
	})
	if err != nil {
		return "Could not update reminders: " + err.Error()
	}
	return reply
}

// SendDailyReminder implements scheduler.Notifier.
func (b *Bot) SendDailyReminder(resolution models.DailyModeResolution, streak int) error {
	settings := b.settings.Load()
	if settings.ChatID == 0 {
		// nobody has /start-ed yet
		return nil
	}
	text := fmt.Sprintf("Reminder — %s\nStreak: %d days.", formatResolution(resolution, b.plan), streak)
	return b.sendErr(settings.ChatID, text)
}

func (b *Bot) send(chatID int64, text string) {
	if err := b.sendErr(chatID, text); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) sendErr(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := b.api.Send(msg)
	return err
}

func formatResolution(resolution models.DailyModeResolution, plan models.ReviewPlan) string {
	var sb strings.Builder
	switch resolution.Mode {
	case models.ModeMilestone:
		fmt.Fprintf(&sb, "Day %d is a milestone day! Run the milestone assessment.", resolution.CurrentDay)
	case models.ModeLightReview:
		fmt.Fprintf(&sb, "Light review day (%d–%d min):", plan.LightReview.DurationMinutesMin, plan.LightReview.DurationMinutesMax)
		for _, block := range plan.LightReview.Blocks {
			fmt.Fprintf(&sb, "\n• %s", block.Title)
		}
	case models.ModeDeepConsolidation:
		fmt.Fprintf(&sb, "Deep consolidation day (%d min):", plan.DeepConsolidation.DurationMinutes)
		for _, block := range plan.DeepConsolidation.Blocks {
			fmt.Fprintf(&sb, "\n• %s", block.Title)
		}
	default:
		fmt.Fprintf(&sb, "New material: day %d. Start with /review.", resolution.CurrentDay)
	}
	if resolution.ReinforcementCheckpointDay > 0 {
		fmt.Fprintf(&sb, "\nCheckpoint due: revisit day %d (reached day %d). Finish it with /checkpoint.",
			resolution.ReinforcementReviewDay, resolution.ReinforcementCheckpointDay)
	}
	return sb.String()
}

// Stop shuts the bot down, waiting briefly like the rest of the process.
func (b *Bot) Stop(ctx context.Context) error {
	b.api.StopReceivingUpdates()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}
