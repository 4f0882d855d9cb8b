package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/practicebot/internal/bot"
	"github.com/example/practicebot/internal/catalog"
	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/planconfig"
	"github.com/example/practicebot/internal/progress"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to load .env: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := database.Open(database.OptionsFromEnv())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	plan := planconfig.Load(envOr("REVIEW_PLAN_PATH", "data/review_plan.json"))

	cat, err := catalog.Load(envOr("LESSON_CATALOG_PATH", "data/lesson_catalog.json"))
	if err != nil {
		log.Fatalf("Failed to load lesson catalogue: %v", err)
	}
	cards, err := catalog.LoadCards(envOr("CARD_POOL_PATH", "data/card_pool.json"))
	if err != nil {
		log.Fatalf("Failed to load card pool: %v", err)
	}

	writeQueue := queue.New()
	defer writeQueue.Close()

	progressStore := database.NewProgressStore(store)
	draftStore := database.NewDraftStore(store)
	settingsStore := database.NewSettingsStore(store)

	service := progress.NewService(progressStore, writeQueue, nil)
	drafts := progress.NewDrafts(draftStore, writeQueue, nil)

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	b, err := bot.New(token, service, drafts, settingsStore, writeQueue, cat, cards, plan, nil)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	reminders := scheduler.New(b, service, settingsStore, plan, nil)
	reminders.Start()
	defer reminders.Stop()

	done := make(chan struct{})

	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := b.Stop(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
		close(done)
	}()

	log.Println("Bot started. Press Ctrl+C to stop.")
	go func() {
		if err := b.Start(ctx); err != nil && err != context.Canceled {
			log.Printf("Bot error: %v", err)
		}
	}()

	<-done
	log.Println("Bot stopped successfully")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
