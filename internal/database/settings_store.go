package database

import (
	"encoding/json"
	"log"

	"github.com/example/practicebot/pkg/models"
)

const settingsKey = "app_settings"

// Settings defaults applied to absent fields.
const (
	DefaultReminderHour = 9
)

// SettingsStore persists the application settings record.
type SettingsStore struct {
	store *Store
}

// NewSettingsStore creates a new repository instance.
func NewSettingsStore(store *Store) *SettingsStore {
	return &SettingsStore{store: store}
}

// storedSettings uses pointers so an absent field can fall back to its
// default instead of the type's zero value.
type storedSettings struct {
	ChatID           *int64 `json:"chat_id"`
	ReminderHour     *int   `json:"reminder_hour"`
	RemindersEnabled *bool  `json:"reminders_enabled"`
}

// Load returns the current settings with defaults filled in. It never fails.
func (r *SettingsStore) Load() models.AppSettings {
	settings := models.AppSettings{
		ReminderHour:     DefaultReminderHour,
		RemindersEnabled: true,
	}
	raw, found, err := r.store.Get(settingsKey)
	if err != nil {
		log.Printf("failed to load settings, using defaults: %v", err)
		return settings
	}
	if !found {
		return settings
	}
	var stored storedSettings
	if err := json.Unmarshal(raw, &stored); err != nil {
		log.Printf("settings blob is malformed, using defaults: %v", err)
		return settings
	}
	if stored.ChatID != nil {
		settings.ChatID = *stored.ChatID
	}
	if stored.ReminderHour != nil && *stored.ReminderHour >= 0 && *stored.ReminderHour <= 23 {
		settings.ReminderHour = *stored.ReminderHour
	}
	if stored.RemindersEnabled != nil {
		settings.RemindersEnabled = *stored.RemindersEnabled
	}
	return settings
}

// Save persists the settings record.
func (r *SettingsStore) Save(settings models.AppSettings) error {
	if settings.ReminderHour < 0 || settings.ReminderHour > 23 {
		settings.ReminderHour = DefaultReminderHour
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		return err
	}
	return r.store.Set(settingsKey, raw)
}
