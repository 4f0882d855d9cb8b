package models

// AppSettings is the persisted application settings record, the third
// independent persistence resource next to progress and the session draft.
type AppSettings struct {
	ChatID           int64 `json:"chat_id"`
	ReminderHour     int   `json:"reminder_hour"`
	RemindersEnabled bool  `json:"reminders_enabled"`
}
