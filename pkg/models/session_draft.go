package models

// SessionDraft is the persisted state of an in-flight practice session. It
// lives on its own persistence queue, independent of UserProgress.
type SessionDraft struct {
	ID              string   `json:"id"`
	DayNumber       int      `json:"day_number"`
	StartedAt       string   `json:"started_at,omitempty"` // local date key
	ElapsedSeconds  int      `json:"elapsed_seconds"`
	CompletedBlocks []string `json:"completed_blocks"`
}
