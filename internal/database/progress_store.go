package database

import (
	"encoding/json"
	"log"

	"github.com/example/practicebot/pkg/models"
)

const progressKey = "user_progress"

// ProgressStore persists the single UserProgress record.
type ProgressStore struct {
	store *Store
}

// NewProgressStore creates a new repository instance.
func NewProgressStore(store *Store) *ProgressStore {
	return &ProgressStore{store: store}
}

// Load returns the current progress record. It never fails: a missing,
// unreadable, or corrupt blob yields a sanitized zero-value record, so the
// scheduler always has a valid state to work from.
func (r *ProgressStore) Load() models.UserProgress {
	var p models.UserProgress
	raw, found, err := r.store.Get(progressKey)
	if err != nil {
		log.Printf("failed to load progress, starting from defaults: %v", err)
		return SanitizeProgress(p)
	}
	if !found {
		return SanitizeProgress(p)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		// Keep whatever fields decoded before the error; the sanitizer
		// fills the rest with defaults.
		log.Printf("progress blob is malformed, sanitizing: %v", err)
	}
	return SanitizeProgress(p)
}

// Save persists the sanitized form of p, so stored data is always
// self-consistent regardless of what the caller passed in.
func (r *ProgressStore) Save(p models.UserProgress) error {
	raw, err := json.Marshal(SanitizeProgress(p))
	if err != nil {
		return err
	}
	return r.store.Set(progressKey, raw)
}
