package database

import (
	"encoding/json"
	"log"

	"github.com/example/practicebot/pkg/models"
)

const draftKey = "session_draft"

// DraftStore persists the in-flight session draft. Drafts live on their own
// persistence queue, independent of the progress record.
type DraftStore struct {
	store *Store
}

// NewDraftStore creates a new repository instance.
func NewDraftStore(store *Store) *DraftStore {
	return &DraftStore{store: store}
}

// Load returns the current draft, or a zero-value draft if none is stored.
// Like ProgressStore.Load it never fails.
func (r *DraftStore) Load() models.SessionDraft {
	var d models.SessionDraft
	raw, found, err := r.store.Get(draftKey)
	if err != nil {
		log.Printf("failed to load session draft, starting empty: %v", err)
		return SanitizeDraft(d)
	}
	if !found {
		return SanitizeDraft(d)
	}
	if err := json.Unmarshal(raw, &d); err != nil {
		log.Printf("session draft blob is malformed, sanitizing: %v", err)
	}
	return SanitizeDraft(d)
}

// Save persists the sanitized form of d.
func (r *DraftStore) Save(d models.SessionDraft) error {
	raw, err := json.Marshal(SanitizeDraft(d))
	if err != nil {
		return err
	}
	return r.store.Set(draftKey, raw)
}

// Clear removes the stored draft.
func (r *DraftStore) Clear() error {
	return r.store.Delete(draftKey)
}
