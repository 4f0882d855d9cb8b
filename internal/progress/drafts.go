package progress

import (
	"github.com/google/uuid"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/pkg/models"
)

// Drafts manages the in-flight session draft. Draft writes ride their own
// queue resource, so they never wait behind progress-record mutations.
type Drafts struct {
	store *database.DraftStore
	queue *queue.Queue
	clock Clock
}

// NewDrafts creates a draft service. A nil clock falls back to the system
// clock.
func NewDrafts(store *database.DraftStore, q *queue.Queue, clock Clock) *Drafts {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Drafts{store: store, queue: q, clock: clock}
}

// Current returns the latest persisted draft.
func (d *Drafts) Current() models.SessionDraft {
	return d.store.Load()
}

// Begin starts a fresh draft for dayNumber, replacing any existing one. A
// non-positive day is a no-op returning the current draft.
func (d *Drafts) Begin(dayNumber int) (models.SessionDraft, error) {
	if dayNumber <= 0 {
		return d.Current(), nil
	}
	draft := models.SessionDraft{
		ID:        uuid.NewString(),
		DayNumber: dayNumber,
		StartedAt: models.DateKey(d.clock.Now()),
	}
	err := d.queue.Do(queue.ResourceDraft, func() error {
		return d.store.Save(draft)
	})
	return draft, err
}

// RecordBlock marks blockID finished and accumulates elapsed practice time
// on the active draft. Without an active draft it is a no-op.
func (d *Drafts) RecordBlock(blockID string, elapsedSeconds int) (models.SessionDraft, error) {
	var next models.SessionDraft
	err := d.queue.Do(queue.ResourceDraft, func() error {
		next = d.store.Load()
		if next.ID == "" {
			return nil
		}
		if blockID != "" {
			next.CompletedBlocks = addString(next.CompletedBlocks, blockID)
		}
		if elapsedSeconds > 0 {
			next.ElapsedSeconds += elapsedSeconds
		}
		return d.store.Save(next)
	})
	return next, err
}

// Clear discards the active draft.
func (d *Drafts) Clear() error {
	return d.queue.Do(queue.ResourceDraft, func() error {
		return d.store.Clear()
	})
}
