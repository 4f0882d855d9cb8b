// Package progress owns every mutation of the persisted UserProgress record.
// Callers never modify the record directly: each operation here reads the
// current record, computes the next one, and writes it back atomically
// behind the per-resource persistence queue.
package progress

import (
	"sort"
	"time"

	"github.com/example/practicebot/internal/database"
	"github.com/example/practicebot/internal/queue"
	"github.com/example/practicebot/pkg/models"
)

// Service applies the progress mutation catalogue. All operations are
// idempotent with respect to same-day or same-checkpoint repetition.
type Service struct {
	store *database.ProgressStore
	queue *queue.Queue
	clock Clock
}

// NewService creates a progress service. A nil clock falls back to the
// system clock.
func NewService(store *database.ProgressStore, q *queue.Queue, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{store: store, queue: q, clock: clock}
}

// Current returns the latest persisted record. The read bypasses the queue,
// so it may trail writes still draining, but it is never torn.
func (s *Service) Current() models.UserProgress {
	return s.store.Load()
}

// mutate runs fn as a queued read-modify-write and returns the record fn
// produced. On a write error the record was not persisted.
func (s *Service) mutate(fn func(models.UserProgress) models.UserProgress) (models.UserProgress, error) {
	var next models.UserProgress
	err := s.queue.Do(queue.ResourceProgress, func() error {
		next = fn(s.store.Load())
		return s.store.Save(next)
	})
	return next, err
}

// CompleteSession records a finished practice session for completedDay.
// The streak grows only across consecutive local days; repeating a session
// on the same local day leaves it unchanged. currentDay advances (capped at
// totalDays) only when the completed day is the current one, so replaying a
// past day in practice mode never moves the pointer.
func (s *Service) CompleteSession(completedDay, sessionSeconds, totalDays int) (models.UserProgress, error) {
	now := s.clock.Now()
	today := models.DateKey(now)
	yesterday := models.DateKey(now.AddDate(0, 0, -1))

	return s.mutate(func(p models.UserProgress) models.UserProgress {
		switch p.LastCompletedDate {
		case today:
			// same-day repeat, streak unchanged
		case yesterday:
			p.Streak++
		default:
			p.Streak = 1
		}

		p.SessionsCompleted = addDayNumber(p.SessionsCompleted, completedDay)

		if sessionSeconds > 0 {
			p.TotalMinutes += (sessionSeconds + 59) / 60
		}

		if completedDay == p.CurrentDay && p.CurrentDay < totalDays {
			p.CurrentDay++
		}

		p.LastCompletedDate = today
		return p
	})
}

// CompleteLightReview records a finished light review for date's local day.
func (s *Service) CompleteLightReview(date time.Time) (models.UserProgress, error) {
	key := models.DateKey(date)
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.LightReviewCompletedDates = addString(p.LightReviewCompletedDates, key)
		return p
	})
}

// CompleteDeepConsolidation records a finished deep consolidation session
// for date's local day.
func (s *Service) CompleteDeepConsolidation(date time.Time) (models.UserProgress, error) {
	key := models.DateKey(date)
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.DeepConsolidationCompletedDates = addString(p.DeepConsolidationCompletedDates, key)
		return p
	})
}

// CompleteReinforcementCheckpoint marks checkpointDay as completed (and
// offered). A non-positive day is a no-op returning the current record.
func (s *Service) CompleteReinforcementCheckpoint(checkpointDay int) (models.UserProgress, error) {
	if checkpointDay <= 0 {
		return s.Current(), nil
	}
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.CompletedReinforcementCheckpointDays = addDayNumber(p.CompletedReinforcementCheckpointDays, checkpointDay)
		p.OfferedReinforcementCheckpointDays = addDayNumber(p.OfferedReinforcementCheckpointDays, checkpointDay)
		return p
	})
}

// MarkReinforcementCheckpointOffered records that the resolver surfaced
// checkpointDay. A non-positive day is a no-op.
func (s *Service) MarkReinforcementCheckpointOffered(checkpointDay int) (models.UserProgress, error) {
	if checkpointDay <= 0 {
		return s.Current(), nil
	}
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.OfferedReinforcementCheckpointDays = addDayNumber(p.OfferedReinforcementCheckpointDays, checkpointDay)
		return p
	})
}

// MarkMicroReviewShown records that date's micro-review was displayed.
func (s *Service) MarkMicroReviewShown(date time.Time) (models.UserProgress, error) {
	key := models.DateKey(date)
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.MicroReviewShownDates = addString(p.MicroReviewShownDates, key)
		return p
	})
}

// MarkMicroReviewCompleted records that date's micro-review was finished.
// Completing implies having been shown.
func (s *Service) MarkMicroReviewCompleted(date time.Time) (models.UserProgress, error) {
	key := models.DateKey(date)
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		p.MicroReviewShownDates = addString(p.MicroReviewShownDates, key)
		p.MicroReviewCompletedDates = addString(p.MicroReviewCompletedDates, key)
		return p
	})
}

// IncrementReviewModeCompletion bumps the never-reset counter for mode. An
// unknown mode is a no-op.
func (s *Service) IncrementReviewModeCompletion(mode models.ReviewMode) (models.UserProgress, error) {
	switch mode {
	case models.ModeNewDay, models.ModeLightReview, models.ModeDeepConsolidation, models.ModeMilestone:
	default:
		return s.Current(), nil
	}
	return s.mutate(func(p models.UserProgress) models.UserProgress {
		switch mode {
		case models.ModeNewDay:
			p.ReviewModeCompletionCounts.NewDay++
		case models.ModeLightReview:
			p.ReviewModeCompletionCounts.LightReview++
		case models.ModeDeepConsolidation:
			p.ReviewModeCompletionCounts.DeepConsolidation++
		case models.ModeMilestone:
			p.ReviewModeCompletionCounts.Milestone++
		}
		return p
	})
}

// addDayNumber inserts day into the sorted set, ignoring duplicates and
// non-positive values.
func addDayNumber(set []int, day int) []int {
	if day <= 0 {
		return set
	}
	i := sort.SearchInts(set, day)
	if i < len(set) && set[i] == day {
		return set
	}
	set = append(set, 0)
	copy(set[i+1:], set[i:])
	set[i] = day
	return set
}

// addString inserts key into the sorted string set, ignoring duplicates.
func addString(set []string, key string) []string {
	i := sort.SearchStrings(set, key)
	if i < len(set) && set[i] == key {
		return set
	}
	set = append(set, "")
	copy(set[i+1:], set[i:])
	set[i] = key
	return set
}
