package database

import (
	"sort"

	"github.com/example/practicebot/pkg/models"
)

// SanitizeProgress makes any UserProgress value self-consistent: counters are
// clamped to their legal ranges, day-number and date-key sets are filtered,
// deduplicated, and sorted ascending. It is total: corrupt input yields a
// valid record, never an error. Progress is sanitized per field (unlike the
// all-or-nothing review plan) because losing part of a corrupt record is
// tolerable, losing all of it is not.
func SanitizeProgress(p models.UserProgress) models.UserProgress {
	if p.CurrentDay < 1 {
		p.CurrentDay = 1
	}
	if p.Streak < 0 {
		p.Streak = 0
	}
	if p.TotalMinutes < 0 {
		p.TotalMinutes = 0
	}
	if p.LastCompletedDate != "" && !models.ValidDateKey(p.LastCompletedDate) {
		p.LastCompletedDate = ""
	}

	p.SessionsCompleted = sanitizeDayNumbers(p.SessionsCompleted)
	p.CompletedReinforcementCheckpointDays = sanitizeDayNumbers(p.CompletedReinforcementCheckpointDays)
	p.OfferedReinforcementCheckpointDays = sanitizeDayNumbers(p.OfferedReinforcementCheckpointDays)

	p.LightReviewCompletedDates = sanitizeDateKeys(p.LightReviewCompletedDates)
	p.DeepConsolidationCompletedDates = sanitizeDateKeys(p.DeepConsolidationCompletedDates)
	p.MicroReviewShownDates = sanitizeDateKeys(p.MicroReviewShownDates)
	p.MicroReviewCompletedDates = sanitizeDateKeys(p.MicroReviewCompletedDates)

	p.ReviewModeCompletionCounts = sanitizeCounts(p.ReviewModeCompletionCounts)
	return p
}

// SanitizeDraft makes any SessionDraft value self-consistent.
func SanitizeDraft(d models.SessionDraft) models.SessionDraft {
	if d.DayNumber < 0 {
		d.DayNumber = 0
	}
	if d.ElapsedSeconds < 0 {
		d.ElapsedSeconds = 0
	}
	if d.StartedAt != "" && !models.ValidDateKey(d.StartedAt) {
		d.StartedAt = ""
	}
	d.CompletedBlocks = sanitizeStrings(d.CompletedBlocks)
	return d
}

func sanitizeCounts(c models.ReviewModeCounts) models.ReviewModeCounts {
	if c.NewDay < 0 {
		c.NewDay = 0
	}
	if c.LightReview < 0 {
		c.LightReview = 0
	}
	if c.DeepConsolidation < 0 {
		c.DeepConsolidation = 0
	}
	if c.Milestone < 0 {
		c.Milestone = 0
	}
	return c
}

// sanitizeDayNumbers keeps positive values, deduplicated and sorted ascending.
func sanitizeDayNumbers(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d > 0 && !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Ints(out)
	return out
}

// sanitizeDateKeys keeps well-formed local date keys, deduplicated and sorted
// ascending.
func sanitizeDateKeys(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if models.ValidDateKey(k) && !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func sanitizeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
