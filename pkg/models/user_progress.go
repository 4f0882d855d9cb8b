package models

// ReviewMode is the prescribed activity for a day.
type ReviewMode string

const (
	// ModeNewDay advances to new material
	ModeNewDay ReviewMode = "new_day"
	// ModeLightReview is a short review session
	ModeLightReview ReviewMode = "light_review"
	// ModeDeepConsolidation is a long review session
	ModeDeepConsolidation ReviewMode = "deep_consolidation"
	// ModeMilestone is a milestone-day assessment
	ModeMilestone ReviewMode = "milestone"
)

// ReviewModeCounts tracks how many sessions of each mode were ever completed.
// The counters are never reset.
type ReviewModeCounts struct {
	NewDay            int `json:"new_day"`
	LightReview       int `json:"light_review"`
	DeepConsolidation int `json:"deep_consolidation"`
	Milestone         int `json:"milestone"`
}

// UserProgress is the single persisted progress record for an installation.
// Date fields hold local date keys (YYYY-MM-DD); day-number and date slices
// are kept deduplicated and sorted ascending. Mutate it only through
// progress.Service.
type UserProgress struct {
	CurrentDay                           int              `json:"current_day"`
	Streak                               int              `json:"streak"`
	SessionsCompleted                    []int            `json:"sessions_completed"`
	TotalMinutes                         int              `json:"total_minutes"`
	LastCompletedDate                    string           `json:"last_completed_date,omitempty"`
	LightReviewCompletedDates            []string         `json:"light_review_completed_dates"`
	DeepConsolidationCompletedDates      []string         `json:"deep_consolidation_completed_dates"`
	CompletedReinforcementCheckpointDays []int            `json:"completed_reinforcement_checkpoint_days"`
	OfferedReinforcementCheckpointDays   []int            `json:"offered_reinforcement_checkpoint_days"`
	MicroReviewShownDates                []string         `json:"micro_review_shown_dates"`
	MicroReviewCompletedDates            []string         `json:"micro_review_completed_dates"`
	ReviewModeCompletionCounts           ReviewModeCounts `json:"review_mode_completion_counts"`
}
