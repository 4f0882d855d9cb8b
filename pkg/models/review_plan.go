package models

// WeeklyCadence defines how the seven days of a week are split between
// forward progress and the two review modes. The three fields must sum to 7.
type WeeklyCadence struct {
	NewDaysPerWeek               int `json:"new_days_per_week"`
	LightReviewDaysPerWeek       int `json:"light_review_days_per_week"`
	DeepConsolidationDaysPerWeek int `json:"deep_consolidation_days_per_week"`
}

// ReviewBlock is a single activity inside a review session.
type ReviewBlock struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Instructions    []string `json:"instructions"`
	DurationMinutes int      `json:"duration_minutes,omitempty"` // 0 means unset
}

// LightReviewPlan describes the short review session.
type LightReviewPlan struct {
	DurationMinutesMin int           `json:"duration_minutes_min"`
	DurationMinutesMax int           `json:"duration_minutes_max"`
	Blocks             []ReviewBlock `json:"blocks"`
}

// DeepConsolidationPlan describes the long review session.
type DeepConsolidationPlan struct {
	DurationMinutes int           `json:"duration_minutes"`
	Blocks          []ReviewBlock `json:"blocks"`
}

// ReinforcementCheckpoint prompts a revisit of ReviewDay once the learner
// reaches CurrentDay.
type ReinforcementCheckpoint struct {
	CurrentDay int `json:"current_day"`
	ReviewDay  int `json:"review_day"`
}

// DailyMicroReview configures the short pre-session review of yesterday's
// material.
type DailyMicroReview struct {
	AnkiCardsFromAtLeastDaysAgo int `json:"anki_cards_from_at_least_days_ago"`
	AnkiCardCount               int `json:"anki_card_count"`
	MemorySentenceCount         int `json:"memory_sentence_count"`
}

// ReviewPlan is the trusted, validated review configuration. It is loaded
// once at startup and never mutated.
type ReviewPlan struct {
	WeeklyCadence            WeeklyCadence             `json:"weekly_cadence"`
	LightReview              LightReviewPlan           `json:"light_review"`
	DeepConsolidation        DeepConsolidationPlan     `json:"deep_consolidation"`
	ReinforcementCheckpoints []ReinforcementCheckpoint `json:"reinforcement_checkpoints"`
	MilestoneDays            []int                     `json:"milestone_days"`
	DailyMicroReview         DailyMicroReview          `json:"daily_micro_review"`
}
