package models

// MicroReviewSource identifies where the micro-review cards came from.
type MicroReviewSource string

const (
	MicroReviewFromPreviousDay MicroReviewSource = "previous_day"
	MicroReviewNone            MicroReviewSource = "none"
)

// MicroReviewPlan is the selection for today's pre-session micro-review:
// yesterday's cards plus the first memory sentences of yesterday's patterns
// section.
type MicroReviewPlan struct {
	Cards           []ReviewCard      `json:"cards"`
	MemorySentences []string          `json:"memory_sentences"`
	Source          MicroReviewSource `json:"source"`
}
