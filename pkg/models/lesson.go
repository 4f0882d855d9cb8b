package models

// SectionTypePatterns marks the section whose sentences feed the daily
// micro-review.
const SectionTypePatterns = "patterns"

// LessonSection is one ordered activity inside a lesson day.
type LessonSection struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Title     string   `json:"title"`
	Sentences []string `json:"sentences"`
	Reps      int      `json:"reps"`
	Duration  int      `json:"duration"` // minutes
}

// LessonDay is one unit of the fixed-length lesson catalogue, numbered 1..N.
type LessonDay struct {
	DayNumber int             `json:"day_number"`
	Sections  []LessonSection `json:"sections"`
}

// ReviewCard is a spaced-repetition card from the read-only card pool. The
// engine selects cards but never creates, schedules, or grades them.
type ReviewCard struct {
	ID            string `json:"id"`
	DayNumber     int    `json:"day_number"`
	SectionID     string `json:"section_id"`
	SentenceIndex int    `json:"sentence_index"`
	Prompt        string `json:"prompt"`
	Answer        string `json:"answer"`
}
