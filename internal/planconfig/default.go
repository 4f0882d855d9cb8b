package planconfig

import "github.com/example/practicebot/pkg/models"

// DefaultPlan returns the built-in review plan used whenever a configured
// document fails validation. It must always be valid; normalize_test.go
// checks it against the same rules applied to untrusted documents.
func DefaultPlan() models.ReviewPlan {
	return models.ReviewPlan{
		WeeklyCadence: models.WeeklyCadence{
			NewDaysPerWeek:               5,
			LightReviewDaysPerWeek:       1,
			DeepConsolidationDaysPerWeek: 1,
		},
		LightReview: models.LightReviewPlan{
			DurationMinutesMin: 10,
			DurationMinutesMax: 15,
			Blocks: []models.ReviewBlock{
				{
					ID:    "shadow_recent",
					Title: "Shadow recent patterns",
					Instructions: []string{
						"Replay the pattern sentences from the last two days.",
						"Shadow each sentence aloud twice.",
					},
					DurationMinutes: 8,
				},
				{
					ID:    "quick_recall",
					Title: "Quick recall",
					Instructions: []string{
						"Cover the answers and recall each prompt from memory.",
					},
					DurationMinutes: 5,
				},
			},
		},
		DeepConsolidation: models.DeepConsolidationPlan{
			DurationMinutes: 25,
			Blocks: []models.ReviewBlock{
				{
					ID:    "weekly_sweep",
					Title: "Weekly sweep",
					Instructions: []string{
						"Work through every pattern introduced this week.",
						"Mark anything that still feels slow.",
					},
					DurationMinutes: 15,
				},
				{
					ID:    "trouble_spots",
					Title: "Trouble spots",
					Instructions: []string{
						"Drill the marked items until recall is immediate.",
					},
					DurationMinutes: 10,
				},
			},
		},
		ReinforcementCheckpoints: []models.ReinforcementCheckpoint{
			{CurrentDay: 15, ReviewDay: 1},
			{CurrentDay: 30, ReviewDay: 10},
			{CurrentDay: 45, ReviewDay: 15},
			{CurrentDay: 60, ReviewDay: 30},
			{CurrentDay: 75, ReviewDay: 45},
			{CurrentDay: 90, ReviewDay: 60},
		},
		MilestoneDays: []int{30, 60, 90},
		DailyMicroReview: models.DailyMicroReview{
			AnkiCardsFromAtLeastDaysAgo: 1,
			AnkiCardCount:               5,
			MemorySentenceCount:         3,
		},
	}
}
