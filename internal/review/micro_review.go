package review

import (
	"sort"

	"github.com/example/practicebot/pkg/models"
)

// ResolveMicroReviewPlan selects yesterday's material for the short
// pre-session review: the previous day's cards from the read-only pool,
// capped to the plan's card count, plus the first memory sentences of that
// day's patterns section. The engine never schedules or grades the cards
// themselves.
func ResolveMicroReviewPlan(days []models.LessonDay, cards []models.ReviewCard, currentDayNumber int, plan models.ReviewPlan) models.MicroReviewPlan {
	previousDay := currentDayNumber - 1
	if previousDay < 1 {
		previousDay = 1
	}

	result := models.MicroReviewPlan{Source: models.MicroReviewNone}

	var picked []models.ReviewCard
	for _, card := range cards {
		if card.DayNumber == previousDay {
			picked = append(picked, card)
		}
	}
	// Stable id ordering keeps the selection deterministic across calls.
	sort.Slice(picked, func(i, j int) bool { return picked[i].ID < picked[j].ID })
	if limit := plan.DailyMicroReview.AnkiCardCount; len(picked) > limit {
		picked = picked[:limit]
	}
	if len(picked) > 0 {
		result.Cards = picked
		result.Source = models.MicroReviewFromPreviousDay
	}

	result.MemorySentences = memorySentences(days, previousDay, plan.DailyMicroReview.MemorySentenceCount)
	return result
}

// memorySentences returns the first count sentences of dayNumber's patterns
// section, or nothing if the day or section doesn't exist.
func memorySentences(days []models.LessonDay, dayNumber, count int) []string {
	for _, day := range days {
		if day.DayNumber != dayNumber {
			continue
		}
		for _, section := range day.Sections {
			if section.Type != models.SectionTypePatterns {
				continue
			}
			sentences := section.Sentences
			if len(sentences) > count {
				sentences = sentences[:count]
			}
			return sentences
		}
	}
	return nil
}
