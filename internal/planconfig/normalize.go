// Package planconfig turns an untrusted review-plan document into a trusted
// models.ReviewPlan. Validation is all-or-nothing: if any single field fails,
// the whole document is discarded in favor of the built-in default, so a bad
// bundled or remote configuration can only downgrade the scheduler, never
// crash it.
package planconfig

import (
	"encoding/json"
	"log"
	"math"
	"os"

	"github.com/example/practicebot/pkg/models"
)

// Load reads and normalizes the plan document at path. A missing or unreadable
// file yields the default plan.
func Load(path string) models.ReviewPlan {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Printf("review plan %s not readable, using default: %v", path, err)
		return DefaultPlan()
	}
	return Normalize(raw)
}

// Normalize parses raw as a JSON plan document and validates every field.
// On any failure it returns the built-in default plan.
func Normalize(raw []byte) models.ReviewPlan {
	var doc map[string]interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		log.Printf("review plan is not valid JSON, using default: %v", err)
		return DefaultPlan()
	}
	plan, ok := parsePlan(doc)
	if !ok {
		log.Printf("review plan failed validation, using default")
		return DefaultPlan()
	}
	return plan
}

func parsePlan(doc map[string]interface{}) (models.ReviewPlan, bool) {
	var plan models.ReviewPlan

	cadence, ok := objectField(doc, "weekly_cadence")
	if !ok {
		return plan, false
	}
	plan.WeeklyCadence.NewDaysPerWeek, ok = positiveIntField(cadence, "new_days_per_week")
	if !ok {
		return plan, false
	}
	plan.WeeklyCadence.LightReviewDaysPerWeek, ok = positiveIntField(cadence, "light_review_days_per_week")
	if !ok {
		return plan, false
	}
	plan.WeeklyCadence.DeepConsolidationDaysPerWeek, ok = positiveIntField(cadence, "deep_consolidation_days_per_week")
	if !ok {
		return plan, false
	}
	sum := plan.WeeklyCadence.NewDaysPerWeek +
		plan.WeeklyCadence.LightReviewDaysPerWeek +
		plan.WeeklyCadence.DeepConsolidationDaysPerWeek
	if sum != 7 {
		return plan, false
	}

	light, ok := objectField(doc, "light_review")
	if !ok {
		return plan, false
	}
	plan.LightReview.DurationMinutesMin, ok = positiveIntField(light, "duration_minutes_min")
	if !ok {
		return plan, false
	}
	plan.LightReview.DurationMinutesMax, ok = positiveIntField(light, "duration_minutes_max")
	if !ok {
		return plan, false
	}
	plan.LightReview.Blocks, ok = parseBlocks(light["blocks"])
	if !ok {
		return plan, false
	}

	deep, ok := objectField(doc, "deep_consolidation")
	if !ok {
		return plan, false
	}
	plan.DeepConsolidation.DurationMinutes, ok = positiveIntField(deep, "duration_minutes")
	if !ok {
		return plan, false
	}
	plan.DeepConsolidation.Blocks, ok = parseBlocks(deep["blocks"])
	if !ok {
		return plan, false
	}

	plan.ReinforcementCheckpoints, ok = parseCheckpoints(doc["reinforcement_checkpoints"])
	if !ok {
		return plan, false
	}

	plan.MilestoneDays, ok = parsePositiveIntList(doc["milestone_days"])
	if !ok || len(plan.MilestoneDays) == 0 {
		return plan, false
	}

	micro, ok := objectField(doc, "daily_micro_review")
	if !ok {
		return plan, false
	}
	plan.DailyMicroReview.AnkiCardsFromAtLeastDaysAgo, ok = positiveIntField(micro, "anki_cards_from_at_least_days_ago")
	if !ok {
		return plan, false
	}
	plan.DailyMicroReview.AnkiCardCount, ok = positiveIntField(micro, "anki_card_count")
	if !ok {
		return plan, false
	}
	plan.DailyMicroReview.MemorySentenceCount, ok = positiveIntField(micro, "memory_sentence_count")
	if !ok {
		return plan, false
	}

	return plan, true
}

// parseBlocks fails the whole list if any single block is malformed.
func parseBlocks(v interface{}) ([]models.ReviewBlock, bool) {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	blocks := make([]models.ReviewBlock, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		var block models.ReviewBlock
		block.ID, ok = stringField(obj, "id")
		if !ok || block.ID == "" {
			return nil, false
		}
		block.Title, ok = stringField(obj, "title")
		if !ok || block.Title == "" {
			return nil, false
		}
		instructions, ok := obj["instructions"].([]interface{})
		if !ok || len(instructions) == 0 {
			return nil, false
		}
		for _, ins := range instructions {
			s, ok := ins.(string)
			if !ok {
				return nil, false
			}
			block.Instructions = append(block.Instructions, s)
		}
		// duration_minutes is optional, but must be a positive integer when present
		if raw, present := obj["duration_minutes"]; present {
			d, ok := asInt(raw)
			if !ok || d <= 0 {
				return nil, false
			}
			block.DurationMinutes = d
		}
		blocks = append(blocks, block)
	}
	return blocks, true
}

func parseCheckpoints(v interface{}) ([]models.ReinforcementCheckpoint, bool) {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return nil, false
	}
	checkpoints := make([]models.ReinforcementCheckpoint, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, false
		}
		var cp models.ReinforcementCheckpoint
		cp.CurrentDay, ok = positiveIntField(obj, "current_day")
		if !ok {
			return nil, false
		}
		cp.ReviewDay, ok = positiveIntField(obj, "review_day")
		if !ok {
			return nil, false
		}
		checkpoints = append(checkpoints, cp)
	}
	return checkpoints, true
}

func parsePositiveIntList(v interface{}) ([]int, bool) {
	items, ok := v.([]interface{})
	if !ok {
		return nil, false
	}
	values := make([]int, 0, len(items))
	for _, item := range items {
		n, ok := asInt(item)
		if !ok || n <= 0 {
			return nil, false
		}
		values = append(values, n)
	}
	return values, true
}

func objectField(m map[string]interface{}, key string) (map[string]interface{}, bool) {
	obj, ok := m[key].(map[string]interface{})
	return obj, ok
}

func stringField(m map[string]interface{}, key string) (string, bool) {
	s, ok := m[key].(string)
	return s, ok
}

func positiveIntField(m map[string]interface{}, key string) (int, bool) {
	n, ok := asInt(m[key])
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

// asInt accepts only JSON numbers with no fractional part.
func asInt(v interface{}) (int, bool) {
	f, ok := v.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
