// Package catalog loads the read-only lesson-day catalogue and the
// spaced-repetition card pool the engine consumes. The catalogue is
// validated once at load and cached; the engine never modifies it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/example/practicebot/pkg/models"
)

// Catalog is the validated lesson-day catalogue.
type Catalog struct {
	days  []models.LessonDay
	byDay map[int]models.LessonDay
}

// New validates days and builds a catalogue. Day numbers must be contiguous
// from 1 with no gaps or duplicates, otherwise the whole catalogue is
// rejected.
func New(days []models.LessonDay) (*Catalog, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("catalogue has no days")
	}

	sorted := make([]models.LessonDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DayNumber < sorted[j].DayNumber })

	byDay := make(map[int]models.LessonDay, len(sorted))
	for i, day := range sorted {
		if day.DayNumber != i+1 {
			return nil, fmt.Errorf("catalogue days are not contiguous: expected day %d, got %d", i+1, day.DayNumber)
		}
		byDay[day.DayNumber] = day
	}

	return &Catalog{days: sorted, byDay: byDay}, nil
}

// Load reads a JSON catalogue file (an array of lesson days) and validates
// it.
func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalogue %s: %v", path, err)
	}
	var days []models.LessonDay
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, fmt.Errorf("failed to parse catalogue %s: %v", path, err)
	}
	return New(days)
}

// Days returns all lesson days in order.
func (c *Catalog) Days() []models.LessonDay {
	return c.days
}

// Day returns the lesson day numbered n.
func (c *Catalog) Day(n int) (models.LessonDay, bool) {
	day, ok := c.byDay[n]
	return day, ok
}

// TotalDays returns the program length N.
func (c *Catalog) TotalDays() int {
	return len(c.days)
}

// LoadCards reads the spaced-repetition card pool from a JSON file. A missing
// pool is not an error; the micro-review simply has no cards to offer.
func LoadCards(path string) ([]models.ReviewCard, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read card pool %s: %v", path, err)
	}
	var cards []models.ReviewCard
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, fmt.Errorf("failed to parse card pool %s: %v", path, err)
	}
	return cards, nil
}
