// Package review holds the pure scheduling functions: the daily-mode
// resolver, the forward/reinforcement guardrail, and the micro-review
// selector. Nothing here mutates state or touches I/O: every call is a
// re-derivation from a snapshot of the persisted record and the plan, so the
// resolver has no stuck states and survives plan changes without migration.
package review

import (
	"sort"
	"time"

	"github.com/example/practicebot/pkg/models"
)

// ResolveDailyMode decides which review mode the given date calls for.
//
// The weekly rotation is driven by completed work, not by the wall-clock
// weekday: the completed new/light/deep counters are summed and reduced
// modulo the cadence span, so a user who skips days never falls out of
// cadence. Milestone days override the rotation. Among the reinforcement
// checkpoints that are due and not yet completed, only the most recently due
// one surfaces; older misses ride along in
// PendingReinforcementCheckpointDays until each is explicitly completed.
func ResolveDailyMode(progress models.UserProgress, plan models.ReviewPlan, date time.Time) models.DailyModeResolution {
	currentDay := progress.CurrentDay
	if currentDay < 1 {
		currentDay = 1
	}

	resolution := models.DailyModeResolution{
		CurrentDay: currentDay,
		DateKey:    models.DateKey(date),
	}

	resolution.WeeklySlot = cadenceSlot(progress.ReviewModeCompletionCounts, plan.WeeklyCadence)

	pending := pendingCheckpoints(plan.ReinforcementCheckpoints, currentDay, progress.CompletedReinforcementCheckpointDays)
	for _, cp := range pending {
		resolution.PendingReinforcementCheckpointDays = append(resolution.PendingReinforcementCheckpointDays, cp.CurrentDay)
	}
	if len(pending) > 0 {
		active := pending[len(pending)-1]
		resolution.ReinforcementCheckpointDay = active.CurrentDay
		resolution.ReinforcementReviewDay = active.ReviewDay
	}

	for _, day := range plan.MilestoneDays {
		if day == currentDay {
			resolution.IsMilestoneDay = true
			break
		}
	}

	switch {
	case resolution.IsMilestoneDay:
		resolution.Mode = models.ModeMilestone
	case resolution.WeeklySlot == models.SlotLight:
		resolution.Mode = models.ModeLightReview
	case resolution.WeeklySlot == models.SlotDeep:
		resolution.Mode = models.ModeDeepConsolidation
	default:
		resolution.Mode = models.ModeNewDay
	}

	return resolution
}

// cadenceSlot places the next session in the weekly rotation. Milestone
// completions are excluded from the cycle.
func cadenceSlot(counts models.ReviewModeCounts, cadence models.WeeklyCadence) models.CadenceSlot {
	span := cadence.NewDaysPerWeek + cadence.LightReviewDaysPerWeek + cadence.DeepConsolidationDaysPerWeek
	if span <= 0 {
		return models.SlotNew
	}
	completed := counts.NewDay + counts.LightReview + counts.DeepConsolidation
	cycleIndex := completed % span

	switch {
	case cycleIndex < cadence.NewDaysPerWeek:
		return models.SlotNew
	case cycleIndex < cadence.NewDaysPerWeek+cadence.LightReviewDaysPerWeek:
		return models.SlotLight
	default:
		return models.SlotDeep
	}
}

// pendingCheckpoints returns the checkpoints due by currentDay and not yet
// completed, sorted ascending by their trigger day.
func pendingCheckpoints(checkpoints []models.ReinforcementCheckpoint, currentDay int, completed []int) []models.ReinforcementCheckpoint {
	done := make(map[int]bool, len(completed))
	for _, day := range completed {
		done[day] = true
	}

	var pending []models.ReinforcementCheckpoint
	for _, cp := range checkpoints {
		if cp.CurrentDay <= currentDay && !done[cp.CurrentDay] {
			pending = append(pending, cp)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CurrentDay < pending[j].CurrentDay
	})
	return pending
}
